package main

import "github.com/loanlens-org/loanlens/cmd"

func main() {
	cmd.Execute()
}
