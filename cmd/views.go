package cmd

import (
	"fmt"

	"github.com/loanlens-org/loanlens/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	viewRows      int
	viewDelimiter string
	viewName      string
	viewFormat    string
	viewOutput    string
)

var viewsCmd = &cobra.Command{
	Use:   "views [file]",
	Short: "Compute analytical views; without a file, list the view names",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, name := range analysis.ViewNames() {
				fmt.Printf("- %s\n", name)
			}
			return nil
		}
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		s, err := loadSession(args[0], viewDelimiter, viewRows)
		if err != nil {
			return err
		}
		ds := s.Data()
		if viewName != "" {
			rows, err := analysis.BuildView(ds, viewName)
			if err != nil {
				return err
			}
			md := func() string { return analysis.ViewMarkdown(viewName, rows) }
			out, err := render(resolveFormat(viewFormat, c), rows, md)
			if err != nil {
				return err
			}
			return writeOut(out, viewOutput, "view")
		}
		views, err := analysis.BuildViews(ds)
		if err != nil {
			return err
		}
		out, err := render(resolveFormat(viewFormat, c), views, views.Markdown)
		if err != nil {
			return err
		}
		return writeOut(out, viewOutput, "views")
	},
}

func init() {
	rootCmd.AddCommand(viewsCmd)
	viewsCmd.Flags().IntVar(&viewRows, "rows", 0, "limit analysis to the first N rows (0 = all)")
	viewsCmd.Flags().StringVar(&viewDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	viewsCmd.Flags().StringVarP(&viewName, "name", "n", "", "compute a single view by name")
	viewsCmd.Flags().StringVarP(&viewFormat, "format", "f", "", "output format: markdown | json | yaml")
	viewsCmd.Flags().StringVarP(&viewOutput, "output", "o", "", "optional path to write the views")
}
