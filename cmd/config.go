package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/loanlens-org/loanlens/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set LoanLens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		fmt.Printf("default_format: %s\n", c.DefaultFormat)
		fmt.Printf("sample_rows: %d\n", c.SampleRows)
		fmt.Printf("currency_symbol: %s\n", c.CurrencySymbol)
		if c.Delimiter != "" {
			fmt.Printf("delimiter: %s\n", c.Delimiter)
		}
		if c.ExportDir != "" {
			fmt.Printf("export_dir: %s\n", c.ExportDir)
		}
		fmt.Printf("log_level: %s\n", c.LogLevel)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "default_format":
			switch val {
			case "markdown", "md", "json", "yaml", "yml":
				c.DefaultFormat = val
			default:
				return fmt.Errorf("invalid default_format: %s (use markdown, json, or yaml)", val)
			}
		case "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for sample_rows: %v", val)
			}
			c.SampleRows = i
		case "currency_symbol":
			c.CurrencySymbol = val
		case "delimiter":
			if _, err := parseDelimiter(val); err != nil {
				return err
			}
			c.Delimiter = val
		case "export_dir":
			c.ExportDir = val
		case "log_level":
			switch val {
			case "debug", "info", "warn", "warning", "error":
				c.LogLevel = val
			default:
				return fmt.Errorf("invalid log_level: %s", val)
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
