package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/loanlens-org/loanlens/internal/portfolio"
	"github.com/loanlens-org/loanlens/internal/utils"
	"github.com/spf13/cobra"
)

var (
	expRows      int
	expDelimiter string
	expOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the analyzed rows as a new CSV",
	Long: `Export re-writes the loaded rows as CSV, applying the row limit if one
is set. Row content and column order are preserved from the source file.
Without --output the file is named portfolio_<timestamp>.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		s, err := loadSession(args[0], expDelimiter, expRows)
		if err != nil {
			return err
		}
		ds := s.Data()
		out := expOutput
		if out == "" {
			dir := c.ExportDir
			if dir != "" {
				if err := utils.EnsureDir(dir); err != nil {
					return fmt.Errorf("create export dir: %w", err)
				}
			}
			out = filepath.Join(dir, portfolio.ExportFileName(time.Now()))
		}
		if err := portfolio.ExportFile(out, ds); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d rows to %s\n", ds.Len(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().IntVar(&expRows, "rows", 0, "limit the export to the first N rows (0 = all)")
	exportCmd.Flags().StringVar(&expDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path (default portfolio_<timestamp>.csv)")
}
