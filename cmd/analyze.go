package cmd

import (
	"github.com/loanlens-org/loanlens/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	anaRows       int
	anaDelimiter  string
	anaFormat     string
	anaOutputPath string
	anaSampleRows int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Produce the full portfolio report: metrics, risk, and all views",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		s, err := loadSession(args[0], anaDelimiter, anaRows)
		if err != nil {
			return err
		}
		opt := analysis.DefaultReportOptions()
		opt.SampleRows = c.SampleRows
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = anaSampleRows
		}
		if c.CurrencySymbol != "" {
			opt.Currency = c.CurrencySymbol
		}
		rep, err := analysis.BuildReport(s, opt)
		if err != nil {
			return err
		}
		out, err := render(resolveFormat(anaFormat, c), rep, rep.Markdown)
		if err != nil {
			return err
		}
		return writeOut(out, anaOutputPath, "report")
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().IntVar(&anaRows, "rows", 0, "limit analysis to the first N rows (0 = all)")
	analyzeCmd.Flags().StringVar(&anaDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	analyzeCmd.Flags().StringVarP(&anaFormat, "format", "f", "", "output format: markdown | json | yaml")
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the report")
	analyzeCmd.Flags().IntVar(&anaSampleRows, "sample-rows", 5, "number of sample rows to include")
}
