package cmd

import (
	"github.com/loanlens-org/loanlens/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	metRows      int
	metDelimiter string
	metFormat    string
	metOutput    string
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <file>",
	Short: "Compute headline metrics and the weighted risk score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		s, err := loadSession(args[0], metDelimiter, metRows)
		if err != nil {
			return err
		}
		m, err := analysis.ComputeMetrics(s.Data())
		if err != nil {
			return err
		}
		md := func() string { return m.Markdown(c.CurrencySymbol) }
		out, err := render(resolveFormat(metFormat, c), m, md)
		if err != nil {
			return err
		}
		return writeOut(out, metOutput, "metrics")
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().IntVar(&metRows, "rows", 0, "limit analysis to the first N rows (0 = all)")
	metricsCmd.Flags().StringVar(&metDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	metricsCmd.Flags().StringVarP(&metFormat, "format", "f", "", "output format: markdown | json | yaml")
	metricsCmd.Flags().StringVarP(&metOutput, "output", "o", "", "optional path to write the metrics")
}
