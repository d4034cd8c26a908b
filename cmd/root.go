package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	cfgpkg "github.com/loanlens-org/loanlens/internal/config"
	"github.com/loanlens-org/loanlens/internal/logging"
	"github.com/spf13/cobra"
)

var (
	// Global flags (wired later to config/viper)
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "loanlens",
	Short: "LoanLens CLI: portfolio metrics and risk views from loan CSVs",
	Long: `LoanLens is a CLI tool that loads a loan portfolio CSV and computes
NPA metrics, a weighted risk score, and chart-ready analytical views,
rendered as Markdown, JSON, or YAML.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.loanlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	// .env is optional; LOANLENS_* vars feed viper's env lookup.
	_ = godotenv.Load()

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
	} else {
		cfg = c
	}

	level := "info"
	if cfg != nil && cfg.LogLevel != "" {
		level = cfg.LogLevel
	}
	if debug {
		level = "debug"
	}
	logging.Init(level)
}

// ensureConfig returns the loaded configuration, loading it on demand for
// code paths that run before or without OnInitialize.
func ensureConfig() (*cfgpkg.Global, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}
