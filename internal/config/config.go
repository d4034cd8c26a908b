package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// DefaultFormat is the report output format: markdown, json, or yaml.
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	// SampleRows is how many preview rows reports include.
	SampleRows int `mapstructure:"sample_rows" yaml:"sample_rows"`
	// CurrencySymbol prefixes money values in text output.
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	// Delimiter is the CSV field separator: empty for auto-detect, or one of
	// ",", ";", "tab".
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// ExportDir is where exports land; empty means the working directory.
	ExportDir string `mapstructure:"export_dir" yaml:"export_dir"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.loanlens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".loanlens")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LOANLENS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("default_format", "markdown")
	v.SetDefault("sample_rows", 5)
	v.SetDefault("currency_symbol", "₹")
	v.SetDefault("delimiter", "")
	v.SetDefault("export_dir", "")
	v.SetDefault("log_level", "info")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".loanlens")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.SampleRows < 0 {
		c.SampleRows = 0
	}
	return &c, nil
}
