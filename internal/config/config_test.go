package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultFormat != "markdown" || c.SampleRows != 5 || c.CurrencySymbol != "₹" {
		t.Fatalf("defaults = %+v", c)
	}
	if c.Delimiter != "" || c.LogLevel != "info" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOANLENS_CURRENCY_SYMBOL", "$")
	t.Setenv("LOANLENS_SAMPLE_ROWS", "10")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.CurrencySymbol != "$" || c.SampleRows != 10 {
		t.Fatalf("env override not applied: %+v", c)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	want := &Global{
		DefaultFormat:  "json",
		SampleRows:     3,
		CurrencySymbol: "$",
		Delimiter:      ";",
		LogLevel:       "debug",
	}
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadClampsNegativeSampleRows(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LOANLENS_SAMPLE_ROWS", "-2")
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SampleRows != 0 {
		t.Fatalf("SampleRows = %d, want clamped to 0", c.SampleRows)
	}
}
