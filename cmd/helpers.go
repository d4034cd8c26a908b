package cmd

import (
	"fmt"

	cfgpkg "github.com/loanlens-org/loanlens/internal/config"
	"github.com/loanlens-org/loanlens/internal/portfolio"
	"github.com/loanlens-org/loanlens/internal/utils"
	"gopkg.in/yaml.v3"
)

// parseDelimiter maps a delimiter spelling to the rune the CSV reader wants.
// Empty means auto-detect.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter: %s (use ',' | ';' | 'tab')", s)
	}
}

// loadSession loads a portfolio CSV into a new session, applying the
// delimiter (flag over config) and the row limit.
func loadSession(path, delimFlag string, rows int) (*portfolio.Session, error) {
	c, err := ensureConfig()
	if err != nil {
		return nil, err
	}
	spec := delimFlag
	if spec == "" {
		spec = c.Delimiter
	}
	delim, err := parseDelimiter(spec)
	if err != nil {
		return nil, err
	}
	ds, err := portfolio.Load(path, portfolio.LoadOptions{Delimiter: delim})
	if err != nil {
		return nil, err
	}
	s := portfolio.NewSession(path, ds)
	s.SetRowLimit(rows)
	return s, nil
}

// resolveFormat prefers the flag value over the configured default.
func resolveFormat(flagVal string, c *cfgpkg.Global) string {
	if flagVal != "" {
		return flagVal
	}
	return c.DefaultFormat
}

// render serializes v in the requested format, falling back to the markdown
// renderer for text output.
func render(format string, v any, markdown func() string) (string, error) {
	switch format {
	case "", "markdown", "md":
		return markdown(), nil
	case "json":
		b, err := utils.PrettyJSON(v)
		if err != nil {
			return "", err
		}
		return string(b) + "\n", nil
	case "yaml", "yml":
		b, err := yaml.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown, json, or yaml)", format)
	}
}

// writeOut prints content to stdout, or writes it to path when given.
func writeOut(content, path, what string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := utils.SafeWriteFile(path, []byte(content)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Wrote %s to %s\n", what, path)
	return nil
}
