// Package config provides configuration management for the lookfmt CLI.
// Configuration merges, in rising precedence: built-in defaults, the
// lookfmt.yaml project file, LOOKFMT_ environment variables, and CLI flags.
package config

import (
	"strings"

	"github.com/lookstack-labs/lookfmt/pkg/format"
	"github.com/lookstack-labs/lookfmt/pkg/lint"
)

// Config holds all CLI configuration options.
type Config struct {
	IndentWidth       int      `koanf:"indent_width"`
	UseSpaces         bool     `koanf:"use_spaces"`
	GroupFieldsByType bool     `koanf:"group_fields_by_type"`
	SortFields        bool     `koanf:"sort_fields"`
	SQLProperties     []string `koanf:"sql_properties"`

	Verbose      bool   `koanf:"verbose"`
	OutputFormat string `koanf:"output"`

	Lint *LintConfig `koanf:"lint"`

	// ProjectRoot is the directory the config file was found in (or the
	// working directory). Set by the loader, never read from file.
	ProjectRoot string `koanf:"-"`
}

// LintConfig configures the rule engine.
type LintConfig struct {
	// Enabled restricts linting to the listed rule IDs when non-empty.
	Enabled []string `koanf:"enabled"`

	// Disabled lists rule IDs to skip.
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint).
	Severity map[string]string `koanf:"severity"`

	// Rules carries rule-specific options keyed by rule ID.
	Rules map[string]map[string]any `koanf:"rules"`
}

// Default configuration values.
const (
	DefaultIndentWidth = 2
	DefaultOutput      = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// FormatOptions converts the configuration to formatter options.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		IndentWidth:       c.IndentWidth,
		UseSpaces:         c.UseSpaces,
		GroupFieldsByType: c.GroupFieldsByType,
		SortFields:        c.SortFields,
		SQLProperties:     c.SQLProperties,
	}
}

// LintRuleConfig converts the configuration to a rule engine config.
// Unknown rule IDs and invalid severity names are ignored.
func (c *Config) LintRuleConfig() *lint.Config {
	cfg := lint.NewConfig()
	if c == nil || c.Lint == nil {
		return cfg
	}
	for _, id := range c.Lint.Enabled {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Enable(id)
		}
	}
	for _, id := range c.Lint.Disabled {
		if id = strings.TrimSpace(id); id != "" {
			cfg.Disable(id)
		}
	}
	for id, sev := range c.Lint.Severity {
		if s, ok := lint.ParseSeverity(sev); ok {
			cfg.SetSeverity(id, s)
		}
	}
	for id, opts := range c.Lint.Rules {
		cfg.RuleOptions[id] = opts
	}
	return cfg
}
