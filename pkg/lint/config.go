package lint

// Config controls which rules run and at what severity. Unknown rule IDs in
// any of the maps are ignored.
type Config struct {
	// EnabledRules restricts analysis to the listed rule IDs when non-empty.
	EnabledRules map[string]bool

	// DisabledRules contains rule IDs to skip. Disabling wins over enabling.
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules.
	SeverityOverrides map[string]Severity

	// RuleOptions carries rule-specific options keyed by rule ID.
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		EnabledRules:      make(map[string]bool),
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// IsEnabled reports whether the rule should run.
func (c *Config) IsEnabled(ruleID string) bool {
	if c == nil {
		return true
	}
	if c.DisabledRules[ruleID] {
		return false
	}
	if len(c.EnabledRules) > 0 {
		return c.EnabledRules[ruleID]
	}
	return true
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the rule-specific options, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Enable restricts analysis to the given rule (plus any other enabled ones).
func (c *Config) Enable(ruleID string) *Config {
	c.EnabledRules[ruleID] = true
	return c
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}
