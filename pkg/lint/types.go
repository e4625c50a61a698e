// Package lint defines the rule engine for LookML documents: rule
// definitions, a global registry populated from init functions, and an
// analyzer that runs enabled rules against a parsed document. Analysis
// never fails; a panicking rule is skipped and the remaining rules run.
package lint

import (
	"encoding/json"
	"fmt"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
	"github.com/lookstack-labs/lookfmt/pkg/token"
)

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a violation.
type Severity int

// Severity levels for violations.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its lowercase name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a severity from its lowercase name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, ok := ParseSeverity(name)
	if !ok {
		return fmt.Errorf("unknown severity %q", name)
	}
	*s = sev
	return nil
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityWarning and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	case "hint":
		return SeverityHint, true
	default:
		return SeverityWarning, false
	}
}

// =============================================================================
// Rule definitions
// =============================================================================

// RuleDef is a data-driven rule definition. Rules are stateless: all context
// comes through the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g. "K1"
	Name        string    // Human-readable name, e.g. "view.primary-key"
	Group       string    // Category, e.g. "keys", "references"
	Description string    // One-line description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // LookML showing the anti-pattern
	GoodExample string // LookML showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// CheckFunc analyzes a parsed document and returns violations.
// The opts parameter carries rule-specific options from configuration.
type CheckFunc func(doc *lookml.Document, opts map[string]any) []Violation

// =============================================================================
// Violations
// =============================================================================

// Violation is a single lint finding.
type Violation struct {
	RuleID   string
	Severity Severity
	Message  string

	// Path names the offending node structurally, outermost first,
	// e.g. ["view", "orders", "dimension", "id", "primary_key"]. Consumers
	// resolve it to a source position with Locate.
	Path []string

	Pos token.Position // Best-effort source position, zero when unknown
}

// =============================================================================
// Rule metadata
// =============================================================================

// RuleInfo is the serializable metadata for a rule, used by documentation
// and tooling surfaces.
type RuleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Description string   `json:"description"`
	Severity    Severity `json:"default_severity"`
	ConfigKeys  []string `json:"config_keys,omitempty"`
	Rationale   string   `json:"rationale,omitempty"`
	BadExample  string   `json:"bad_example,omitempty"`
	GoodExample string   `json:"good_example,omitempty"`
	Fix         string   `json:"fix,omitempty"`
}

// Info extracts the serializable metadata from a rule definition.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Group:       r.Group,
		Description: r.Description,
		Severity:    r.Severity,
		ConfigKeys:  r.ConfigKeys,
		Rationale:   r.Rationale,
		BadExample:  r.BadExample,
		GoodExample: r.GoodExample,
		Fix:         r.Fix,
	}
}
