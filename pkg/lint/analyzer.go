package lint

import (
	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

// Analyzer runs lint rules against parsed LookML documents.
type Analyzer struct {
	config *Config
}

// NewAnalyzer creates a new analyzer with optional configuration.
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	return &Analyzer{config: config}
}

// Analyze runs all enabled rules against the document. Rules run in ID
// order so output is deterministic. A rule that panics is skipped; analysis
// itself never fails.
func (a *Analyzer) Analyze(doc *lookml.Document) []Violation {
	if doc == nil {
		return nil
	}

	var violations []Violation
	for _, rule := range All() {
		if !a.config.IsEnabled(rule.ID) {
			continue
		}
		vs := a.runRule(rule, doc)
		for i := range vs {
			vs[i].RuleID = rule.ID
			vs[i].Severity = a.config.GetSeverity(rule.ID, rule.Severity)
		}
		violations = append(violations, vs...)
	}
	return violations
}

// AnalyzeText parses the input and runs Analyze, resolving each violation's
// path to a source position.
func (a *Analyzer) AnalyzeText(text string) []Violation {
	parsed := lookml.Parse(text)
	violations := a.Analyze(parsed.Doc)
	for i := range violations {
		if !violations[i].Pos.IsValid() {
			violations[i].Pos = Locate(text, violations[i].Path)
		}
	}
	return violations
}

// runRule isolates a single rule invocation so one misbehaving rule cannot
// take down the analysis pass.
func (a *Analyzer) runRule(rule RuleDef, doc *lookml.Document) (vs []Violation) {
	defer func() {
		if recover() != nil {
			vs = nil
		}
	}()
	if rule.Check == nil {
		return nil
	}
	return rule.Check(doc, a.config.GetRuleOptions(rule.ID))
}
