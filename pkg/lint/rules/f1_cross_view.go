package rules

import (
	"fmt"
	"regexp"

	"github.com/lookstack-labs/lookfmt/pkg/lint"
	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func init() {
	lint.Register(CrossViewReferences)
}

// substRe matches a ${view.field} substitution. The single-identifier form
// ${field} never crosses views and is not matched.
var substRe = regexp.MustCompile(`\$\{(\w+)\.(\w+)\}`)

// CrossViewReferences flags fields that reach into another view through a
// ${other_view.field} substitution. Cross-view coupling makes views
// impossible to reuse in isolation; ${TABLE} and same-view references are
// fine.
var CrossViewReferences = lint.RuleDef{
	ID:          "F1",
	Name:        "view.cross-view-references",
	Group:       "references",
	Description: "Fields should not reference other views; keep views self-contained.",
	Severity:    lint.SeverityWarning,
	Check:       checkCrossViewReferences,
	Rationale: "A field that references another view only works in explores that " +
		"happen to join that view, and the breakage shows up at query time, not " +
		"at modeling time.",
	BadExample: `view: orders {
  sql_table_name: analytics.orders ;;

  measure: revenue_per_user {
    sql: ${TABLE}.revenue / ${users.count} ;;
  }
}`,
	GoodExample: `view: orders {
  sql_table_name: analytics.orders ;;

  measure: revenue {
    sql: ${TABLE}.revenue ;;
  }
}`,
	Fix: "Move the calculation to the explore, or into the view that owns the field.",
}

func checkCrossViewReferences(doc *lookml.Document, _ map[string]any) []lint.Violation {
	var violations []lint.Violation
	for _, view := range doc.Views() {
		if !hasBackingTable(view) {
			// Refinement and extension views legitimately reference their base.
			continue
		}
		for _, f := range view.Fields {
			switch f.Kind {
			case lookml.FieldDimension, lookml.FieldDimensionGroup, lookml.FieldMeasure, lookml.FieldFilter:
			default:
				continue
			}
			for _, prop := range []string{"sql", "html"} {
				text, ok := f.SQLText(prop)
				if !ok {
					continue
				}
				for _, m := range substRe.FindAllStringSubmatch(text, -1) {
					ref := m[1]
					if ref == view.Name || ref == "TABLE" {
						continue
					}
					violations = append(violations, lint.Violation{
						Message: crossViewMessage(prop, f, ref, m[2]),
						Path:    []string{view.Type, view.Name, f.Type, f.Name, prop},
					})
				}
			}
		}
	}
	return violations
}

func crossViewMessage(prop string, f *lookml.Field, view, field string) string {
	if prop == "html" {
		return fmt.Sprintf("%s %q renders ${%s.%s} from another view", f.Type, f.Name, view, field)
	}
	return fmt.Sprintf("%s %q references ${%s.%s} from another view", f.Type, f.Name, view, field)
}
