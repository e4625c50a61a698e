package rules

import (
	"fmt"
	"regexp"

	"github.com/lookstack-labs/lookfmt/pkg/lint"
	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func init() {
	lint.Register(PrimaryKeyRequired)
}

// pkNameRe matches the required naming scheme for primary key dimensions:
// "pk" optionally followed by digits, case-insensitive.
var pkNameRe = regexp.MustCompile(`(?i)^pk\d*$`)

// PrimaryKeyRequired checks that every view backed by a table declares a
// primary key dimension, and that the dimension follows the pk naming
// scheme. Views without a backing table (field-only refinement views) are
// skipped.
var PrimaryKeyRequired = lint.RuleDef{
	ID:          "K1",
	Name:        "view.primary-key",
	Group:       "keys",
	Description: "Views backed by a table must declare a correctly named primary key dimension.",
	Severity:    lint.SeverityWarning,
	Check:       checkPrimaryKey,
	Rationale: "Without a primary key Looker cannot perform symmetric aggregates, " +
		"so measures across joined views silently return wrong results.",
	BadExample: `view: orders {
  sql_table_name: analytics.orders ;;

  dimension: id {
    primary_key: yes
  }
}`,
	GoodExample: `view: orders {
  sql_table_name: analytics.orders ;;

  dimension: pk {
    primary_key: yes
    sql: ${TABLE}.id ;;
  }
}`,
	Fix: "Add a dimension with primary_key: yes named pk, or pk1, pk2, ... for composite keys.",
}

func checkPrimaryKey(doc *lookml.Document, _ map[string]any) []lint.Violation {
	var violations []lint.Violation
	for _, view := range doc.Views() {
		if !hasBackingTable(view) {
			continue
		}

		var pks []*lookml.Field
		for _, f := range view.Fields {
			if f.Kind != lookml.FieldDimension {
				continue
			}
			if v, ok := f.PropertyValue("primary_key"); ok && lookml.IsTruthy(v) {
				pks = append(pks, f)
			}
		}

		if len(pks) == 0 {
			violations = append(violations, lint.Violation{
				Message: fmt.Sprintf("view %q has no primary key dimension", view.Name),
				Path:    []string{view.Type, view.Name},
			})
			continue
		}
		for _, f := range pks {
			if !pkNameRe.MatchString(f.Name) {
				violations = append(violations, lint.Violation{
					Message: fmt.Sprintf("primary key dimension %q should be named pk or pkN", f.Name),
					Path:    []string{view.Type, view.Name, f.Type, f.Name, "primary_key"},
				})
			}
		}
	}
	return violations
}

// hasBackingTable reports whether the view is bound to a physical table or a
// derived table.
func hasBackingTable(view *lookml.Declaration) bool {
	if _, ok := view.PropertyValue("sql_table_name"); ok {
		return true
	}
	return view.HasBlock("derived_table")
}
