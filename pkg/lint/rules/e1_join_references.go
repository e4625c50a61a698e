package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lookstack-labs/lookfmt/pkg/lint"
	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func init() {
	lint.Register(JoinRawReferences)
}

// refRe matches a bare column reference of the form identifier.identifier.
var refRe = regexp.MustCompile(`([A-Za-z_]\w*)\.([A-Za-z_]\w*)`)

// JoinRawReferences flags bare table.column references in join conditions.
// Joins should use ${view.field} substitutions so renames propagate; raw
// references prefixed with safe. are explicitly allowed.
var JoinRawReferences = lint.RuleDef{
	ID:          "E1",
	Name:        "explore.join-substitutions",
	Group:       "references",
	Description: "Join conditions should use ${view.field} substitutions, not raw table.column references.",
	Severity:    lint.SeverityWarning,
	Check:       checkJoinReferences,
	Rationale: "A raw table.column reference in sql_on bypasses the model: it breaks " +
		"when the underlying table moves and never benefits from field-level access rules.",
	BadExample: `explore: orders {
  join: users {
    sql_on: orders.user_id = users.id ;;
  }
}`,
	GoodExample: `explore: orders {
  join: users {
    sql_on: ${orders.user_id} = ${users.id} ;;
  }
}`,
	Fix: "Wrap the reference in a substitution: ${view.field}.",
}

func checkJoinReferences(doc *lookml.Document, _ map[string]any) []lint.Violation {
	var violations []lint.Violation
	for _, d := range doc.Declarations() {
		if d.Kind == lookml.DeclExplore {
			violations = append(violations, joinViolations(d.Name, d.Blocks("join"))...)
			continue
		}
		// Model files nest explores; scan those too.
		for _, ex := range d.Blocks("explore") {
			violations = append(violations, joinViolations(ex.Name, ex.Blocks("join"))...)
		}
	}
	return violations
}

func joinViolations(exploreName string, joins []*lookml.Block) []lint.Violation {
	var violations []lint.Violation
	for _, join := range joins {
		sqlOn, ok := join.SQLText("sql_on")
		if !ok {
			continue
		}
		for _, ref := range bareReferences(sqlOn) {
			violations = append(violations, lint.Violation{
				Message: fmt.Sprintf("join %q uses raw reference %q; use ${%s} instead", join.Name, ref, ref),
				Path:    []string{"explore", exploreName, "join", join.Name, "sql_on"},
			})
		}
	}
	return violations
}

// bareReferences extracts identifier.identifier references that sit outside
// substitutions and templating tags. References under the safe. prefix are
// allowed through.
func bareReferences(sql string) []string {
	var refs []string
	for _, line := range strings.Split(sql, "\n") {
		plain := stripOpaque(line)
		for _, m := range refRe.FindAllStringSubmatch(plain, -1) {
			if strings.EqualFold(m[1], "safe") {
				continue
			}
			refs = append(refs, m[0])
		}
	}
	return refs
}

// stripOpaque blanks out substitutions and templating tags, replacing each
// with a space so identifiers on either side never merge into a reference.
func stripOpaque(s string) string {
	var b strings.Builder
	for len(s) > 0 {
		start, closer := -1, ""
		for _, c := range []struct{ open, close string }{
			{"{%", "%}"},
			{"{{", "}}"},
			{"${", "}"},
		} {
			if i := strings.Index(s, c.open); i >= 0 && (start < 0 || i < start) {
				start = i
				closer = c.close
			}
		}
		if start < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		b.WriteByte(' ')
		rest := s[start:]
		end := strings.Index(rest[2:], closer)
		if end < 0 {
			break
		}
		s = rest[2+end+len(closer):]
	}
	return b.String()
}
