package lint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookstack-labs/lookfmt/pkg/lint"
)

func TestLocate(t *testing.T) {
	text := strings.Join([]string{
		"view: orders {",  // 1
		"  sql_table_name: t ;;", // 2
		"",               // 3
		"  dimension: id {", // 4
		"    primary_key: yes", // 5
		"    sql: ${TABLE}.id ;;", // 6
		"  }",            // 7
		"}",              // 8
		"",               // 9
		"explore: orders {", // 10
		"  join: users {", // 11
		"    sql_on: a.b = c.d ;;", // 12
		"  }",            // 13
		"}",              // 14
	}, "\n")

	tests := []struct {
		name     string
		path     []string
		wantLine int
	}{
		{"view", []string{"view", "orders"}, 1},
		{"field", []string{"view", "orders", "dimension", "id"}, 4},
		{"field property", []string{"view", "orders", "dimension", "id", "primary_key"}, 5},
		{"declaration property", []string{"view", "orders", "sql_table_name"}, 2},
		{"join property", []string{"explore", "orders", "join", "users", "sql_on"}, 12},
		{"unknown member falls back to declaration", []string{"view", "orders", "dimension", "missing"}, 1},
		{"unknown declaration", []string{"view", "missing"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := lint.Locate(text, tt.path)
			assert.Equal(t, tt.wantLine, pos.Line)
		})
	}
}

func TestLocate_Degenerate(t *testing.T) {
	assert.Zero(t, lint.Locate("", []string{"view", "v"}).Line)
	assert.Zero(t, lint.Locate("view: v {\n}", nil).Line)
	assert.Zero(t, lint.Locate("view: v {\n}", []string{"view"}).Line)
}
