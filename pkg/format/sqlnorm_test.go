package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSQLValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keywords upper", "select a from t", "SELECT a FROM t"},
		{"pair keyword", "group   by a order by b", "GROUP BY a ORDER BY b"},
		{"operator spacing", "a>=1 and b<2", "a >= 1 AND b < 2"},
		{"collapse runs", "select   a,   b", "SELECT a, b"},
		{"atom untouched", "coalesce(${TABLE}.x, {{ value }})", "coalesce(${TABLE}.x, {{ value }})"},
		{"keyword inside atom", "${select_field} from t", "${select_field} FROM t"},
		{"word boundaries", "selected fromage", "selected fromage"},
		{"unterminated atom", "a = {% if x", "a = {% if x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeSQLValue(tt.in))
		})
	}
}

func TestSplitOpaque(t *testing.T) {
	chunks := splitOpaque("a ${x.y} b {% raw %} c")
	var opaque []string
	for _, c := range chunks {
		if c.opaque {
			opaque = append(opaque, c.text)
		}
	}
	assert.Equal(t, []string{"${x.y}", "{% raw %}"}, opaque)
}

func TestIsPrimarySQLLine(t *testing.T) {
	assert.True(t, isPrimarySQLLine("SELECT a"))
	assert.True(t, isPrimarySQLLine("LEFT OUTER JOIN t ON a = b"))
	assert.True(t, isPrimarySQLLine("GROUP BY 1"))
	assert.False(t, isPrimarySQLLine("AND a = b"))
	assert.False(t, isPrimarySQLLine("CASE"))
}
