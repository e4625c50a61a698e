package lookml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func TestSQLPropertySet(t *testing.T) {
	set := lookml.SQLPropertySet([]string{"sql_custom", " ", ""})
	assert.True(t, set["sql"])
	assert.True(t, set["sql_on"])
	assert.True(t, set["html"])
	assert.True(t, set["sql_custom"])
	assert.False(t, set["label"])
}

func TestIsTruthy(t *testing.T) {
	assert.True(t, lookml.IsTruthy("yes"))
	assert.True(t, lookml.IsTruthy("Yes"))
	assert.True(t, lookml.IsTruthy("true"))
	assert.False(t, lookml.IsTruthy("no"))
	assert.False(t, lookml.IsTruthy(""))
}

func TestDeclaration_PropertyHelpers(t *testing.T) {
	in := strings.Join([]string{
		"view: orders {",
		"  sql_table_name: analytics.orders ;;",
		"  label: \"Orders\"",
		"  derived_table: {",
		"    sql: select 1 ;;",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	view := res.Doc.Views()[0]

	table, ok := view.PropertyValue("sql_table_name")
	require.True(t, ok)
	assert.Equal(t, "analytics.orders", table)

	label, ok := view.PropertyValue("label")
	require.True(t, ok)
	assert.Equal(t, "\"Orders\"", label)

	_, ok = view.PropertyValue("missing")
	assert.False(t, ok)

	// derived_table opens a block, so it never reads as a property.
	_, ok = view.PropertyValue("derived_table")
	assert.False(t, ok)
	assert.True(t, view.HasBlock("derived_table"))
}

func TestExtractBlocks_Nested(t *testing.T) {
	in := strings.Join([]string{
		"explore: e {",
		"  join: a {",
		"    type: left_outer",
		"  }",
		"  join: b {",
		"    sql_on: ${e.id} = ${b.id} ;;",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	joins := res.Doc.Explores()[0].Blocks("join")
	require.Len(t, joins, 2)
	assert.Equal(t, "a", joins[0].Name)
	assert.Equal(t, "b", joins[1].Name)

	jt, ok := joins[0].PropertyValue("type")
	require.True(t, ok)
	assert.Equal(t, "left_outer", jt)
}

func TestSQLText_BracesInBodyIgnored(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  derived_table: {",
		"    sql:",
		"      select {% if x %} 1 {% endif %}",
		"      ;;",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	require.False(t, res.Degraded)

	dt := res.Doc.Views()[0].Blocks("derived_table")
	require.Len(t, dt, 1)
	sql, ok := dt[0].SQLText("sql")
	require.True(t, ok)
	assert.Equal(t, "select {% if x %} 1 {% endif %}", sql)
}
