package lookml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func TestParse_TopLevelStructure(t *testing.T) {
	in := strings.Join([]string{
		"# Model file.",
		"include: \"*.view\"",
		"",
		"view: orders {",
		"  sql_table_name: analytics.orders ;;",
		"}",
		"",
		"explore: orders {",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	require.False(t, res.Degraded)
	require.Len(t, res.Doc.Items, 4)

	raw, ok := res.Doc.Items[0].(*lookml.RawText)
	require.True(t, ok)
	assert.Equal(t, []string{"# Model file.", "include: \"*.view\"", ""}, raw.Lines)

	view, ok := res.Doc.Items[1].(*lookml.Declaration)
	require.True(t, ok)
	assert.Equal(t, lookml.DeclView, view.Kind)
	assert.Equal(t, "orders", view.Name)
	assert.Equal(t, "view: orders {", view.Header())

	_, ok = res.Doc.Items[2].(*lookml.RawText)
	assert.True(t, ok)

	explore, ok := res.Doc.Items[3].(*lookml.Declaration)
	require.True(t, ok)
	assert.Equal(t, lookml.DeclExplore, explore.Kind)

	assert.Len(t, res.Doc.Views(), 1)
	assert.Len(t, res.Doc.Explores(), 1)
}

func TestParse_FieldCapture(t *testing.T) {
	in := strings.Join([]string{
		"view: orders {",
		"  # the primary key",
		"  dimension: id {",
		"    primary_key: yes",
		"    sql: ${TABLE}.id ;;",
		"  }",
		"",
		"  measure: total {",
		"    type: count",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	require.False(t, res.Degraded)

	views := res.Doc.Views()
	require.Len(t, views, 1)
	require.Len(t, views[0].Fields, 2)

	id := views[0].Field("id")
	require.NotNil(t, id)
	assert.Equal(t, lookml.FieldDimension, id.Kind)
	assert.Equal(t, []string{"# the primary key"}, id.Comments)
	assert.Equal(t, []string{"view"}, id.Parents)
	assert.Equal(t, 1, id.Depth())

	pk, ok := id.PropertyValue("primary_key")
	require.True(t, ok)
	assert.True(t, lookml.IsTruthy(pk))

	sql, ok := id.SQLText("sql")
	require.True(t, ok)
	assert.Equal(t, "${TABLE}.id", sql)

	total := views[0].Field("total")
	require.NotNil(t, total)
	assert.Equal(t, lookml.FieldMeasure, total.Kind)
}

func TestParse_CommentDetachedByBlank(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  # standalone note",
		"",
		"  dimension: d {",
		"    type: string",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	d := res.Doc.Views()[0].Field("d")
	require.NotNil(t, d)
	assert.Empty(t, d.Comments)
}

func TestParse_NestedBlocksStayContent(t *testing.T) {
	in := strings.Join([]string{
		"explore: orders {",
		"  join: users {",
		"    sql_on: ${orders.user_id} = ${users.id} ;;",
		"    relationship: many_to_one",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	explore := res.Doc.Explores()[0]
	assert.Empty(t, explore.Fields)

	joins := explore.Blocks("join")
	require.Len(t, joins, 1)
	assert.Equal(t, "users", joins[0].Name)

	sqlOn, ok := joins[0].SQLText("sql_on")
	require.True(t, ok)
	assert.Equal(t, "${orders.user_id} = ${users.id}", sqlOn)

	rel, ok := joins[0].PropertyValue("relationship")
	require.True(t, ok)
	assert.Equal(t, "many_to_one", rel)
}

func TestParse_MultiLineSQLText(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  derived_table: {",
		"    sql:",
		"      select 1",
		"      from t",
		"      ;;",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	view := res.Doc.Views()[0]
	dt := view.Blocks("derived_table")
	require.Len(t, dt, 1)

	sql, ok := dt[0].SQLText("sql")
	require.True(t, ok)
	assert.Equal(t, "select 1\nfrom t", sql)
}

func TestParse_FieldWithoutName(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  dimension: {",
		"    type: string",
		"  }",
		"}",
	}, "\n")

	res := lookml.Parse(in)
	require.NotEmpty(t, res.Anomalies)
	assert.Contains(t, res.Anomalies[0].Message, "without a name")
	assert.Empty(t, res.Doc.Views()[0].Fields)
}

func TestParse_ImplicitCloseAtEOF(t *testing.T) {
	res := lookml.Parse("view: v {\n  dimension: d {\n    type: string")
	assert.True(t, res.Degraded)

	views := res.Doc.Views()
	require.Len(t, views, 1)
	require.Len(t, views[0].Fields, 1)
	assert.Equal(t, "d", views[0].Fields[0].Name)
}

func TestParse_Empty(t *testing.T) {
	res := lookml.Parse("")
	assert.Empty(t, res.Doc.Items)
	assert.False(t, res.Degraded)
}
