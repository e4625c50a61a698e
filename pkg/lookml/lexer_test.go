package lookml_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func TestScan_LineKinds(t *testing.T) {
	in := strings.Join([]string{
		"# comment",
		"",
		"view: orders {",
		"  label: \"Orders\"",
		"  dimension: id {",
		"    sql: ${TABLE}.id ;;",
		"  }",
		"}",
	}, "\n")

	res := lookml.Scan(in, nil)
	require.Len(t, res.Lines, 8)
	assert.False(t, res.Degraded)

	kinds := make([]lookml.LineKind, len(res.Lines))
	for i, l := range res.Lines {
		kinds[i] = l.Kind
	}
	assert.Equal(t, []lookml.LineKind{
		lookml.LineComment,
		lookml.LineBlank,
		lookml.LineBlockOpen,
		lookml.LineProperty,
		lookml.LineBlockOpen,
		lookml.LineSQLOpen,
		lookml.LineBlockClose,
		lookml.LineBlockClose,
	}, kinds)
}

func TestScan_DepthTracking(t *testing.T) {
	in := strings.Join([]string{
		"explore: orders {",
		"  join: users {",
		"    relationship: many_to_one",
		"  }",
		"}",
	}, "\n")

	res := lookml.Scan(in, nil)
	require.Len(t, res.Lines, 5)

	depths := make([]int, len(res.Lines))
	for i, l := range res.Lines {
		depths[i] = l.Depth
	}
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
}

func TestScan_SQLSegments(t *testing.T) {
	t.Run("single line terminated", func(t *testing.T) {
		res := lookml.Scan("view: v {\n  sql_table_name: t ;;\n}", nil)
		l := res.Lines[1]
		assert.Equal(t, lookml.LineSQLOpen, l.Kind)
		assert.Equal(t, "sql_table_name", l.Property)
		assert.True(t, l.Terminated)
	})

	t.Run("multi line body", func(t *testing.T) {
		in := strings.Join([]string{
			"view: v {",
			"  derived_table: {",
			"    sql:",
			"      select 1",
			"      ;;",
			"  }",
			"}",
		}, "\n")
		res := lookml.Scan(in, nil)
		assert.Equal(t, lookml.LineSQLOpen, res.Lines[2].Kind)
		assert.False(t, res.Lines[2].Terminated)
		assert.Equal(t, lookml.LineSQL, res.Lines[3].Kind)
		assert.Equal(t, lookml.LineSQL, res.Lines[4].Kind)
		assert.True(t, res.Lines[4].Terminated)
	})

	t.Run("braces inside sql do not nest", func(t *testing.T) {
		in := strings.Join([]string{
			"view: v {",
			"  sql:",
			"    {% if x %}",
			"    select 1",
			"    ;;",
			"}",
		}, "\n")
		res := lookml.Scan(in, nil)
		assert.False(t, res.Degraded)
		assert.Equal(t, lookml.LineSQL, res.Lines[2].Kind)
		assert.Equal(t, lookml.LineBlockClose, res.Lines[5].Kind)
	})

	t.Run("custom sql property", func(t *testing.T) {
		props := lookml.SQLPropertySet([]string{"sql_custom"})
		res := lookml.Scan("view: v {\n  sql_custom: x ;;\n}", props)
		assert.Equal(t, lookml.LineSQLOpen, res.Lines[1].Kind)
	})
}

func TestScan_UnmatchedClose(t *testing.T) {
	res := lookml.Scan("}\nview: v {\n}", nil)
	assert.True(t, res.Degraded)
	require.Len(t, res.Anomalies, 1)
	assert.Equal(t, 1, res.Anomalies[0].Pos.Line)
	assert.Contains(t, res.Anomalies[0].Message, "unmatched")
}

func TestScan_UnterminatedAtEOF(t *testing.T) {
	t.Run("open block", func(t *testing.T) {
		res := lookml.Scan("view: v {\n  dimension: d {", nil)
		assert.True(t, res.Degraded)
		assert.Len(t, res.Anomalies, 2)
	})

	t.Run("open sql", func(t *testing.T) {
		res := lookml.Scan("view: v {\n  sql:\n    select 1", nil)
		assert.True(t, res.Degraded)
		require.NotEmpty(t, res.Anomalies)
		assert.Contains(t, res.Anomalies[0].Message, "SQL")
	})
}

func TestScan_Empty(t *testing.T) {
	res := lookml.Scan("", nil)
	assert.Empty(t, res.Lines)
	assert.False(t, res.Degraded)
}
