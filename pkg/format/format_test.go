package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookstack-labs/lookfmt/pkg/format"
)

func TestFormat_PropertySpacing(t *testing.T) {
	in := strings.Join([]string{
		"view: orders {",
		"  dimension: id {",
		"    type:number",
		"    sql:${TABLE}.id;;",
		"  }",
		"}",
		"",
	}, "\n")

	res := format.Format(in, format.DefaultOptions())
	require.False(t, res.Degraded)

	want := strings.Join([]string{
		"view: orders {",
		"  dimension: id {",
		"    type: number",
		"    sql: ${TABLE}.id ;;",
		"  }",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, res.Output)
	assert.True(t, res.Changed)
}

func TestFormat_SQLKeywordsAndOperators(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  measure: big {",
		"    sql: case when ${TABLE}.amount>100 then 1 else 0 end ;;",
		"  }",
		"}",
		"",
	}, "\n")

	res := format.Format(in, format.DefaultOptions())
	assert.Contains(t, res.Output, "sql: CASE WHEN ${TABLE}.amount > 100 THEN 1 ELSE 0 END ;;")
}

func TestFormat_MultiLineSQLTwoTier(t *testing.T) {
	in := strings.Join([]string{
		"view: v {",
		"  derived_table: {",
		"    sql:",
		"      select id, amount",
		"      from ${orders.SQL_TABLE_NAME}",
		"      where amount>0",
		"        and id is not null",
		"      ;;",
		"  }",
		"}",
		"",
	}, "\n")

	res := format.Format(in, format.DefaultOptions())
	require.False(t, res.Degraded)

	want := strings.Join([]string{
		"view: v {",
		"  derived_table: {",
		"    sql:",
		"    SELECT id, amount",
		"    FROM ${orders.SQL_TABLE_NAME}",
		"    WHERE amount > 0",
		"      AND id is not null",
		"    ;;",
		"  }",
		"}",
		"",
	}, "\n")
	// "is not" stays as written: neither word is on the rewrite list.
	assert.Equal(t, want, res.Output)
}

func TestFormat_OpaqueAtomsPreserved(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want string
	}{
		{
			name: "liquid tag",
			sql:  "sql: {% if dts._in_query %}select 1{% endif %} ;;",
			want: "sql: {% if dts._in_query %}SELECT 1{% endif %} ;;",
		},
		{
			name: "liquid output",
			sql:  "sql: {{ value }} || '%' ;;",
			want: "sql: {{ value }} || '%' ;;",
		},
		{
			name: "substitution with operators inside",
			sql:  "sql: ${a>b} ;;",
			want: "sql: ${a>b} ;;",
		},
		{
			name: "unterminated atom swallows the rest",
			sql:  "sql: {% if from ;;",
			want: "sql: {% if from ;;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := "view: v {\n  dimension: d {\n    " + tt.sql + "\n  }\n}\n"
			res := format.Format(in, format.DefaultOptions())
			assert.Contains(t, res.Output, tt.want)
		})
	}
}

func TestFormat_GroupAndSortFields(t *testing.T) {
	in := strings.Join([]string{
		"view: orders {",
		"  sql_table_name: analytics.orders ;;",
		"",
		"  measure: total {",
		"    type: count",
		"  }",
		"",
		"  # revenue dimension",
		"  dimension: revenue {",
		"    type: number",
		"  }",
		"",
		"  dimension: id {",
		"    type: number",
		"  }",
		"",
		"  filter: date_filter {",
		"    type: date",
		"  }",
		"}",
		"",
	}, "\n")

	opts := format.DefaultOptions()
	opts.GroupFieldsByType = true
	opts.SortFields = true
	res := format.Format(in, opts)
	require.False(t, res.Degraded)

	want := strings.Join([]string{
		"view: orders {",
		"  sql_table_name: analytics.orders ;;",
		"",
		"  # ----- Filters -----",
		"",
		"  filter: date_filter {",
		"    type: date",
		"  }",
		"",
		"  # ----- End of Filters -----",
		"",
		"  # ----- Dimensions -----",
		"",
		"  dimension: id {",
		"    type: number",
		"  }",
		"",
		"  # revenue dimension",
		"  dimension: revenue {",
		"    type: number",
		"  }",
		"",
		"  # ----- End of Dimensions -----",
		"",
		"  # ----- Measures -----",
		"",
		"  measure: total {",
		"    type: count",
		"  }",
		"",
		"  # ----- End of Measures -----",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, res.Output)
}

func TestFormat_MarkersNotDuplicated(t *testing.T) {
	opts := format.DefaultOptions()
	opts.GroupFieldsByType = true
	opts.SortFields = true

	in := "view: v {\n  dimension: b {\n    type: string\n  }\n\n  dimension: a {\n    type: string\n  }\n}\n"
	first := format.Format(in, opts)
	second := format.Format(first.Output, opts)

	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, 1, strings.Count(second.Output, "# ----- Dimensions -----"))
	assert.Equal(t, 1, strings.Count(second.Output, "# ----- End of Dimensions -----"))
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := map[string]string{
		"plain view": strings.Join([]string{
			"include: \"*.view\"",
			"",
			"view: orders {",
			"  sql_table_name: analytics.orders ;;",
			"",
			"  dimension: id {",
			"    primary_key: yes",
			"    sql: ${TABLE}.id ;;",
			"  }",
			"",
			"  measure: count {",
			"    type: count",
			"  }",
			"}",
			"",
		}, "\n"),
		"explore with joins": strings.Join([]string{
			"explore: orders {",
			"  join: users {",
			"    sql_on: ${orders.user_id}=${users.id} ;;",
			"    relationship: many_to_one",
			"  }",
			"}",
			"",
		}, "\n"),
		"messy spacing": "view: v {\n  dimension: d {\n    type:number\n    sql:${TABLE}.d;;\n  }\n}\n",
		"multi-line sql": strings.Join([]string{
			"view: v {",
			"  derived_table: {",
			"    sql:",
			"      select id",
			"      from t",
			"      where id>0",
			"      ;;",
			"  }",
			"}",
			"",
		}, "\n"),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			for _, opts := range []format.Options{
				format.DefaultOptions(),
				{IndentWidth: 2, UseSpaces: true, GroupFieldsByType: true, SortFields: true},
				{IndentWidth: 4, UseSpaces: true, GroupFieldsByType: true},
			} {
				first := format.Format(in, opts)
				second := format.Format(first.Output, opts)
				assert.Equal(t, first.Output, second.Output)
			}
		})
	}
}

func TestFormat_InterstitialTextPreserved(t *testing.T) {
	in := strings.Join([]string{
		"# Orders model.",
		"connection: \"warehouse\"",
		"include: \"*.view\"",
		"",
		"explore: orders {",
		"}",
		"",
	}, "\n")

	res := format.Format(in, format.DefaultOptions())
	assert.Equal(t, in, res.Output)
	assert.False(t, res.Changed)
}

func TestFormat_DegradedInput(t *testing.T) {
	in := "view: v {\n  dimension: d {\n    type: number\n"
	res := format.Format(in, format.DefaultOptions())

	assert.True(t, res.Degraded)
	assert.NotEmpty(t, res.Anomalies)

	want := strings.Join([]string{
		"view: v {",
		"  dimension: d {",
		"    type: number",
		"  }",
		"}",
		"",
	}, "\n")
	assert.Equal(t, want, res.Output)
}

func TestFormat_EmptyInput(t *testing.T) {
	res := format.Format("", format.DefaultOptions())
	assert.Equal(t, "", res.Output)
	assert.False(t, res.Changed)
	assert.False(t, res.Degraded)
}

func TestFormat_TabIndent(t *testing.T) {
	opts := format.DefaultOptions()
	opts.UseSpaces = false

	res := format.Format("view: v {\n  dimension: d {\n    type: number\n  }\n}\n", opts)
	assert.Contains(t, res.Output, "\tdimension: d {\n\t\ttype: number\n\t}")
}
