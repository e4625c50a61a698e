package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

func fieldsOf(specs ...[2]string) []*lookml.Field {
	var fields []*lookml.Field
	for _, s := range specs {
		kind, _ := lookml.FieldKindOf(s[0])
		fields = append(fields, &lookml.Field{Kind: kind, Type: s[0], Name: s[1]})
	}
	return fields
}

func TestArrange_Grouping(t *testing.T) {
	fields := fieldsOf(
		[2]string{"measure", "total"},
		[2]string{"dimension", "id"},
		[2]string{"dimension_group", "created"},
		[2]string{"filter", "date_filter"},
		[2]string{"parameter", "timeframe"},
	)

	sections := arrange(fields, Options{GroupFieldsByType: true})
	var names []string
	for _, s := range sections {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{"Filters", "Parameters", "Dimensions", "Measures"}, names)

	// Dimension groups share the Dimensions section.
	assert.Len(t, sections[2].fields, 2)
}

func TestArrange_SortIsLocaleAwareAndStable(t *testing.T) {
	fields := fieldsOf(
		[2]string{"dimension", "zeta"},
		[2]string{"dimension", "état"},
		[2]string{"dimension", "alpha"},
	)

	sections := arrange(fields, Options{GroupFieldsByType: true, SortFields: true})
	var names []string
	for _, f := range sections[0].fields {
		names = append(names, f.Name)
	}
	// Collation puts the accented name between the plain ones, not after "z".
	assert.Equal(t, []string{"alpha", "état", "zeta"}, names)
}

func TestArrange_UngroupedKeepsOrder(t *testing.T) {
	fields := fieldsOf(
		[2]string{"measure", "total"},
		[2]string{"dimension", "id"},
	)

	sections := arrange(fields, Options{})
	assert.Len(t, sections, 1)
	assert.Empty(t, sections[0].name)
	assert.Equal(t, "total", sections[0].fields[0].Name)
	assert.Equal(t, "id", sections[0].fields[1].Name)
}

func TestIsSectionMarker(t *testing.T) {
	assert.True(t, isSectionMarker("# ----- Dimensions -----"))
	assert.True(t, isSectionMarker("# ----- End of Dimensions -----"))
	assert.False(t, isSectionMarker("# dimensions"))
	assert.False(t, isSectionMarker("# ----- notes"))
}
