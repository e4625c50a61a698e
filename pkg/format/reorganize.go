package format

import (
	"regexp"
	"sort"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Fields inside a view are emitted in category sections. Each marked section
// is wrapped in banner comments so a later run can recognize and strip them
// before regrouping, which keeps the pass idempotent.

var sectionMarkerRe = regexp.MustCompile(`^# ----- (End of )?[A-Za-z ]+ -----$`)

// section is one run of fields under an optional banner.
type section struct {
	name   string // empty for the unmarked trailing section
	fields []*lookml.Field
}

var fieldCategories = []struct {
	name  string
	kinds map[lookml.FieldKind]bool
}{
	{"Filters", map[lookml.FieldKind]bool{lookml.FieldFilter: true}},
	{"Parameters", map[lookml.FieldKind]bool{lookml.FieldParameter: true}},
	{"Dimensions", map[lookml.FieldKind]bool{lookml.FieldDimension: true, lookml.FieldDimensionGroup: true}},
	{"Measures", map[lookml.FieldKind]bool{lookml.FieldMeasure: true}},
}

// arrange orders a declaration's fields into sections according to the
// grouping and sorting options.
func arrange(fields []*lookml.Field, opts Options) []section {
	if !opts.GroupFieldsByType {
		out := make([]*lookml.Field, len(fields))
		copy(out, fields)
		if opts.SortFields {
			sortFields(out)
		}
		return []section{{fields: out}}
	}

	var sections []section
	claimed := make(map[*lookml.Field]bool)
	for _, cat := range fieldCategories {
		var group []*lookml.Field
		for _, f := range fields {
			if cat.kinds[f.Kind] {
				group = append(group, f)
				claimed[f] = true
			}
		}
		if len(group) == 0 {
			continue
		}
		if opts.SortFields {
			sortFields(group)
		}
		sections = append(sections, section{name: cat.name, fields: group})
	}

	var others []*lookml.Field
	for _, f := range fields {
		if !claimed[f] {
			others = append(others, f)
		}
	}
	if len(others) > 0 {
		if opts.SortFields {
			sortFields(others)
		}
		sections = append(sections, section{fields: others})
	}
	return sections
}

// sortFields sorts fields by name using locale-aware collation. The sort is
// stable so fields with equal names keep their source order.
func sortFields(fields []*lookml.Field) {
	c := collate.New(language.Und)
	sort.SliceStable(fields, func(i, j int) bool {
		return c.CompareString(fields[i].Name, fields[j].Name) < 0
	})
}

// isSectionMarker reports whether a comment line is a banner written by a
// previous formatting run.
func isSectionMarker(s string) bool {
	return sectionMarkerRe.MatchString(s)
}
