package format

import "strings"

// Options controls formatting. The zero value is not useful; start from
// DefaultOptions. Formatting reads nothing beyond the document text and
// this value.
type Options struct {
	IndentWidth       int
	UseSpaces         bool
	GroupFieldsByType bool
	SortFields        bool

	// SQLProperties lists additional SQL-bearing property names beyond the
	// built-in set.
	SQLProperties []string
}

// DefaultOptions returns the default formatting configuration.
func DefaultOptions() Options {
	return Options{
		IndentWidth: 2,
		UseSpaces:   true,
	}
}

// indentUnit returns the string emitted per nesting level.
func (o Options) indentUnit() string {
	if !o.UseSpaces {
		return "\t"
	}
	w := o.IndentWidth
	if w < 1 {
		w = 2
	}
	return strings.Repeat(" ", w)
}
