package format

import (
	"regexp"
	"strings"
)

// SQL normalization rewrites a fixed keyword list to upper case and spaces
// comparison operators, while templating tags ({% %}, {{ }}) and
// substitution tokens (${ }) pass through byte for byte. A line the rules
// cannot confidently classify is left alone apart from indentation.

var (
	sqlKeywordRe = regexp.MustCompile(`(?i)\b(select|from|where|having|join|inner|left|right|full|outer|cross|on|and|or|as|with|union|except|intersect|case|when|then|else|end|limit|offset|count|sum|avg|min|max|between|in|exists|distinct|all)\b`)

	// Multi-word keywords are matched as an adjacent pair.
	sqlKeywordPairRe = regexp.MustCompile(`(?i)\b(group|order)\s+by\b`)

	sqlOperatorRe = regexp.MustCompile(`\s*(<=|>=|!=|<>|<|>|=)\s*`)
	multiSpaceRe  = regexp.MustCompile(`  +`)

	// Primary keywords anchor a line at base depth; everything else goes one
	// level deeper.
	sqlPrimaryRe = regexp.MustCompile(`^(SELECT|FROM|WHERE|GROUP BY|ORDER BY|HAVING|UNION|LIMIT|((INNER|CROSS|((LEFT|RIGHT|FULL)( OUTER)?))\s+)?JOIN)\b`)
)

// sqlChunk is a span of a line: either rewritable SQL text or an opaque atom.
type sqlChunk struct {
	text   string
	opaque bool
}

// splitOpaque splits a line into SQL text and opaque atoms. An atom left
// unterminated on the line swallows the rest of it, so a tag spanning lines
// is never rewritten partially.
func splitOpaque(s string) []sqlChunk {
	var chunks []sqlChunk
	for len(s) > 0 {
		start, closer := nextAtom(s)
		if start < 0 {
			chunks = append(chunks, sqlChunk{text: s})
			break
		}
		if start > 0 {
			chunks = append(chunks, sqlChunk{text: s[:start]})
		}
		rest := s[start:]
		end := strings.Index(rest[2:], closer)
		if end < 0 {
			chunks = append(chunks, sqlChunk{text: rest, opaque: true})
			break
		}
		atom := rest[:2+end+len(closer)]
		chunks = append(chunks, sqlChunk{text: atom, opaque: true})
		s = rest[len(atom):]
	}
	return chunks
}

// nextAtom finds the earliest opaque atom opener and its closing token.
func nextAtom(s string) (int, string) {
	start := -1
	closer := ""
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
	return start, closer
}

// normalizeSQLValue applies keyword casing and operator spacing to a single
// line of SQL, leaving opaque atoms untouched, and trims the result.
func normalizeSQLValue(s string) string {
	var b strings.Builder
	for _, c := range splitOpaque(s) {
		if c.opaque {
			b.WriteString(c.text)
			continue
		}
		t := sqlKeywordPairRe.ReplaceAllStringFunc(c.text, func(m string) string {
			return strings.ToUpper(strings.Join(strings.Fields(m), " "))
		})
		t = sqlKeywordRe.ReplaceAllStringFunc(t, strings.ToUpper)
		t = sqlOperatorRe.ReplaceAllString(t, " $1 ")
		t = multiSpaceRe.ReplaceAllString(t, " ")
		b.WriteString(t)
	}
	return strings.TrimSpace(b.String())
}

// isPrimarySQLLine reports whether a normalized line starts with a primary
// SQL keyword.
func isPrimarySQLLine(s string) bool {
	return sqlPrimaryRe.MatchString(s)
}
