// Package header turns a CSV header row into JSON keys.
package header

import (
	"strings"
	"unicode"

	"csv2json/internal/csvtext"
)

// Headers are the output keys, one per header cell, in header order.
type Headers []string

// Derive camelCases every cell of the first row. Raw header text found in overrides
// (after trimming) is used verbatim instead. overrides may be nil.
func Derive(t csvtext.Table, overrides map[string]string) Headers {
	row := t.Header()
	out := make(Headers, len(row))
	for i, raw := range row {
		if key, ok := overrides[strings.TrimSpace(raw)]; ok {
			out[i] = key
			continue
		}
		out[i] = CamelCase(raw)
	}
	return out
}

// CamelCase converts s to camelCase: "Incident ID" -> "incidentId",
// "date_reported" -> "dateReported", "HTTPServer" -> "httpServer".
// Applying it to its own output is a no-op.
func CamelCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i, w := range Words(s) {
		rs := []rune(strings.ToLower(w))
		if i > 0 {
			rs[0] = unicode.ToUpper(rs[0])
		}
		b.WriteString(string(rs))
	}
	return b.String()
}

// Words splits s into words. Diacritics and apostrophes are removed first, then any
// rune that is not a letter or digit is a separator.
// Inside a run of letters and digits a new word starts at a lower-to-upper transition,
// at the last capital of an acronym followed by a lower-case letter, and wherever
// letters and digits meet.
func Words(s string) []string {
	var (
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	rs := []rune(apostrophes.Replace(Deburr(s)))
	for i, r := range rs {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(cur) > 0 && boundary(cur[len(cur)-1], r, next(rs, i)) {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func next(rs []rune, i int) rune {
	if i+1 < len(rs) {
		return rs[i+1]
	}
	return 0
}

func boundary(prev, r, after rune) bool {
	switch {
	case unicode.IsDigit(prev) != unicode.IsDigit(r):
		return true
	case unicode.IsLower(prev) && unicode.IsUpper(r):
		return true
	case unicode.IsUpper(prev) && unicode.IsUpper(r) && unicode.IsLower(after):
		return true
	}
	return false
}
