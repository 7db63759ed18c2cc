package csvtext

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Row is one line of the source, split into cells.
type Row []string

// Table holds every row of a document. Row 0 is the header row.
type Table []Row

// Header returns the first row, or nil for an empty table.
func (t Table) Header() Row {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Data returns every row after the header.
func (t Table) Data() []Row {
	if len(t) < 2 {
		return nil
	}
	return t[1:]
}

// Parse splits text into rows and cells using the comma heuristic.
// A trailing newline leaves a final row holding one empty cell; callers decide what to do with it.
func Parse(text string) Table {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	out := make(Table, len(lines))
	for i, line := range lines {
		cells := SplitCells(line)
		for j := range cells {
			cells[j] = StripQuotes(cells[j])
		}
		out[i] = cells
	}
	return out
}

// SplitCells splits a line on commas, except commas followed by whitespace,
// which stay inside the current cell ("x, y" is one cell).
// This is not RFC 4180; see ParseRFC4180 for that.
func SplitCells(line string) Row {
	cells := make(Row, 0, strings.Count(line, ",")+1)
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] != ',' {
			continue
		}
		if next, _ := utf8.DecodeRuneInString(line[i+1:]); next != utf8.RuneError && unicode.IsSpace(next) {
			continue
		}
		cells = append(cells, line[start:i])
		start = i + 1
	}
	return append(cells, line[start:])
}

// StripQuotes removes every double quote from s.
func StripQuotes(s string) string {
	if strings.IndexByte(s, '"') < 0 {
		return s
	}
	return strings.ReplaceAll(s, `"`, "")
}
