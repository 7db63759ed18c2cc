package csvtext

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type Options struct {
	Comma      rune
	Comment    rune
	LazyQuotes bool
	TrimSpace  bool
}

// DefaultRFC4180 is lenient: lazy quotes, any field count.
var DefaultRFC4180 = Options{Comma: ',', LazyQuotes: true}

// ParseRFC4180 tokenizes text with encoding/csv instead of the comma heuristic.
// Quoted fields may hold commas, escaped quotes and newlines. Blank lines are skipped by
// encoding/csv, so there is never a trailing empty row.
func ParseRFC4180(text string, opt Options) (Table, error) {
	cr := csv.NewReader(bufio.NewReaderSize(strings.NewReader(text), 1<<16))
	if opt.Comma != 0 {
		cr.Comma = opt.Comma
	}
	if opt.Comment != 0 {
		cr.Comment = opt.Comment
	}
	cr.LazyQuotes = opt.LazyQuotes
	cr.TrimLeadingSpace = opt.TrimSpace
	cr.FieldsPerRecord = -1

	var out Table
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rfc4180: %w", err)
		}
		out = append(out, Row(rec))
	}
	if len(out) == 0 {
		// same shape as Parse("")
		out = Table{Row{""}}
	}
	return out, nil
}
