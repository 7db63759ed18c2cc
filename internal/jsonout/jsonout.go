// Package jsonout renders typed CSV rows as JSON text by concatenation.
//
// Without Options.Escape, keys and string values are written between double quotes
// exactly as they are. A value holding a quote, a backslash or a control character
// then produces text that is not valid JSON.
package jsonout

import (
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"csv2json/internal/csvtext"
	"csv2json/internal/header"
	"csv2json/internal/schema"
)

// TraceFunc observes every field as it is rendered.
type TraceFunc func(key, raw string, v schema.Value)

type Options struct {
	// Escape encodes keys and strings as proper JSON strings.
	Escape bool
	// Strict fails on the first data row whose length differs from the header.
	Strict bool
	Trace  TraceFunc
}

// RowError reports a data row whose cell count differs from the header.
//
// Row is the 1-based position of the row in the table, the header being row 1.
// With csvtext.Parse that is the source line. csvtext.ParseRFC4180 skips blank lines
// and lets quoted fields span lines, so there it is the record number instead.
type RowError struct {
	Row  int
	Want int
	Got  int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: want %d cells, got %d", e.Row, e.Want, e.Got)
}

// Stats counts what Document rendered.
type Stats struct {
	Rows       int
	Mismatched int
}

// Record renders one data row as a JSON object. Keys and cells are paired by position;
// whatever is left over on the longer side is dropped.
func Record(keys header.Headers, row csvtext.Row, opt Options) string {
	n := min(len(keys), len(row))

	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < n; i++ {
		v := schema.Classify(row[i])
		if opt.Trace != nil {
			opt.Trace(keys[i], row[i], v)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		writeString(&b, keys[i], opt.Escape)
		b.WriteByte(':')
		writeValue(&b, v, opt.Escape)
	}
	b.WriteByte('}')
	return b.String()
}

// Document renders every data row of t as a JSON array. A last row holding a single
// empty cell comes from a trailing newline and is left out.
func Document(keys header.Headers, t csvtext.Table, opt Options) (string, Stats, error) {
	rows := t.Data()
	if k := len(rows); k > 0 && len(rows[k-1]) == 1 && rows[k-1][0] == "" {
		rows = rows[:k-1]
	}

	var (
		b  strings.Builder
		st Stats
	)
	b.WriteByte('[')
	for i, row := range rows {
		if len(row) != len(keys) {
			if opt.Strict {
				return "", st, &RowError{Row: i + 2, Want: len(keys), Got: len(row)}
			}
			st.Mismatched++
		}
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(Record(keys, row, opt))
		st.Rows++
	}
	b.WriteByte(']')
	return b.String(), st, nil
}

func writeValue(b *strings.Builder, v schema.Value, escape bool) {
	if v.Kind == schema.Int {
		b.WriteString(v.Literal())
		return
	}
	// JSON has no infinity literal, so Infinite is written as text like any string.
	writeString(b, v.Raw, escape)
}

func writeString(b *strings.Builder, s string, escape bool) {
	if escape {
		if q, err := sonic.MarshalString(s); err == nil {
			b.WriteString(q)
			return
		}
	}
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')
}
