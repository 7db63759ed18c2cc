package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"csv2json/internal/header"
	"csv2json/internal/iox"
	"csv2json/internal/jsonout"
)

const incidents = "Incident ID,Severity\n1,High\n2,Low\n"

func TestString(t *testing.T) {
	t.Parallel()

	res, err := String(incidents, Options{})
	require.NoError(t, err)
	assert.Equal(t, `[{"incidentId":1,"severity":"High"},{"incidentId":2,"severity":"Low"}]`, res.JSON)
	assert.Equal(t, header.Headers{"incidentId", "severity"}, res.Headers)
	assert.Equal(t, 2, res.Rows)
	assert.Zero(t, res.Mismatched)
}

func TestStringRoundTrip(t *testing.T) {
	t.Parallel()

	input := "Name,Age,Score,City\r\nann,31,4.5,Oslo\r\nbob,-2,,\"New York\"\r\n"
	res, err := String(input, Options{Validate: true})
	require.NoError(t, err)

	parsed := gjson.Parse(res.JSON)
	require.True(t, parsed.IsArray())
	rows := parsed.Array()
	require.Len(t, rows, 2)

	assert.Equal(t, "ann", rows[0].Get("name").String())
	assert.Equal(t, int64(31), rows[0].Get("age").Int())
	assert.Equal(t, gjson.String, rows[0].Get("score").Type)
	assert.Equal(t, int64(-2), rows[1].Get("age").Int())
	assert.Equal(t, "", rows[1].Get("score").String())
	assert.Equal(t, "New York", rows[1].Get("city").String())

	var keys []string
	rows[0].ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{"name", "age", "score", "city"}, keys, "field order follows the header")
}

func TestStringKeyOverrides(t *testing.T) {
	t.Parallel()

	res, err := String(incidents, Options{Keys: map[string]string{"Incident ID": "id"}})
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"severity":"High"},{"id":2,"severity":"Low"}]`, res.JSON)
}

func TestStringTokenizers(t *testing.T) {
	t.Parallel()

	input := "name,n\n\"a,b\",1\n"

	smart, err := String(input, Options{})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a","n":"b"}]`, smart.JSON)
	assert.Equal(t, 1, smart.Mismatched)

	strict, err := String(input, Options{Tokenizer: TokenizerRFC4180})
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"a,b","n":1}]`, strict.JSON)

	_, err = String(input, Options{Tokenizer: "fancy"})
	require.ErrorIs(t, err, ErrUnknownTokenizer)
}

func TestStringValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		cell  string
	}{
		{"bad escape", "path\nC:\\data\n", `C:\data`},
		{"raw tab", "note\nx\ty\n", "x\ty"},
		{"raw backslash at end", "path\nC:\\\n", `C:\`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			plain, err := String(tt.input, Options{})
			require.NoError(t, err)
			assert.False(t, gjson.Valid(plain.JSON), "unescaped output is not JSON: %s", plain.JSON)

			_, err = String(tt.input, Options{Validate: true})
			require.ErrorIs(t, err, ErrInvalidJSON)

			res, err := String(tt.input, Options{Validate: true, JSON: jsonout.Options{Escape: true}})
			require.NoError(t, err)
			assert.Equal(t, tt.cell, gjson.Get(res.JSON, "0.*").String())
		})
	}
}

func TestStringValidateAcceptsPlainOutput(t *testing.T) {
	t.Parallel()

	res, err := String(incidents, Options{Validate: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
}

func TestStringStrict(t *testing.T) {
	t.Parallel()

	_, err := String("a,b\n1\n", Options{JSON: jsonout.Options{Strict: true}})
	var rowErr *jsonout.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Row)
}

func TestStringStrictRowNumbers(t *testing.T) {
	t.Parallel()

	// blank line and a two-line quoted field before the short row
	input := "a,b\n1,2\n\n\"x\ny\",3\n4\n"

	_, err := String(input, Options{Tokenizer: TokenizerRFC4180, JSON: jsonout.Options{Strict: true}})
	var rowErr *jsonout.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 4, rowErr.Row, "record number, not source line 6")

	_, err = String("a,b\n1,2\n3,4\n5\n", Options{JSON: jsonout.Options{Strict: true}})
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 4, rowErr.Row, "source line")
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "incidents.csv")
	dst := filepath.Join(dir, "incidents.json")
	require.NoError(t, os.WriteFile(src, []byte(incidents), 0o644))

	res, err := File(context.Background(), src, dst, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, res.JSON, string(got))
}

func TestFileGzip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "incidents.csv.gz")
	dst := filepath.Join(dir, "incidents.json.gz")
	require.NoError(t, iox.WriteAll(src, []byte(incidents)))

	_, err := File(context.Background(), src, dst, Options{})
	require.NoError(t, err)

	got, err := iox.ReadAll(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(got, "#").Int())
}

func TestFileMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dst := filepath.Join(dir, "out.json")

	_, err := File(context.Background(), filepath.Join(dir, "missing.csv"), dst, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read source")
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr), "nothing is written when the read fails")
}

func TestFileEmptySourcePath(t *testing.T) {
	t.Parallel()

	_, err := File(context.Background(), "", filepath.Join(t.TempDir(), "out.json"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read source")
}

func TestFileUnwritableTarget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(src, []byte(incidents), 0o644))

	_, err := File(context.Background(), src, filepath.Join(dir, "missing", "out.json"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write target")
}

func TestFileCanceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in.csv")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(incidents), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := File(ctx, src, dst, Options{})
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
