// Package convert runs the CSV to JSON pipeline: tokenize, derive keys, render.
//
// The whole input is held in memory and the whole output is built before anything
// is written. Conversions share no state.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"csv2json/internal/csvtext"
	"csv2json/internal/header"
	"csv2json/internal/iox"
	"csv2json/internal/jsonout"
)

const (
	TokenizerSmart   = "smart"
	TokenizerRFC4180 = "rfc4180"
)

var (
	ErrInvalidJSON      = errors.New("output is not valid JSON")
	ErrUnknownTokenizer = errors.New("unknown tokenizer")
)

type Options struct {
	Tokenizer string            // TokenizerSmart (default) or TokenizerRFC4180
	Keys      map[string]string // raw header -> output key overrides
	Validate  bool              // check the output with a JSON parser before writing
	JSON      jsonout.Options
}

type Result struct {
	JSON       string
	Headers    header.Headers
	Rows       int
	Mismatched int
}

// String converts CSV text to JSON text.
func String(text string, opt Options) (Result, error) {
	tbl, err := tokenize(text, opt.Tokenizer)
	if err != nil {
		return Result{}, err
	}

	keys := header.Derive(tbl, opt.Keys)
	out, st, err := jsonout.Document(keys, tbl, opt.JSON)
	if err != nil {
		return Result{}, err
	}
	if opt.Validate {
		if err := validate(out); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	return Result{JSON: out, Headers: keys, Rows: st.Rows, Mismatched: st.Mismatched}, nil
}

// File converts the CSV at src and writes the JSON to dst. Either path may end in .gz.
// dst is not touched when reading or converting fails.
func File(ctx context.Context, src, dst string, opt Options) (Result, error) {
	raw, err := iox.ReadAll(src)
	if err != nil {
		return Result{}, fmt.Errorf("read source: %w", err)
	}

	res, err := String(string(raw), opt)
	if err != nil {
		return Result{}, fmt.Errorf("convert %s: %w", src, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := iox.WriteAll(dst, []byte(res.JSON)); err != nil {
		return Result{}, fmt.Errorf("write target: %w", err)
	}
	return res, nil
}

// validate fully decodes out. sonic.Valid only skims the structure and accepts
// bad escapes and raw control characters inside strings.
func validate(out string) error {
	var v any
	return sonic.ConfigStd.UnmarshalFromString(out, &v)
}

func tokenize(text, mode string) (csvtext.Table, error) {
	switch mode {
	case "", TokenizerSmart:
		return csvtext.Parse(text), nil
	case TokenizerRFC4180:
		return csvtext.ParseRFC4180(text, csvtext.DefaultRFC4180)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTokenizer, mode)
	}
}
