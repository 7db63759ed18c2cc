package iox

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func isGzip(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// OpenAuto opens path for reading, decompressing .gz files on the fly.
func OpenAuto(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if isGzip(path) {
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{gr, closers{gr, f}}, nil
	}
	return f, nil
}

// CreateAuto creates path for writing, compressing .gz files on the fly.
func CreateAuto(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if isGzip(path) {
		gw := gzip.NewWriter(f)
		return writeCloser{gw, closers{gw, f}}, nil
	}
	return f, nil
}

// ReadAll returns the whole (decompressed) content of path.
func ReadAll(path string) ([]byte, error) {
	in, err := OpenAuto(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	return io.ReadAll(in)
}

// WriteAll writes data to path in one call and closes it.
func WriteAll(path string, data []byte) error {
	out, err := CreateAuto(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// closers closes every element in order and returns the first error.
type closers []io.Closer

func (cs closers) Close() error {
	var err error
	for _, c := range cs {
		if e := c.Close(); err == nil && e != nil {
			err = e
		}
	}
	return err
}

type readCloser struct {
	io.Reader
	closers
}

type writeCloser struct {
	io.Writer
	closers
}
