package tsv

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultMaxRowSize is the default maximum row length in bytes
	DefaultMaxRowSize = 1 << 20
	// MinRowBufferSize is the row buffer size floor
	MinRowBufferSize = 64
)

// Reader is a row decoder
type Reader struct {
	scanner *bufio.Scanner
	fields  int
	bufSize int
	line    int64
}

// ReaderOption is a constructor option function for the Reader type
type ReaderOption func(*Reader)

// WithMaxRowSize sets the maximum row length in bytes. Sizes below
// MinRowBufferSize are raised to MinRowBufferSize.
func WithMaxRowSize(bytes int) ReaderOption {
	return func(r *Reader) {
		if bytes < MinRowBufferSize {
			bytes = MinRowBufferSize
		}
		r.bufSize = bytes
	}
}

// WithFields requires every row to have exactly n fields
func WithFields(n int) ReaderOption { return func(r *Reader) { r.fields = n } }

// NewReader returns a new Reader reading rows from src
func NewReader(src io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{bufSize: DefaultMaxRowSize}
	for _, opt := range opts {
		opt(r)
	}
	r.scanner = bufio.NewScanner(src)
	initial := 4096
	if initial > r.bufSize {
		initial = r.bufSize
	}
	r.scanner.Buffer(make([]byte, initial), r.bufSize)
	r.scanner.Split(SplitRows(func() { r.line++ }))
	return r
}

// Read returns the next row's unescaped fields. It returns io.EOF at
// the end of input.
func (r *Reader) Read() ([]string, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return nil, errors.Wrapf(err, "tsv: line %d", r.line+1)
		}
		return nil, io.EOF
	}
	fields := strings.Split(r.scanner.Text(), "\t")
	if r.fields > 0 && len(fields) != r.fields {
		return nil, errors.Errorf("tsv: line %d: want %d fields, got %d", r.line, r.fields, len(fields))
	}
	for i, f := range fields {
		fields[i] = Unescape(f)
	}
	return fields, nil
}

// Line returns the line number of the last row read
func (r *Reader) Line() int64 { return r.line }
