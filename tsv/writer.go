package tsv

import (
	"io"

	"github.com/pkg/errors"
)

// Writer is a row encoder. Each call to Write issues a single Write
// call to the destination, so callers wanting buffering should pass a
// *bufio.Writer.
type Writer struct {
	dst  io.Writer
	buf  []byte
	rows int64
}

// NewWriter returns a new Writer writing rows to dst
func NewWriter(dst io.Writer) *Writer { return &Writer{dst: dst} }

// Write writes row to the Writer's destination
func (w *Writer) Write(row []string) error {
	w.buf = w.buf[:0]
	for i, field := range row {
		if i > 0 {
			w.buf = append(w.buf, '\t')
		}
		w.buf = append(w.buf, Escape(field)...)
	}
	w.buf = append(w.buf, '\n')
	n, err := w.dst.Write(w.buf)
	if err == nil && n < len(w.buf) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errors.Wrapf(err, "tsv: write row %d", w.rows+1)
	}
	w.rows++
	return nil
}

// Rows returns the number of rows written
func (w *Writer) Rows() int64 { return w.rows }
