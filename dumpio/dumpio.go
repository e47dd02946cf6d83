// Package dumpio opens dump inputs and outputs, transparently handling
// gzip compression with the parallel pgzip implementation.
//
// Input is decompressed when it starts with the gzip magic number,
// whatever its name. Output is compressed when its path ends in ".gz"
// or when WithCompression(true) is given. The path "-" denotes the
// standard input or output.
package dumpio

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

const (
	// Stdio is the path denoting standard input or output
	Stdio = "-"

	bufSize = 64 * 1024
)

var gzipMagic = []byte{0x1f, 0x8b}

// Open opens path for reading
func Open(path string) (io.ReadCloser, error) {
	if path == Stdio {
		return NewReader(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dumpio")
	}
	rc, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "%s", path)
	}
	rc.(*readCloser).closers = append(rc.(*readCloser).closers, f)
	return rc, nil
}

// NewReader returns a buffered reader over r, decompressing r if it
// is gzip compressed. Closing the result does not close r.
func NewReader(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(r, bufSize)
	if magic, err := br.Peek(len(gzipMagic)); err == nil && string(magic) == string(gzipMagic) {
		// using parallel pgzip for better performance on large files
		zr, err := pgzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(err, "dumpio: gzip")
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr}}, nil
	}
	return &readCloser{Reader: br}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() (err error) {
	for _, c := range rc.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Option is a Create option function
type Option func(*options)

type options struct {
	compress  *bool
	level     int
	blockSize int
	blocks    int
}

// WithCompression forces output compression on or off, regardless of
// the path's suffix.
func WithCompression(on bool) Option { return func(o *options) { o.compress = &on } }

// WithLevel sets the gzip compression level. The default is
// pgzip.BestSpeed.
func WithLevel(level int) Option { return func(o *options) { o.level = level } }

// WithConcurrency sets the pgzip block size and number of blocks
// compressed in parallel.
func WithConcurrency(blockSize, blocks int) Option {
	return func(o *options) { o.blockSize, o.blocks = blockSize, blocks }
}

// Create creates path for writing. The returned writer is buffered;
// Close flushes it, then closes the compressor and the file.
func Create(path string, opts ...Option) (io.WriteCloser, error) {
	o := &options{level: pgzip.BestSpeed}
	for _, opt := range opts {
		opt(o)
	}
	compress := strings.HasSuffix(path, ".gz")
	if o.compress != nil {
		compress = *o.compress
	}

	var (
		dst io.Writer = os.Stdout
		f   *os.File
	)
	if path != Stdio {
		var err error
		if f, err = os.Create(path); err != nil {
			return nil, errors.Wrap(err, "dumpio")
		}
		dst = f
	}

	wc := &writeCloser{f: f}
	if compress {
		zw, err := pgzip.NewWriterLevel(dst, o.level)
		if err == nil && o.blockSize > 0 {
			err = zw.SetConcurrency(o.blockSize, o.blocks)
		}
		if err != nil {
			if f != nil {
				f.Close()
			}
			return nil, errors.Wrap(err, "dumpio: gzip")
		}
		wc.zw = zw
		dst = zw
	}
	wc.w = bufio.NewWriterSize(dst, bufSize)
	return wc, nil
}

type writeCloser struct {
	w  *bufio.Writer
	zw *pgzip.Writer
	f  *os.File
}

func (wc *writeCloser) Write(b []byte) (int, error) { return wc.w.Write(b) }

func (wc *writeCloser) Close() error {
	err := wc.w.Flush()
	if wc.zw != nil {
		if zerr := wc.zw.Close(); err == nil {
			err = zerr
		}
	}
	if wc.f != nil {
		if ferr := wc.f.Close(); err == nil {
			err = ferr
		}
	}
	return errors.Wrap(err, "dumpio: close")
}
