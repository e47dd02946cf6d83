package dumpio

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
)

const content = "AccessibleComputing\t0\t10\t233192\t2001-01-21T02:12:21Z\t99\tRoseParks\t\n"

func roundTrip(t *testing.T, name string, opts ...Option) []byte {
	check := assert.New(t)
	path := filepath.Join(t.TempDir(), name)

	w, err := Create(path, opts...)
	if !check.NoError(err) {
		t.FailNow()
	}
	for i := 0; i < 100; i++ {
		_, err = io.WriteString(w, content)
		check.NoError(err)
	}
	check.NoError(w.Close())

	r, err := Open(path)
	if !check.NoError(err) {
		t.FailNow()
	}
	got, err := io.ReadAll(r)
	check.NoError(err)
	check.NoError(r.Close())
	check.Equal(strings.Repeat(content, 100), string(got))

	raw, err := os.ReadFile(path)
	check.NoError(err)
	return raw
}

func TestRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		opts     []Option
		wantGzip bool
	}{
		{name: "revisions.tsv"},
		{name: "revisions.tsv.gz", wantGzip: true},
		{name: "revisions.tsv.gz", opts: []Option{WithCompression(false)}},
		{name: "revisions.out", opts: []Option{WithCompression(true), WithLevel(pgzip.BestCompression)}, wantGzip: true},
		{name: "revisions.tsv.gz", opts: []Option{WithConcurrency(1<<20, 2)}, wantGzip: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := roundTrip(t, tc.name, tc.opts...)
			assert.Equal(t, tc.wantGzip, bytes.HasPrefix(raw, gzipMagic))
		})
	}
}

func TestNewReader(t *testing.T) {
	check := assert.New(t)

	r, err := NewReader(strings.NewReader(""))
	if check.NoError(err) {
		b, err := io.ReadAll(r)
		check.NoError(err)
		check.Empty(b)
		check.NoError(r.Close())
	}

	_, err = NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0x00}))
	check.Error(err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xml.gz"))
	assert.Error(t, err)
}
