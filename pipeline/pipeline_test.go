package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andaru/revdump/dumpio"
	"github.com/andaru/revdump/project"
	"github.com/andaru/revdump/schema"
	"github.com/andaru/revdump/timeframe"
	"github.com/andaru/revdump/xerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10">
  <siteinfo><sitename>Wikipedia</sitename></siteinfo>
  <page>
    <title>A</title><ns>0</ns><id>10</id>
    <revision>
      <id>1</id><timestamp>2013-01-02T00:00:00Z</timestamp>
      <contributor><username>alice</username><id>42</id></contributor>
      <text xml:space="preserve">first	line</text>
    </revision>
    <revision>
      <id>2</id><timestamp>2013-02-03T00:00:00Z</timestamp>
      <contributor><ip>10.0.0.1</ip></contributor>
    </revision>
  </page>
  <page>
    <title>B &amp; C</title><ns>1</ns><id>11</id>
    <revision>
      <id>3</id><timestamp>2013-03-03T00:00:00Z</timestamp>
      <contributor><username>Alice</username><id>42</id></contributor>
    </revision>
  </page>
</mediawiki>
`

const rows = "A\t0\t10\t1\t2013-01-02T00:00:00Z\t42\talice\t\n" +
	"A\t0\t10\t2\t2013-02-03T00:00:00Z\t\t\t10.0.0.1\n" +
	"B & C\t1\t11\t3\t2013-03-03T00:00:00Z\t42\tAlice\t\n"

const header = "title\tns\tpage_id\trev_id\ttimestamp\tuser_id\tusername\tip\n"

func TestExtract(t *testing.T) {
	for _, tc := range []struct {
		name   string
		header bool
		want   string
	}{
		{name: "rows", want: rows},
		{name: "header", header: true, want: header + rows},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			p, err := New(Config{Header: tc.header})
			require.NoError(t, err)
			out := &bytes.Buffer{}
			check.NoError(p.Extract(context.Background(), strings.NewReader(dump), out))
			check.Equal(tc.want, out.String())
			check.Equal(StatusDone, p.State.Status)
			check.EqualValues(2, p.State.Counters.Records)
			check.EqualValues(3, p.State.Counters.Rows)
			check.Equal(2, p.State.Stats.MaxDepth)
			check.Empty(p.Errors())
		})
	}
}

func TestExtractError(t *testing.T) {
	check := assert.New(t)
	p, err := New(Config{})
	require.NoError(t, err)
	input := strings.Replace(dump, "<text", "<page><title>X</title></page><text", 1)
	err = p.Extract(context.Background(), strings.NewReader(input), io.Discard)
	e, ok := xerr.IsStructural(err)
	require.True(t, ok, "%v", err)
	check.Equal(xerr.KindNestedRecord, e.Kind)
	check.Equal("/page/revision", e.Path)
	check.NotZero(e.Offset)
	check.Equal(StatusError, p.State.Status)
	check.Len(p.Errors(), 1)
	check.EqualValues(0, p.State.Counters.Records)
}

func TestExtractMalformed(t *testing.T) {
	check := assert.New(t)
	p, err := New(Config{})
	require.NoError(t, err)
	input := strings.Replace(dump, "</contributor>\n      <text", "</revision>\n      <text", 1)
	err = p.Extract(context.Background(), strings.NewReader(input), io.Discard)
	e, ok := xerr.IsStructural(err)
	require.True(t, ok, "%v", err)
	check.Equal(xerr.KindMalformed, e.Kind)
	check.Equal(StatusError, p.State.Status)
}

func TestExtractMaxDepth(t *testing.T) {
	policy := schema.MustNew(schema.Config{
		Record:     "page",
		Containers: []string{"revision", "contributor"},
		Fields: []schema.Field{
			{Container: "page", Tag: "title"},
			{Container: "revision", Tag: "id"},
		},
	})
	cfg := project.Config{
		Repeat:  "revision",
		Columns: []project.Column{{Level: project.LevelRecord, Field: "title"}, {Level: project.LevelChild, Field: "id"}},
	}
	for _, tc := range []struct {
		name     string
		maxDepth int
		wantErr  bool
	}{
		{name: "policy default", maxDepth: 0},
		{name: "too shallow", maxDepth: 1, wantErr: true},
		{name: "unlimited", maxDepth: -1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			check := assert.New(t)
			p, err := New(Config{Policy: policy, Projection: &cfg, MaxDepth: tc.maxDepth})
			require.NoError(t, err)
			err = p.Extract(context.Background(), strings.NewReader(dump), io.Discard)
			if tc.wantErr {
				e, ok := xerr.IsStructural(err)
				require.True(t, ok, "%v", err)
				check.Equal(xerr.KindTooDeep, e.Kind)
				return
			}
			check.NoError(err)
			check.EqualValues(3, p.State.Counters.Rows)
		})
	}
}

func TestNewInvalidProjection(t *testing.T) {
	_, err := New(Config{Projection: &project.Config{}})
	assert.Error(t, err)
}

func TestRunAndTimeframes(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "dump.xml.gz")
	revisions := filepath.Join(dir, "revisions.tsv.gz")
	counts := filepath.Join(dir, "counts.tsv")

	w, err := dumpio.Create(in)
	require.NoError(t, err)
	_, err = io.WriteString(w, dump)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	p, err := New(Config{Input: in, Output: revisions, Header: true, ProgressEvery: 1})
	require.NoError(t, err)
	require.NoError(t, p.Run(context.Background()))
	check.EqualValues(3, p.State.Counters.Rows)

	r, err := dumpio.Open(revisions)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	check.NoError(err)
	check.NoError(r.Close())
	check.Equal(header+rows, string(got))

	c, err := Timeframes(TimeframeConfig{Input: revisions, Output: counts, InputHeader: true})
	require.NoError(t, err)
	check.Equal([]int{1, 1, 2}, c.Count("42"))

	b, err := os.ReadFile(counts)
	require.NoError(t, err)
	check.Equal("Alice\t1\t1\t2\n", string(b))
}

func TestTimeframesCustomColumns(t *testing.T) {
	check := assert.New(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "in.tsv")
	out := filepath.Join(dir, "out.tsv")
	require.NoError(t, os.WriteFile(in, []byte("7\tbob\t2013-01-05\n7\tbob\t2014-01-05\n"), 0o644))

	ranges, err := timeframe.ParseRanges("2013-01-01,2014-01-01;2013-01-01,2015-01-01")
	require.NoError(t, err)
	_, err = Timeframes(TimeframeConfig{
		Input:   in,
		Output:  out,
		Ranges:  ranges,
		Columns: &timeframe.Columns{UserID: 0, UserName: 1, Timestamp: 2},
		Header:  true,
	})
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	check.Equal("username\t2013-01-01,2014-01-01\t2013-01-01,2015-01-01\nbob\t1\t2\n", string(b))
}

func TestRunMissingInput(t *testing.T) {
	check := assert.New(t)
	p, err := New(Config{Input: filepath.Join(t.TempDir(), "missing.xml"), Output: filepath.Join(t.TempDir(), "out.tsv")})
	require.NoError(t, err)
	check.Error(p.Run(context.Background()))
	check.Equal(StatusError, p.State.Status)
}

func TestStatusString(t *testing.T) {
	check := assert.New(t)
	check.Equal("inactive", StatusInactive.String())
	check.Equal("done", StatusDone.String())
	check.Equal("unknown", Status(99).String())
}
