// Package timeframe counts, per registered user, the revisions made
// within each of a set of date ranges.
//
// Input rows are revision rows as written by the extractor; the
// timestamp, user id and user name columns are located by index.
// Anonymous edits (empty user id) and user id 0 are skipped.
package timeframe

import (
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/andaru/revdump/tsv"
	"github.com/pkg/errors"
)

// Range is a half-open timestamp range [From, To). Timestamps are
// compared as ISO 8601 strings.
type Range struct {
	From string
	To   string
}

// Contains returns true if ts lies within r
func (r Range) Contains(ts string) bool { return ts >= r.From && ts < r.To }

func (r Range) String() string { return r.From + "," + r.To }

var layouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func validTimestamp(s string) bool {
	for _, layout := range layouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// ParseRanges parses a list of ranges of the form
//
//   from,to[;from,to...]
//
// where from and to are ISO 8601 dates or timestamps.
func ParseRanges(s string) ([]Range, error) {
	var ranges []Range
	for _, item := range strings.Split(s, ";") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		parts := strings.Split(item, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("timeframe: range %q: want from,to", item)
		}
		r := Range{From: strings.TrimSpace(parts[0]), To: strings.TrimSpace(parts[1])}
		for _, ts := range []string{r.From, r.To} {
			if !validTimestamp(ts) {
				return nil, errors.Errorf("timeframe: range %q: invalid timestamp %q", item, ts)
			}
		}
		if r.From >= r.To {
			return nil, errors.Errorf("timeframe: range %q is empty", item)
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, errors.New("timeframe: no ranges")
	}
	return ranges, nil
}

// DefaultRanges returns the first one, two and three months of 2013
func DefaultRanges() []Range {
	return []Range{
		{From: "2013-01-01T00:00:00", To: "2013-02-01T00:00:00"},
		{From: "2013-01-01T00:00:00", To: "2013-03-01T00:00:00"},
		{From: "2013-01-01T00:00:00", To: "2013-04-01T00:00:00"},
	}
}

// Columns locates the input columns by index
type Columns struct {
	Timestamp int
	UserID    int
	UserName  int
}

// WikipediaColumns returns the column indices of the extractor's
// MediaWiki revision rows.
func WikipediaColumns() Columns { return Columns{Timestamp: 4, UserID: 5, UserName: 6} }

func (c Columns) max() int {
	m := c.Timestamp
	if c.UserID > m {
		m = c.UserID
	}
	if c.UserName > m {
		m = c.UserName
	}
	return m
}

// Counter accumulates per-user counts. It is not safe for concurrent
// use.
type Counter struct {
	ranges []Range
	counts map[string][]int
	names  map[string]string
}

// NewCounter returns a Counter for ranges
func NewCounter(ranges []Range) *Counter {
	return &Counter{
		ranges: append([]Range(nil), ranges...),
		counts: map[string][]int{},
		names:  map[string]string{},
	}
}

// Add counts one revision. A user appears in the output once at least
// one of their revisions falls within a range; the user's most recently
// added name is reported.
func (c *Counter) Add(timestamp, userID, userName string) {
	if userID == "" || userID == "0" {
		return
	}
	for i, r := range c.ranges {
		if !r.Contains(timestamp) {
			continue
		}
		counts, ok := c.counts[userID]
		if !ok {
			counts = make([]int, len(c.ranges))
			c.counts[userID] = counts
		}
		counts[i]++
		c.names[userID] = userName
	}
}

// Users returns the number of users counted
func (c *Counter) Users() int { return len(c.counts) }

// Count returns userID's count for each range, or nil
func (c *Counter) Count(userID string) []int { return c.counts[userID] }

// Header returns the output header row
func (c *Counter) Header() []string {
	h := []string{"username"}
	for _, r := range c.ranges {
		h = append(h, r.String())
	}
	return h
}

// Rows returns one row per user, the user name followed by the count
// for each range, ordered by user id.
func (c *Counter) Rows() [][]string {
	ids := make([]string, 0, len(c.counts))
	for id := range c.counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		row := []string{c.names[id]}
		for _, n := range c.counts[id] {
			row = append(row, strconv.Itoa(n))
		}
		rows = append(rows, row)
	}
	return rows
}

// Read adds every row read from r to c
func (c *Counter) Read(r *tsv.Reader, cols Columns) error {
	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if len(row) <= cols.max() {
			return errors.Errorf("timeframe: line %d: want at least %d fields, got %d", r.Line(), cols.max()+1, len(row))
		}
		c.Add(row[cols.Timestamp], row[cols.UserID], row[cols.UserName])
	}
}

// Write writes c's rows to w, preceded by the header if header is true
func (c *Counter) Write(w *tsv.Writer, header bool) error {
	if header {
		if err := w.Write(c.Header()); err != nil {
			return err
		}
	}
	for _, row := range c.Rows() {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
