package pipeline

import (
	"github.com/andaru/revdump/dumpio"
	"github.com/andaru/revdump/timeframe"
	"github.com/andaru/revdump/tsv"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// TimeframeConfig contains timeframe counting configuration
type TimeframeConfig struct {
	// Input is the revision TSV path; "-" reads standard input
	Input string
	// Output is the per-user count path; "-" writes standard output
	Output string
	// Ranges are the date ranges. Defaults to timeframe.DefaultRanges()
	Ranges []timeframe.Range
	// Columns locates the input columns. Defaults to timeframe.WikipediaColumns()
	Columns *timeframe.Columns
	// InputHeader skips the input's first row
	InputHeader bool
	// Header writes the output header row first
	Header bool
	// OutputOptions are passed to dumpio.Create
	OutputOptions []dumpio.Option
}

// Timeframes counts per-user edits in the configured date ranges
func Timeframes(config TimeframeConfig) (c *timeframe.Counter, err error) {
	if config.Input == "" {
		config.Input = dumpio.Stdio
	}
	if config.Output == "" {
		config.Output = dumpio.Stdio
	}
	if len(config.Ranges) == 0 {
		config.Ranges = timeframe.DefaultRanges()
	}
	cols := timeframe.WikipediaColumns()
	if config.Columns != nil {
		cols = *config.Columns
	}

	src, err := dumpio.Open(config.Input)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	r := tsv.NewReader(src)
	if config.InputHeader {
		if _, err := r.Read(); err != nil {
			return nil, errors.Wrap(err, "timeframes: header")
		}
	}
	c = timeframe.NewCounter(config.Ranges)
	if err := c.Read(r, cols); err != nil {
		return nil, err
	}
	glog.V(1).Infof("timeframes: %s: %d rows, %d users", config.Input, r.Line(), c.Users())

	dst, err := dumpio.Create(config.Output, config.OutputOptions...)
	if err != nil {
		return nil, err
	}
	if err := c.Write(tsv.NewWriter(dst), config.Header); err != nil {
		dst.Close()
		return nil, err
	}
	return c, dst.Close()
}
