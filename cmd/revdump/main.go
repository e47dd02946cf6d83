// Command revdump extracts revision metadata rows from MediaWiki-style
// XML dumps and counts per-user edits within date ranges.
//
// Usage:
//
//   revdump [glog flags] extract [flags]
//   revdump [glog flags] timeframes [flags]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/andaru/revdump/dumpio"
	"github.com/andaru/revdump/pipeline"
	"github.com/andaru/revdump/project"
	"github.com/andaru/revdump/schema"
	"github.com/andaru/revdump/timeframe"
	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] extract|timeframes [flags]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var err error
	switch args := flag.Args(); {
	case len(args) == 0:
		usage()
		err = errors.New("missing command")
	case args[0] == "extract":
		err = runExtract(ctx, args[1:])
	case args[0] == "timeframes":
		err = runTimeframes(args[1:])
	default:
		usage()
		err = errors.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		glog.Errorf("%+v", err)
		glog.Flush()
		color.New(color.FgRed).Fprintf(os.Stderr, "revdump: %v\n", err)
		os.Exit(1)
	}
}

func runExtract(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	var (
		cfg        pipeline.Config
		schemaPath = fs.String("schema", "", "field selection schema XML file (default: MediaWiki)")
		repeat     = fs.String("repeat", "", "repeatable container producing one row each (requires -columns)")
		nested     = fs.String("nested", "", "nested container within -repeat")
		columns    = fs.String("columns", "", "output columns: level.field[:header],... where level is the record, -repeat or -nested tag")
		gz         = fs.Bool("gzip", false, "gzip compress the output regardless of its name")
	)
	fs.StringVar(&cfg.Input, "in", dumpio.Stdio, "input XML dump, optionally gzip compressed")
	fs.StringVar(&cfg.Output, "out", dumpio.Stdio, "output TSV file; a .gz suffix compresses")
	fs.BoolVar(&cfg.Header, "header", false, "write a column header row")
	fs.IntVar(&cfg.MaxDepth, "max-depth", 0, "container depth limit; 0 uses the schema's, -1 disables")
	fs.Int64Var(&cfg.ProgressEvery, "progress", pipeline.DefaultProgressEvery, "records between progress log lines (glog -v=1)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *schemaPath != "" {
		policy, err := schema.LoadFile(*schemaPath)
		if err != nil {
			return err
		}
		cfg.Policy = policy
	}
	if *columns != "" {
		record := schema.Wikipedia().Record()
		if cfg.Policy != nil {
			record = cfg.Policy.Record()
		}
		cols, err := project.ParseColumns(record, *repeat, *nested, *columns)
		if err != nil {
			return err
		}
		cfg.Projection = &project.Config{Repeat: *repeat, Nested: *nested, Columns: cols}
	} else if cfg.Policy != nil || *repeat != "" {
		return errors.New("extract: -columns is required with -schema or -repeat")
	}
	if *gz {
		cfg.OutputOptions = append(cfg.OutputOptions, dumpio.WithCompression(true))
	}

	p, err := pipeline.New(cfg)
	if err != nil {
		return err
	}
	if err := p.Run(ctx); err != nil {
		return err
	}
	glog.Infof("extract: %s: %d records, %d rows", cfg.Input, p.State.Counters.Records, p.State.Counters.Rows)
	return nil
}

func runTimeframes(args []string) error {
	fs := flag.NewFlagSet("timeframes", flag.ContinueOnError)
	var (
		cfg    pipeline.TimeframeConfig
		ranges = fs.String("ranges", "", "date ranges from,to[;from,to...] (default: first 1, 2 and 3 months of 2013)")
		cols   = timeframe.WikipediaColumns()
	)
	fs.StringVar(&cfg.Input, "in", dumpio.Stdio, "input revision TSV, optionally gzip compressed")
	fs.StringVar(&cfg.Output, "out", dumpio.Stdio, "output TSV file; a .gz suffix compresses")
	fs.BoolVar(&cfg.InputHeader, "skip-header", false, "skip the input's header row")
	fs.BoolVar(&cfg.Header, "header", false, "write a column header row")
	fs.IntVar(&cols.Timestamp, "timestamp-col", cols.Timestamp, "timestamp column index")
	fs.IntVar(&cols.UserID, "user-id-col", cols.UserID, "user id column index")
	fs.IntVar(&cols.UserName, "username-col", cols.UserName, "user name column index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Columns = &cols
	if *ranges != "" {
		r, err := timeframe.ParseRanges(*ranges)
		if err != nil {
			return err
		}
		cfg.Ranges = r
	}
	c, err := pipeline.Timeframes(cfg)
	if err != nil {
		return err
	}
	glog.Infof("timeframes: %s: %d users", cfg.Input, c.Users())
	return nil
}
