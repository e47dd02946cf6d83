package pipeline

import (
	"context"
	"io"

	"github.com/andaru/revdump/dumpio"
	"github.com/andaru/revdump/extract"
	"github.com/andaru/revdump/project"
	"github.com/andaru/revdump/schema"
	"github.com/andaru/revdump/tsv"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultProgressEvery is the default number of records between
// progress log lines
const DefaultProgressEvery = 10000

// Config contains extraction pipeline configuration
type Config struct {
	// Input is the dump path; "-" reads standard input
	Input string
	// Output is the TSV path; "-" writes standard output
	Output string
	// Policy is the field selection policy. Defaults to schema.Wikipedia()
	Policy *schema.Policy
	// Projection configures row projection. Defaults to project.Wikipedia()
	Projection *project.Config
	// Header writes the column header row first
	Header bool
	// MaxDepth overrides the policy's container depth limit when non-zero.
	// A negative value disables the limit.
	MaxDepth int
	// ProgressEvery is the number of records between progress log lines.
	// Zero uses DefaultProgressEvery, negative disables progress logging.
	ProgressEvery int64
	// OutputOptions are passed to dumpio.Create
	OutputOptions []dumpio.Option
}

// State contains runtime pipeline state
type State struct {
	// Status is the pipeline status
	Status Status
	// Counters contains pipeline counters
	Counters struct {
		// Records is the number of records extracted
		Records int64
		// Rows is the number of rows written
		Rows int64
	}
	// Stats are the extractor's final counters
	Stats extract.Stats

	errs []error
}

// Status is a Pipeline's (present) state.
type Status int

const (
	// StatusInactive is the initial pipeline state
	StatusInactive Status = iota
	// StatusRunning is set once input has been opened
	StatusRunning
	// StatusError indicates the pipeline has encountered an error
	StatusError
	// StatusDone indicates the pipeline consumed all input
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusRunning:
		return "running"
	case StatusError:
		return "error"
	case StatusDone:
		return "done"
	}
	return "unknown"
}

// Pipeline is an extraction pipeline
type Pipeline struct {
	Config *Config
	State  *State

	projector *project.Projector
}

// New returns a new Pipeline, filling in configuration defaults
func New(config Config) (*Pipeline, error) {
	if config.Input == "" {
		config.Input = dumpio.Stdio
	}
	if config.Output == "" {
		config.Output = dumpio.Stdio
	}
	if config.Policy == nil {
		config.Policy = schema.Wikipedia()
	}
	if config.Projection == nil {
		cfg := project.Wikipedia()
		config.Projection = &cfg
	}
	if config.ProgressEvery == 0 {
		config.ProgressEvery = DefaultProgressEvery
	}
	projector, err := project.New(*config.Projection)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline")
	}
	return &Pipeline{Config: &config, State: &State{}, projector: projector}, nil
}

// Header returns the output column header
func (p *Pipeline) Header() []string { return p.projector.Header() }

// Run opens the configured input and output and executes the pipeline
func (p *Pipeline) Run(ctx context.Context) (err error) {
	src, err := dumpio.Open(p.Config.Input)
	if err != nil {
		return p.fail(err)
	}
	defer func() { p.AddError(src.Close()) }()
	dst, err := dumpio.Create(p.Config.Output, p.Config.OutputOptions...)
	if err != nil {
		return p.fail(err)
	}
	err = p.Extract(ctx, src, dst)
	if closeErr := dst.Close(); err == nil && closeErr != nil {
		err = p.fail(closeErr)
	}
	return err
}

// Extract executes the pipeline reading the XML dump from src and
// writing rows to dst.
func (p *Pipeline) Extract(ctx context.Context, src io.Reader, dst io.Writer) error {
	p.State.Status = StatusRunning
	w := tsv.NewWriter(dst)
	if p.Config.Header {
		if err := w.Write(p.projector.Header()); err != nil {
			return p.fail(err)
		}
	}
	emit := func(row project.Row) error {
		p.State.Counters.Rows++
		return w.Write(row)
	}
	var opts []extract.Option
	switch {
	case p.Config.MaxDepth > 0:
		opts = append(opts, extract.WithMaxDepth(p.Config.MaxDepth))
	case p.Config.MaxDepth < 0:
		opts = append(opts, extract.WithMaxDepth(0))
	}
	x := extract.New(p.Config.Policy, p.projector.Callback(emit), opts...)

	var popts []extract.ParseOption
	if p.Config.ProgressEvery > 0 {
		popts = append(popts, extract.WithProgress(p.Config.ProgressEvery, p.onProgress))
	}
	err := extract.Parse(ctx, src, x, popts...)
	p.State.Stats = x.Stats()
	p.State.Counters.Records = p.State.Stats.Records
	if err != nil {
		return p.fail(err)
	}
	p.State.Status = StatusDone
	glog.V(1).Infof("pipeline: %s: %d records, %d rows, max depth %d, %d container allocations",
		p.Config.Input, p.State.Counters.Records, p.State.Counters.Rows, p.State.Stats.MaxDepth, p.State.Stats.Allocs)
	return nil
}

func (p *Pipeline) onProgress(stats extract.Stats) {
	glog.V(1).Infof("pipeline: %s: %d records, %d events, %d rows",
		p.Config.Input, stats.Records, stats.Events, p.State.Counters.Rows)
}

func (p *Pipeline) fail(err error) error {
	p.AddError(err)
	p.State.Status = StatusError
	glog.V(1).Infof("pipeline: %s: %v", p.Config.Input, err)
	return err
}

// AddError adds an error to the pipeline state
func (p *Pipeline) AddError(errs ...error) (added int) {
	for _, err := range errs {
		if err != nil {
			p.State.errs = append(p.State.errs, err)
			added++
		}
	}
	return added
}

// Errors returns all pipeline errors
func (p *Pipeline) Errors() []error { return p.State.errs }
