package extract

import (
	"fmt"

	"github.com/andaru/revdump/node"
	"github.com/andaru/revdump/schema"
	"github.com/andaru/revdump/xerr"
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// State is the extractor's record state
type State int

const (
	// AwaitingRecord indicates no record is open
	AwaitingRecord State = iota
	// InRecord indicates the record root is open
	InRecord
)

func (s State) String() string {
	switch s {
	case AwaitingRecord:
		return "awaiting-record"
	case InRecord:
		return "in-record"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Callback receives each completed record. The record tree is owned
// by the Extractor and is only valid until Callback returns.
type Callback func(record *node.Node) error

// Stats are extractor counters
type Stats struct {
	// Records is the number of records handed to the callback
	Records int64
	// Events is the number of events received
	Events int64
	// MaxDepth is the deepest container nesting seen
	MaxDepth int
	// Allocs is the number of container nodes allocated; the rest
	// were reused from earlier records.
	Allocs int
}

// Extractor is the record extractor state machine. It is not safe for
// concurrent use.
type Extractor struct {
	policy   *schema.Policy
	onRecord Callback
	maxDepth int

	root      *node.Node
	current   *node.Node
	arena     node.Arena
	state     State
	depth     int
	capture   string
	capturing bool

	err   error
	stats Stats
}

// Option is an Extractor constructor option
type Option func(*Extractor)

// WithMaxDepth sets the maximum container nesting depth below the
// record root. Zero disables the limit. The default is the number of
// container tags declared by the policy.
func WithMaxDepth(depth int) Option { return func(x *Extractor) { x.maxDepth = depth } }

// New returns a new Extractor using policy, calling onRecord for every
// completed record.
func New(policy *schema.Policy, onRecord Callback, opts ...Option) *Extractor {
	if policy == nil || onRecord == nil {
		panic("extract.New: both policy and onRecord must be non-nil")
	}
	x := &Extractor{
		policy:   policy,
		onRecord: onRecord,
		maxDepth: policy.MaxDepth(),
		root:     node.New(policy.Record()),
	}
	x.current = x.root
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// OnStart handles an element start event. attrs are accepted for the
// event contract but never captured.
func (x *Extractor) OnStart(tag string, attrs map[string]string) error {
	if x.err != nil {
		return x.err
	}
	x.stats.Events++

	switch {
	case x.policy.IsRecord(tag):
		if x.state == InRecord {
			return x.fail(xerr.NestedRecord(tag, xerr.WithPath(x.current.Path())))
		}
		x.root.Clear(&x.arena)
		x.current = x.root
		x.state = InRecord
	case x.state != InRecord:
		return x.fail(xerr.OutsideRecord(tag))
	case x.policy.IsContainer(tag):
		if x.maxDepth > 0 && x.depth >= x.maxDepth {
			return x.fail(xerr.TooDeep(tag, x.maxDepth, xerr.WithPath(x.current.Path())))
		}
		x.current = x.current.Append(x.arena.Get(tag))
		if x.depth++; x.depth > x.stats.MaxDepth {
			x.stats.MaxDepth = x.depth
		}
	}

	x.capture, x.capturing = x.policy.Field(x.current.Name, tag)
	return nil
}

// OnCharacters handles a chunk of character data. Text is appended to
// the active capture target, if any, and dropped otherwise.
func (x *Extractor) OnCharacters(text string) error {
	if x.err != nil {
		return x.err
	}
	x.stats.Events++

	if x.state != InRecord {
		return x.fail(xerr.OutsideRecord("", xerr.WithMessage("character data")))
	}
	if x.capturing {
		x.current.AppendText(x.capture, text)
	}
	return nil
}

// OnEnd handles an element end event. The end of a record runs the
// callback; its error, if any, halts the Extractor and is returned.
func (x *Extractor) OnEnd(tag string) error {
	if x.err != nil {
		return x.err
	}
	x.stats.Events++

	if x.state != InRecord {
		return x.fail(xerr.OutsideRecord(tag))
	}
	x.capture, x.capturing = "", false

	switch {
	case x.policy.IsRecord(tag):
		if x.current != x.root {
			return x.fail(xerr.UnmatchedEnd(tag, xerr.WithPath(x.current.Path())))
		}
		x.stats.Records++
		glog.V(2).Infof("record %d complete: %d children", x.stats.Records, len(x.root.Children))
		err := x.onRecord(x.root)
		x.reset()
		if err != nil {
			return x.fail(errors.Wrapf(err, "record %d", x.stats.Records))
		}
	case x.policy.IsContainer(tag):
		if x.current == x.root || x.current.Name != tag {
			return x.fail(xerr.UnmatchedEnd(tag, xerr.WithPath(x.current.Path())))
		}
		x.current = x.current.Parent()
		x.depth--
	}
	return nil
}

// Close signals the end of input. It returns a structural error if a
// record is still open.
func (x *Extractor) Close() error {
	if x.err != nil {
		return x.err
	}
	if x.state == InRecord {
		return x.fail(xerr.Truncated(x.policy.Record(), xerr.WithPath(x.current.Path())))
	}
	return nil
}

// State returns the extractor's record state
func (x *Extractor) State() State { return x.state }

// Err returns the error which halted the extractor, if any
func (x *Extractor) Err() error { return x.err }

// Stats returns the extractor's counters
func (x *Extractor) Stats() Stats {
	s := x.stats
	s.Allocs = x.arena.Allocs
	return s
}

func (x *Extractor) reset() {
	x.root.Clear(&x.arena)
	x.current = x.root
	x.state = AwaitingRecord
	x.depth = 0
	x.capture, x.capturing = "", false
}

func (x *Extractor) fail(err error) error {
	if e, ok := err.(*xerr.Error); ok {
		err = errors.WithStack(e)
	}
	glog.V(1).Infof("extractor halted after %d records: %v", x.stats.Records, err)
	x.reset()
	x.err = err
	return err
}
