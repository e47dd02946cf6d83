// Package project flattens completed record trees into rows.
//
// A Projector emits one row per repeatable child of a record (e.g.
// each <revision> of a <page>), in document order. Each row holds, in
// the configured column order, fields of the record itself, of the
// repeatable child and of the child's first nested repeatable child
// (e.g. its <contributor>). Fields which were never captured project
// as the empty string. A record with no repeatable children projects
// to no rows.
package project

import (
	"fmt"
	"strings"

	"github.com/andaru/revdump/node"
	"github.com/pkg/errors"
)

// Level is the tree level a column's field is read from
type Level int

const (
	// LevelRecord reads from the record root
	LevelRecord Level = iota
	// LevelChild reads from the repeatable child
	LevelChild
	// LevelNested reads from the first nested repeatable child
	LevelNested
)

func (l Level) String() string {
	switch l {
	case LevelRecord:
		return "record"
	case LevelChild:
		return "child"
	case LevelNested:
		return "nested"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Column is an output column
type Column struct {
	Level Level
	Field string
	// Header is the column header; if empty, Field is used
	Header string
}

// Config is a Projector configuration
type Config struct {
	// Repeat is the repeatable child tag, found among the record's
	// direct children
	Repeat string
	// Nested is the optional nested repeatable child tag, found among
	// the Repeat child's direct children
	Nested string
	// Columns are the output columns, in order
	Columns []Column
}

// Row is one projected output row
type Row []string

// Projector flattens records according to a Config
type Projector struct {
	cfg    Config
	header []string
}

// New validates cfg and returns a Projector
func New(cfg Config) (*Projector, error) {
	if cfg.Repeat == "" {
		return nil, errors.New("project: repeatable child tag must not be empty")
	}
	if len(cfg.Columns) == 0 {
		return nil, errors.New("project: no columns")
	}
	p := &Projector{cfg: Config{Repeat: cfg.Repeat, Nested: cfg.Nested}}
	seen := map[string]struct{}{}
	for i, col := range cfg.Columns {
		switch {
		case col.Field == "":
			return nil, errors.Errorf("project: column %d has an empty field", i)
		case col.Level < LevelRecord || col.Level > LevelNested:
			return nil, errors.Errorf("project: column %d: invalid level %v", i, col.Level)
		case col.Level == LevelNested && cfg.Nested == "":
			return nil, errors.Errorf("project: column %q reads a nested child but no nested tag is configured", col.Field)
		}
		if col.Header == "" {
			col.Header = col.Field
		}
		if _, dup := seen[col.Header]; dup {
			return nil, errors.Errorf("project: duplicate column header %q", col.Header)
		}
		seen[col.Header] = struct{}{}
		p.cfg.Columns = append(p.cfg.Columns, col)
		p.header = append(p.header, col.Header)
	}
	return p, nil
}

// MustNew is like New but panics if cfg is invalid
func MustNew(cfg Config) *Projector {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Header returns the column headers
func (p *Projector) Header() []string { return append([]string(nil), p.header...) }

// Config returns the validated configuration
func (p *Projector) Config() Config {
	cfg := p.cfg
	cfg.Columns = append([]Column(nil), p.cfg.Columns...)
	return cfg
}

// Project calls emit with each row projected from record, in document
// order, stopping at the first error emit returns.
func (p *Projector) Project(record *node.Node, emit func(Row) error) error {
	return record.Iter(p.cfg.Repeat, func(child *node.Node) error {
		var nested *node.Node
		if p.cfg.Nested != "" {
			nested = child.First(p.cfg.Nested)
		}
		row := make(Row, len(p.cfg.Columns))
		for i, col := range p.cfg.Columns {
			switch col.Level {
			case LevelRecord:
				row[i] = record.Get(col.Field)
			case LevelChild:
				row[i] = child.Get(col.Field)
			case LevelNested:
				row[i] = nested.Get(col.Field)
			}
		}
		return emit(row)
	})
}

// Rows returns all rows projected from record
func (p *Projector) Rows(record *node.Node) (rows []Row) {
	p.Project(record, func(row Row) error {
		rows = append(rows, row)
		return nil
	})
	return rows
}

// Callback returns an extractor callback projecting each record and
// passing its rows to emit.
func (p *Projector) Callback(emit func(Row) error) func(*node.Node) error {
	return func(record *node.Node) error { return p.Project(record, emit) }
}

// ParseColumns parses a column list of the form
//
//   tag.field[:header][,tag.field[:header]...]
//
// where tag is one of record, repeat or nested and selects the
// column's level.
func ParseColumns(record, repeat, nested, spec string) ([]Column, error) {
	var cols []Column
	for _, item := range strings.Split(spec, ",") {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		var col Column
		if idx := strings.IndexByte(item, ':'); idx > -1 {
			item, col.Header = item[:idx], item[idx+1:]
		}
		idx := strings.IndexByte(item, '.')
		if idx < 1 {
			return nil, errors.Errorf("project: column %q: want tag.field", item)
		}
		tag, field := item[:idx], item[idx+1:]
		switch {
		case tag == record:
			col.Level = LevelRecord
		case tag == repeat:
			col.Level = LevelChild
		case nested != "" && tag == nested:
			col.Level = LevelNested
		default:
			return nil, errors.Errorf("project: column %q: unknown tag %q", item, tag)
		}
		col.Field = field
		cols = append(cols, col)
	}
	return cols, nil
}
