package schema

import (
	"github.com/pkg/errors"
)

// Field declares a captured leaf: character data of Tag elements
// directly within Container elements is stored under Name.
type Field struct {
	Container string
	Tag       string
	// Name is the field name; if empty, Tag is used
	Name string
}

// Config is the declarative form of a Policy
type Config struct {
	// Record is the top-level record tag
	Record string
	// Containers are the container tags, in declaration order
	Containers []string
	// Fields is the field table
	Fields []Field
}

type pair struct{ container, tag string }

// Policy is an immutable field selector table. A Policy is safe for
// concurrent use, as it is never modified after New returns.
type Policy struct {
	record     string
	containers map[string]struct{}
	leaves     map[string]struct{}
	fields     map[pair]string
	cfg        Config
}

// New validates cfg and returns the corresponding Policy
func New(cfg Config) (*Policy, error) {
	if cfg.Record == "" {
		return nil, errors.New("schema: record tag must not be empty")
	}
	p := &Policy{
		record:     cfg.Record,
		containers: map[string]struct{}{},
		leaves:     map[string]struct{}{},
		fields:     map[pair]string{},
	}
	p.cfg.Record = cfg.Record

	for _, c := range cfg.Containers {
		switch _, dup := p.containers[c]; {
		case c == "":
			return nil, errors.New("schema: container tag must not be empty")
		case c == cfg.Record:
			return nil, errors.Errorf("schema: tag %q declared as both record and container", c)
		case dup:
			return nil, errors.Errorf("schema: container %q declared twice", c)
		}
		p.containers[c] = struct{}{}
		p.cfg.Containers = append(p.cfg.Containers, c)
	}

	names := map[pair]struct{}{}
	for _, f := range cfg.Fields {
		if f.Tag == "" {
			return nil, errors.Errorf("schema: field in container %q has an empty tag", f.Container)
		}
		if f.Name == "" {
			f.Name = f.Tag
		}
		if f.Container != cfg.Record && !p.IsContainer(f.Container) {
			return nil, errors.Errorf("schema: field %q: %q is neither the record nor a container", f.Tag, f.Container)
		}
		if f.Tag == cfg.Record || p.IsContainer(f.Tag) {
			return nil, errors.Errorf("schema: tag %q declared as both leaf and record/container", f.Tag)
		}
		k := pair{f.Container, f.Tag}
		if _, dup := p.fields[k]; dup {
			return nil, errors.Errorf("schema: field %s/%s declared twice", f.Container, f.Tag)
		}
		n := pair{f.Container, f.Name}
		if _, dup := names[n]; dup {
			return nil, errors.Errorf("schema: field name %q used twice in container %q", f.Name, f.Container)
		}
		names[n] = struct{}{}
		p.fields[k] = f.Name
		p.leaves[f.Tag] = struct{}{}
		p.cfg.Fields = append(p.cfg.Fields, f)
	}
	return p, nil
}

// MustNew is like New but panics if cfg is invalid
func MustNew(cfg Config) *Policy {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Record returns the top-level record tag
func (p *Policy) Record() string { return p.record }

// IsRecord returns true if tag is the top-level record tag
func (p *Policy) IsRecord(tag string) bool { return tag == p.record }

// IsContainer returns true if tag is a container tag
func (p *Policy) IsContainer(tag string) bool {
	_, ok := p.containers[tag]
	return ok
}

// IsLeaf returns true if tag is captured under at least one container
func (p *Policy) IsLeaf(tag string) bool {
	_, ok := p.leaves[tag]
	return ok
}

// Field returns the field name for leaf tag directly within container.
// ok is false when the pair is not in the field table, in which case
// the leaf's text is not captured.
func (p *Policy) Field(container, tag string) (name string, ok bool) {
	name, ok = p.fields[pair{container, tag}]
	return name, ok
}

// MaxDepth returns the number of declared container tags, the deepest
// container nesting possible when no container tag repeats along a
// path.
func (p *Policy) MaxDepth() int { return len(p.containers) }

// Config returns a copy of the validated configuration, with default
// field names filled in.
func (p *Policy) Config() Config {
	return Config{
		Record:     p.cfg.Record,
		Containers: append([]string(nil), p.cfg.Containers...),
		Fields:     append([]Field(nil), p.cfg.Fields...),
	}
}
