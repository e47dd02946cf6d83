package xerr

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// Kind represents the class of a structural error in an event stream
type Kind int

const (
	// KindMalformed is a syntax error reported by the event source
	KindMalformed Kind = iota
	// KindUnmatchedEnd is an end element with no matching open element
	KindUnmatchedEnd
	// KindOutsideRecord is an event received while no record is open
	KindOutsideRecord
	// KindNestedRecord is a record start received inside an open record
	KindNestedRecord
	// KindTooDeep is a container opened beyond the configured depth limit
	KindTooDeep
	// KindTruncated is end of input while a record is still open
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindMalformed:
		return "malformed"
	case KindUnmatchedEnd:
		return "unmatched-end"
	case KindOutsideRecord:
		return "outside-record"
	case KindNestedRecord:
		return "nested-record"
	case KindTooDeep:
		return "too-deep"
	case KindTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "malformed":
		*k = KindMalformed
	case "unmatched-end":
		*k = KindUnmatchedEnd
	case "outside-record":
		*k = KindOutsideRecord
	case "nested-record":
		*k = KindNestedRecord
	case "too-deep":
		*k = KindTooDeep
	case "truncated":
		*k = KindTruncated
	default:
		return errors.Errorf("unknown kind %q", b)
	}
	return nil
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Error is a structural error. It is fatal to the stream which
// produced it: no partial record is emitted and no further events are
// accepted.
type Error struct {
	Kind    Kind   `json:"kind"`
	Tag     string `json:"tag,omitempty"`
	Path    string `json:"path,omitempty"`
	Offset  int64  `json:"offset,omitempty"`
	Message string `json:"message,omitempty"`
}

func (e Error) Error() string {
	s := "structural error kind:" + e.Kind.String()
	if e.Tag != "" {
		s += " tag:" + e.Tag
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Offset > 0 {
		s += fmt.Sprintf(" offset:%d", e.Offset)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

// IsStructural reports whether err, or any error it wraps, is a
// structural *Error, returning it if so.
func IsStructural(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func Malformed(opts ...Option) *Error {
	e := &Error{Kind: KindMalformed}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func UnmatchedEnd(tag string, opts ...Option) *Error {
	e := &Error{Kind: KindUnmatchedEnd, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func OutsideRecord(tag string, opts ...Option) *Error {
	e := &Error{Kind: KindOutsideRecord, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func NestedRecord(tag string, opts ...Option) *Error {
	e := &Error{Kind: KindNestedRecord, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func TooDeep(tag string, limit int, opts ...Option) *Error {
	e := &Error{Kind: KindTooDeep, Tag: tag, Message: fmt.Sprintf("depth limit %d", limit)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func Truncated(tag string, opts ...Option) *Error {
	e := &Error{Kind: KindTruncated, Tag: tag}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
