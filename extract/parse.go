package extract

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/andaru/revdump/xerr"
	"github.com/andaru/revdump/xmlutil"
	"github.com/pkg/errors"
)

// stateFn is a parser state function. Each call consumes at most one
// token and returns the next state, or nil once parsing is finished.
type stateFn func(ctx context.Context, p *parser) stateFn

type parser struct {
	d *xml.Decoder
	x *Extractor

	progressEvery int64
	progress      func(Stats)
	err           error
}

// ParseOption is an option function for Parse
type ParseOption func(*parser)

// WithProgress calls fn with the extractor's stats after every n
// completed records.
func WithProgress(n int64, fn func(Stats)) ParseOption {
	return func(p *parser) { p.progressEvery, p.progress = n, fn }
}

// WithDecoder calls fn with the XML decoder before parsing starts,
// for example to set a CharsetReader or relax Strict mode.
func WithDecoder(fn func(*xml.Decoder)) ParseOption {
	return func(p *parser) { fn(p.d) }
}

// Parse reads an XML document from r and feeds its events to x until
// end of input, an error, or cancellation of ctx.
//
// At end of input x.Close is called. XML syntax errors are returned as
// structural errors of kind malformed. All structural errors carry the
// decoder's input offset.
func Parse(ctx context.Context, r io.Reader, x *Extractor, opts ...ParseOption) error {
	p := &parser{d: xml.NewDecoder(r), x: x}
	for _, opt := range opts {
		opt(p)
	}
	for state := parseToken; state != nil; {
		state = state(ctx, p)
	}
	return p.err
}

func parseToken(ctx context.Context, p *parser) stateFn {
	// check for context cancellation before d.Token() blocks.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return p.bail(ctxErr)
	}

	token, err := p.d.Token()
	if err == io.EOF {
		return p.bail(p.x.Close())
	} else if err != nil {
		return p.bail(errors.WithStack(xerr.Malformed(xerr.WithMessage(err.Error()))))
	}

	switch token := token.(type) {
	case xml.StartElement:
		tag := xmlutil.Tag(token.Name)
		if p.x.State() == AwaitingRecord && !p.x.policy.IsRecord(tag) {
			// envelope element
			return parseToken
		}
		err = p.x.OnStart(tag, xmlutil.AttrMap(token.Attr))

	case xml.CharData:
		if p.x.State() == AwaitingRecord {
			return parseToken
		}
		err = p.x.OnCharacters(string(token))

	case xml.EndElement:
		if p.x.State() == AwaitingRecord {
			return parseToken
		}
		before := p.x.stats.Records
		if err = p.x.OnEnd(xmlutil.Tag(token.Name)); err == nil && p.x.stats.Records != before {
			p.recordDone()
		}

	case xml.Comment, xml.ProcInst, xml.Directive:
		// ignore comments, processing instructions and directives
	}

	if err != nil {
		return p.bail(err)
	}
	return parseToken
}

func (p *parser) recordDone() {
	if p.progress != nil && p.progressEvery > 0 && p.x.stats.Records%p.progressEvery == 0 {
		p.progress(p.x.Stats())
	}
}

// bail stops the parser with err, which may be nil. Structural errors
// are annotated with the decoder's input offset.
func (p *parser) bail(err error) stateFn {
	if e, ok := xerr.IsStructural(err); ok && e.Offset == 0 {
		e.Offset = p.d.InputOffset()
	}
	p.err = err
	return nil
}
