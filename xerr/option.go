package xerr

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }
func WithPath(path string) Option   { return func(e *Error) { e.Path = path } }
func WithOffset(off int64) Option   { return func(e *Error) { e.Offset = off } }
