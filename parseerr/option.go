package parseerr

// Option is an Error option function
type Option func(*Error)

func WithTag(tag string) Option { return func(e *Error) { e.Tag = tag } }

func WithMessage(msg string) Option { return func(e *Error) { e.Reason = msg } }

// WithCause sets the wrapped cause
func WithCause(err error) Option { return func(e *Error) { e.Err = err } }

func WithOffset(offset int64) Option { return func(e *Error) { e.Offset = offset } }
