package parseerr

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind is the category of a parse error
type Kind int

const (
	// KindInvalidFormat is a document level validation failure
	KindInvalidFormat Kind = iota
	// KindMissingAttribute indicates a required attribute was absent
	// when a node was constructed
	KindMissingAttribute
	// KindValue indicates leaf text which failed to parse
	KindValue
	// KindBadState indicates an event was delivered to a node outside
	// of the lifecycle state which permits it
	KindBadState
	// KindUnhandledEvent indicates no dispatch rule matched an event
	KindUnhandledEvent
	// KindEncoding indicates bytes which are not valid in the stream's
	// character encoding
	KindEncoding
)

var kindNames = [...]string{
	KindInvalidFormat:    "invalid-format",
	KindMissingAttribute: "missing-attribute",
	KindValue:            "value-error",
	KindBadState:         "bad-state",
	KindUnhandledEvent:   "unhandled-event",
	KindEncoding:         "encoding-error",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range kindNames {
		if string(b) == name {
			*k = Kind(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

// ValueKind is the reason leaf text failed to parse into its typed value
type ValueKind int

const (
	// NonUTF8 text is not a valid UTF-8 sequence
	NonUTF8 ValueKind = iota + 1
	// InvalidInt text is not an integer of the field's type
	InvalidInt
	// InvalidFloat text is not a floating point number
	InvalidFloat
)

func (v ValueKind) String() string {
	switch v {
	case NonUTF8:
		return "not a UTF-8 value"
	case InvalidInt:
		return "invalid integer value"
	case InvalidFloat:
		return "invalid float value"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(v))
	}
}

func (v ValueKind) MarshalText() ([]byte, error) {
	switch v {
	case NonUTF8:
		return []byte("non-utf8"), nil
	case InvalidInt:
		return []byte("invalid-int"), nil
	case InvalidFloat:
		return []byte("invalid-float"), nil
	}
	return nil, fmt.Errorf("cannot marshal %s", v)
}

func (v *ValueKind) UnmarshalText(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "non-utf8":
		*v = NonUTF8
	case "invalid-int":
		*v = InvalidInt
	case "invalid-float":
		*v = InvalidFloat
	default:
		return errors.New("unknown value")
	}
	return nil
}

// Error is an error raised while materializing records from the
// token event stream.
//
// Only the fields relevant to Kind are set. Err holds the underlying
// cause, if any, and is available through errors.Unwrap.
type Error struct {
	Kind      Kind      `json:"kind"`
	Reason    string    `json:"reason,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Parent    string    `json:"parent,omitempty"`
	Attribute string    `json:"attribute,omitempty"`
	Field     string    `json:"field,omitempty"`
	Value     ValueKind `json:"value,omitempty"`
	State     string    `json:"state,omitempty"`
	Offset    int64     `json:"offset,omitempty"`
	Err       error     `json:"-"`
}

func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindInvalidFormat:
		s = "invalid document format: " + e.Reason
	case KindMissingAttribute:
		s = fmt.Sprintf("%s missing '%s' attribute", e.Parent, e.Attribute)
	case KindValue:
		s = fmt.Sprintf("value error: invalid %s value: %s", e.Field, e.Value)
	case KindBadState:
		tag := "tag"
		if e.Tag != "" {
			tag = "<" + e.Tag + ">"
		}
		s = fmt.Sprintf("%s is in '%s' state", tag, e.State)
		if e.Reason != "" {
			s += ": " + e.Reason
		}
	case KindUnhandledEvent:
		s = "can't handle event: " + e.Reason
		if e.Tag != "" {
			s += " in <" + e.Tag + ">"
		}
	case KindEncoding:
		s = "invalid stream character/encoding"
		if e.Reason != "" {
			s += ": " + e.Reason
		}
		if e.Err != nil {
			s += ": " + e.Err.Error()
		}
	default:
		s = e.Kind.String()
	}
	if e.Offset > 0 {
		s = fmt.Sprintf("%s at input offset %d", s, e.Offset)
	}
	return s
}

// Unwrap returns the underlying cause of e
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind, so the
// sentinel values below can be used with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is; they match any *Error of their Kind.
var (
	ErrInvalidFormat    = &Error{Kind: KindInvalidFormat}
	ErrMissingAttribute = &Error{Kind: KindMissingAttribute}
	ErrValue            = &Error{Kind: KindValue}
	ErrBadState         = &Error{Kind: KindBadState}
	ErrUnhandledEvent   = &Error{Kind: KindUnhandledEvent}
	ErrEncoding         = &Error{Kind: KindEncoding}
)

// KindOf returns the Kind of the first *Error found in err's chain
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// At records the input offset on the first *Error in err's chain
// which has none yet. err is returned unchanged.
func At(err error, offset int64) error {
	var pe *Error
	if errors.As(err, &pe) && pe.Offset == 0 {
		pe.Offset = offset
	}
	return err
}

func InvalidFormat(reason string, opts ...Option) *Error {
	e := &Error{Kind: KindInvalidFormat, Reason: reason}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func MissingAttribute(parent, attribute string, opts ...Option) *Error {
	e := &Error{Kind: KindMissingAttribute, Parent: parent, Attribute: attribute}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValueError reports that the text of field could not be parsed
func ValueError(field string, kind ValueKind, opts ...Option) *Error {
	e := &Error{Kind: KindValue, Field: field, Value: kind, Tag: field}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BadState reports an operation attempted on a node in state current
func BadState(current fmt.Stringer, opts ...Option) *Error {
	e := &Error{Kind: KindBadState, State: current.String()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func UnhandledEvent(reason string, opts ...Option) *Error {
	e := &Error{Kind: KindUnhandledEvent, Reason: reason}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func EncodingError(cause error, opts ...Option) *Error {
	e := &Error{Kind: KindEncoding, Err: cause}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
