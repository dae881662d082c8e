package tag

import (
	"strconv"
	"unicode/utf8"

	"github.com/Caellian/wiki-extractor/parseerr"
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// Parser converts the text collected for field into a typed value
type Parser[T any] func(field string, attrs xmlutil.Attributes, text string) (T, error)

// Value is a leaf node: it collects the text content of one tag and
// parses it into a T when the tag closes.
type Value[T any] struct {
	key   string
	parse Parser[T]
	state State
	attrs xmlutil.Attributes
	buf   []byte
	value T
}

// NewValue returns an Unopened Value for tag key
func NewValue[T any](key string, parse Parser[T]) *Value[T] {
	return &Value[T]{key: key, parse: parse}
}

func NewString(key string) *Value[string] { return NewValue[string](key, String) }
func NewInt(key string) *Value[int64]     { return NewValue[int64](key, Int) }
func NewUint(key string) *Value[uint64]   { return NewValue[uint64](key, Uint) }
func NewFloat(key string) *Value[float64] { return NewValue[float64](key, Float) }
func NewFlag(key string) *Value[bool]     { return NewValue[bool](key, Flag) }

func (v *Value[T]) Key() string                    { return v.key }
func (v *Value[T]) State() State                   { return v.state }
func (v *Value[T]) Attributes() xmlutil.Attributes { return v.attrs }

func (v *Value[T]) Open(attrs xmlutil.Attributes) error {
	var zero T
	v.state, v.attrs, v.buf, v.value = Open, attrs, nil, zero
	return nil
}

func (v *Value[T]) Reset() {
	var zero T
	v.state, v.attrs, v.buf, v.value = Unopened, nil, nil, zero
}

// Append adds b to the text collected so far
func (v *Value[T]) Append(b []byte) error {
	if v.state != Open {
		return NotOpen(v.key, v.state)
	}
	if !utf8.Valid(b) {
		return parseerr.ValueError(v.key, parseerr.NonUTF8)
	}
	v.buf = append(v.buf, b...)
	return nil
}

// Close parses the collected text. The node is Closed afterwards even
// if parsing fails, in which case it holds the zero value.
func (v *Value[T]) Close() error {
	if v.state != Open {
		return NotOpen(v.key, v.state)
	}
	text := string(v.buf)
	v.buf, v.state = nil, Closed
	value, err := v.parse(v.key, v.attrs, text)
	if err != nil {
		return err
	}
	v.value = value
	return nil
}

func (v *Value[T]) HandleEvent(ev token.Event) error {
	if v.state != Open {
		return NotOpen(v.key, v.state)
	}
	switch ev.Kind {
	case token.Text, token.CData:
		return v.Append(ev.Data)
	case token.EndTag:
		if ev.Tag() == v.key {
			return v.Close()
		}
	case token.Comment, token.ProcInst, token.Directive:
		return nil
	case token.EOF:
		return Unclosed(v.key)
	}
	return Unhandled(ev, v.key)
}

// Value returns the parsed value, and whether the node is Closed
func (v *Value[T]) Value() (T, bool) { return v.value, v.state == Closed }

// Get returns the parsed value, or the zero value while not Closed
func (v *Value[T]) Get() T {
	if v.state != Closed {
		var zero T
		return zero
	}
	return v.value
}

// Partial returns the text collected so far by an Open node
func (v *Value[T]) Partial() string { return string(v.buf) }

// Take moves the parsed value out of a Closed node, leaving it Closed
// and holding the zero value.
func (v *Value[T]) Take() (T, bool) {
	value, ok := v.Value()
	if ok {
		var zero T
		v.value = zero
	}
	return value, ok
}

// String is the Parser for text fields
func String(_ string, _ xmlutil.Attributes, text string) (string, error) { return text, nil }

// Int parses a base 10 signed integer; surrounding blanks are allowed
func Int(field string, _ xmlutil.Attributes, text string) (int64, error) {
	i, err := strconv.ParseInt(trim(text), 10, 64)
	if err != nil {
		return 0, parseerr.ValueError(field, parseerr.InvalidInt, parseerr.WithCause(err))
	}
	return i, nil
}

func Uint(field string, _ xmlutil.Attributes, text string) (uint64, error) {
	u, err := strconv.ParseUint(trim(text), 10, 64)
	if err != nil {
		return 0, parseerr.ValueError(field, parseerr.InvalidInt, parseerr.WithCause(err))
	}
	return u, nil
}

func Float(field string, _ xmlutil.Attributes, text string) (float64, error) {
	f, err := strconv.ParseFloat(trim(text), 64)
	if err != nil {
		return 0, parseerr.ValueError(field, parseerr.InvalidFloat, parseerr.WithCause(err))
	}
	return f, nil
}

// Flag is the Parser for marker tags such as <minor/>, whose presence is
// the value.
func Flag(string, xmlutil.Attributes, string) (bool, error) { return true, nil }

func trim(s string) string {
	i, j := 0, len(s)
	for i < j && isBlank(s[i]) {
		i++
	}
	for j > i && isBlank(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
