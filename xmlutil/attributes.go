package xmlutil

import (
	"encoding/xml"
	"strconv"
	"unicode/utf8"

	"github.com/Caellian/wiki-extractor/parseerr"
)

// Attributes holds an element's attributes keyed by their TagName
type Attributes map[string]string

// NewAttributes collects attrs. When a name repeats, the last value wins.
func NewAttributes(attrs []xml.Attr) Attributes {
	if len(attrs) == 0 {
		return nil
	}
	m := make(Attributes, len(attrs))
	for _, attr := range attrs {
		m[TagName(attr.Name)] = attr.Value
	}
	return m
}

func (a Attributes) Get(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

// Require returns the value of the name attribute of the parent element.
func (a Attributes) Require(parent, name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", parseerr.MissingAttribute(parent, name)
	}
	if !utf8.ValidString(v) {
		return "", parseerr.EncodingError(nil, parseerr.WithTag(parent), parseerr.WithMessage(name))
	}
	return v, nil
}

// Int returns the required name attribute of parent parsed as a base 10
// integer
func (a Attributes) Int(parent, name string) (int64, error) {
	v, err := a.Require(parent, name)
	if err != nil {
		return 0, err
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, parseerr.ValueError(name, parseerr.InvalidInt, parseerr.WithCause(err), parseerr.WithTag(parent))
	}
	return i, nil
}
