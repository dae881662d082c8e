package token

import (
	"encoding/xml"
	"fmt"

	"github.com/Caellian/wiki-extractor/xmlutil"
)

// Kind is the type of an Event
type Kind int

const (
	StartTag Kind = iota
	EmptyTag
	EndTag
	Text
	CData
	Comment
	ProcInst
	Directive
	EOF
)

func (k Kind) String() string {
	switch k {
	case StartTag:
		return "start tag"
	case EmptyTag:
		return "empty tag"
	case EndTag:
		return "end tag"
	case Text:
		return "text"
	case CData:
		return "CDATA"
	case Comment:
		return "comment"
	case ProcInst:
		return "processing instruction"
	case Directive:
		return "directive"
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event is a single token of input.
//
// Name is set for tags (and holds the target of a processing
// instruction), Attr for start and empty tags, Data for text, CDATA,
// comments, directives and processing instruction bodies. Offset is the
// input byte offset the token begins at.
type Event struct {
	Kind   Kind
	Name   xml.Name
	Attr   []xml.Attr
	Data   []byte
	Offset int64
}

// Tag returns the event's name as written in the document
func (e Event) Tag() string { return xmlutil.TagName(e.Name) }

// Is reports whether e is a tag event of kind k named name
func (e Event) Is(k Kind, name string) bool { return e.Kind == k && e.Tag() == name }

func (e Event) String() string {
	switch e.Kind {
	case StartTag:
		return "<" + e.Tag() + ">"
	case EmptyTag:
		return "<" + e.Tag() + "/>"
	case EndTag:
		return "</" + e.Tag() + ">"
	case EOF:
		return "EOF"
	}
	if len(e.Data) > 32 {
		return fmt.Sprintf("%s %q...", e.Kind, e.Data[:32])
	}
	return fmt.Sprintf("%s %q", e.Kind, e.Data)
}

// Start returns a StartTag event. attrs are name, value pairs.
func Start(name string, attrs ...string) Event {
	return Event{Kind: StartTag, Name: xmlutil.ParseName(name), Attr: pairs(attrs)}
}

// Empty returns an EmptyTag event. attrs are name, value pairs.
func Empty(name string, attrs ...string) Event {
	return Event{Kind: EmptyTag, Name: xmlutil.ParseName(name), Attr: pairs(attrs)}
}

func End(name string) Event { return Event{Kind: EndTag, Name: xmlutil.ParseName(name)} }

func TextOf(s string) Event { return Event{Kind: Text, Data: []byte(s)} }

func CommentOf(s string) Event { return Event{Kind: Comment, Data: []byte(s)} }

func EOFEvent() Event { return Event{Kind: EOF} }

func pairs(kv []string) []xml.Attr {
	if len(kv) == 0 {
		return nil
	}
	attrs := make([]xml.Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, xml.Attr{Name: xmlutil.ParseName(kv[i]), Value: kv[i+1]})
	}
	return attrs
}
