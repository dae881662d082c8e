package tag

import (
	"fmt"

	"github.com/Caellian/wiki-extractor/parseerr"
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// State is a node's lifecycle state
type State int

const (
	Unopened State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Node is an element of the document tree
type Node interface {
	// Key is the name of the tag the node is built from
	Key() string
	State() State
	HandleEvent(ev token.Event) error
	// Close finishes the node. It fails unless the node is Open.
	Close() error
}

// Slot is a Node a container can (re)open from a start tag
type Slot interface {
	Node
	// Open discards anything the node holds and opens it
	Open(attrs xmlutil.Attributes) error
	// Reset discards anything the node holds and leaves it Unopened
	Reset()
}

// Ignorable reports whether ev may occur between the children of any
// container: blank text, comments, processing instructions and
// directives.
func Ignorable(ev token.Event) bool {
	switch ev.Kind {
	case token.Text, token.CData:
		return xmlutil.IsBlank(ev.Data)
	case token.Comment, token.ProcInst, token.Directive:
		return true
	}
	return false
}

// Unhandled returns the error for an event which matched no dispatch
// rule of the node named in
func Unhandled(ev token.Event, in string) error {
	return parseerr.UnhandledEvent("unexpected "+ev.String(), parseerr.WithTag(in), parseerr.WithOffset(ev.Offset))
}

// NotOpen returns the error for an event delivered to the node named
// key while in state s
func NotOpen(key string, s State) error {
	return parseerr.BadState(s, parseerr.WithTag(key))
}

// Unclosed returns the error for the end of input reaching the node
// named key while it is still open
func Unclosed(key string) error {
	return parseerr.BadState(Open, parseerr.WithTag(key), parseerr.WithMessage("unexpected end of input"))
}
