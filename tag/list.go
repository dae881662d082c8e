package tag

import (
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// Builder returns a new Open child node built from its start tag's
// attributes
type Builder[T Node] func(attrs xmlutil.Attributes) (T, error)

// List is a container tag holding a sequence of same-named children, in
// document order. Only the last child may be Open.
type List[T Node] struct {
	key      string
	childKey string
	build    Builder[T]
	state    State
	items    []T
}

// NewList returns an Unopened List for tag key, whose children are
// childKey tags built with build
func NewList[T Node](key, childKey string, build Builder[T]) *List[T] {
	return &List[T]{key: key, childKey: childKey, build: build}
}

func (l *List[T]) Key() string  { return l.key }
func (l *List[T]) State() State { return l.state }

// Open empties the list
func (l *List[T]) Open(xmlutil.Attributes) error {
	l.state, l.items = Open, nil
	return nil
}

func (l *List[T]) Reset() { l.state, l.items = Unopened, nil }

// Close stops the list accepting children. Children already present are
// left as they are.
func (l *List[T]) Close() error {
	if l.state != Open {
		return NotOpen(l.key, l.state)
	}
	l.state = Closed
	return nil
}

func (l *List[T]) HandleEvent(ev token.Event) error {
	if l.state != Open {
		return NotOpen(l.key, l.state)
	}
	if last, ok := l.Last(); ok && last.State() == Open {
		return last.HandleEvent(ev)
	}
	switch ev.Kind {
	case token.StartTag, token.EmptyTag:
		if ev.Tag() != l.childKey {
			break
		}
		item, err := l.build(xmlutil.NewAttributes(ev.Attr))
		if err != nil {
			return err
		}
		if ev.Kind == token.EmptyTag {
			if err := item.Close(); err != nil {
				return err
			}
		}
		l.items = append(l.items, item)
		return nil
	case token.EndTag:
		if ev.Tag() == l.key {
			return l.Close()
		}
	case token.EOF:
		return Unclosed(l.key)
	}
	if Ignorable(ev) {
		return nil
	}
	return Unhandled(ev, l.key)
}

func (l *List[T]) Items() []T { return l.items }
func (l *List[T]) Len() int   { return len(l.items) }

// Last returns the most recently added child
func (l *List[T]) Last() (last T, ok bool) {
	if len(l.items) == 0 {
		return last, false
	}
	return l.items[len(l.items)-1], true
}

// Shift removes and returns the first child, provided it is Closed
func (l *List[T]) Shift() (first T, ok bool) {
	if len(l.items) == 0 || l.items[0].State() != Closed {
		return first, false
	}
	first = l.items[0]
	var zero T
	l.items[0] = zero
	l.items = l.items[1:]
	return first, true
}
