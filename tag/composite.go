package tag

import (
	"github.com/golang/glog"

	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// Fallback is consulted by Composite.Dispatch for events the slot table
// does not account for. It reports whether it handled ev.
type Fallback func(ev token.Event) (bool, error)

// Composite is a container tag with a fixed table of child slots.
//
// Records embed a *Composite built over their fields and override
// HandleEvent where they need rules beyond the slot table.
type Composite struct {
	key     string
	state   State
	attrs   xmlutil.Attributes
	slots   []Slot
	onClose func() error
}

// NewComposite returns an Unopened Composite for tag key. Slots are
// searched in the order given.
func NewComposite(key string, slots ...Slot) *Composite {
	return &Composite{key: key, slots: slots}
}

// OnClose sets a function run when the composite's end tag is seen,
// before it becomes Closed
func (c *Composite) OnClose(fn func() error) { c.onClose = fn }

func (c *Composite) Key() string                    { return c.key }
func (c *Composite) State() State                   { return c.state }
func (c *Composite) Attributes() xmlutil.Attributes { return c.attrs }

// Open resets every slot and opens the composite
func (c *Composite) Open(attrs xmlutil.Attributes) error {
	c.Reset()
	c.state, c.attrs = Open, attrs
	return nil
}

// Reset returns the composite and every slot to Unopened
func (c *Composite) Reset() {
	for _, s := range c.slots {
		s.Reset()
	}
	c.state, c.attrs = Unopened, nil
}

func (c *Composite) Close() error {
	if c.state != Open {
		return NotOpen(c.key, c.state)
	}
	if c.onClose != nil {
		if err := c.onClose(); err != nil {
			return err
		}
	}
	c.state = Closed
	return nil
}

// HandleEvent dispatches ev through the slot table alone
func (c *Composite) HandleEvent(ev token.Event) error { return c.Dispatch(ev, nil) }

// Dispatch routes ev: to the open slot if there is one; otherwise a
// slot's start tag opens it, a slot's self-closing tag opens and closes
// it, and the composite's own end tag closes the composite. Anything
// else goes to fallback, and fails unless fallback handles it or it is
// Ignorable.
func (c *Composite) Dispatch(ev token.Event, fallback Fallback) error {
	if c.state != Open {
		return NotOpen(c.key, c.state)
	}
	for _, s := range c.slots {
		if s.State() == Open {
			return s.HandleEvent(ev)
		}
	}
	switch ev.Kind {
	case token.StartTag, token.EmptyTag:
		s := c.slot(ev.Tag())
		if s == nil {
			break
		}
		if glog.V(3) {
			glog.Infof("<%s>: open %s", c.key, ev)
		}
		if err := s.Open(xmlutil.NewAttributes(ev.Attr)); err != nil {
			return err
		}
		if ev.Kind == token.EmptyTag {
			return s.Close()
		}
		return nil
	case token.EndTag:
		if ev.Tag() == c.key {
			return c.Close()
		}
	case token.EOF:
		return Unclosed(c.key)
	}
	if fallback != nil {
		if handled, err := fallback(ev); handled || err != nil {
			return err
		}
	}
	if Ignorable(ev) {
		return nil
	}
	return Unhandled(ev, c.key)
}

func (c *Composite) slot(key string) Slot {
	for _, s := range c.slots {
		if s.Key() == key {
			return s
		}
	}
	return nil
}
