package dump

import (
	"github.com/Caellian/wiki-extractor/parseerr"
	"github.com/Caellian/wiki-extractor/tag"
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// UnknownRedirect is the target recorded for a <redirect/> without a
// title attribute
const UnknownRedirect = "unknown"

// Page is a <page> of the export.
//
// Unlike other records a Page stays addressable once Closed: the
// Document keeps it in its page list until a consumer removes it.
type Page struct {
	Title        *tag.Value[string]
	NS           *tag.Value[int64]
	ID           *tag.Value[uint64]
	Restrictions *tag.Value[string]
	// Redirect is the redirect target, when the page is a redirect
	Redirect  *string
	Revisions []*Revision
	Closed    bool

	body *tag.Composite
}

// NewPage returns an Open page
func NewPage(attrs xmlutil.Attributes) *Page {
	p := &Page{
		Title:        tag.NewString("title"),
		NS:           tag.NewInt("ns"),
		ID:           tag.NewUint("id"),
		Restrictions: tag.NewString("restrictions"),
	}
	p.body = tag.NewComposite("page", p.Title, p.NS, p.ID, p.Restrictions)
	p.body.OnClose(func() error {
		p.Closed = true
		return nil
	})
	_ = p.body.Open(attrs)
	return p
}

func (p *Page) Key() string { return "page" }

func (p *Page) State() tag.State { return p.body.State() }

func (p *Page) Close() error { return p.body.Close() }

// HandleEvent routes ev to the last revision while it is open, and to the
// page's own fields otherwise.
func (p *Page) HandleEvent(ev token.Event) error {
	if p.Closed {
		return tag.NotOpen(p.Key(), tag.Closed)
	}
	if rev := p.Latest(); rev != nil && rev.State() == tag.Open {
		return rev.HandleEvent(ev)
	}
	return p.body.Dispatch(ev, p.fallback)
}

func (p *Page) fallback(ev token.Event) (bool, error) {
	switch {
	case ev.Is(token.StartTag, "revision"):
		rev := NewRevision()
		if err := rev.Open(xmlutil.NewAttributes(ev.Attr)); err != nil {
			return true, err
		}
		p.Revisions = append(p.Revisions, rev)
		return true, nil
	case ev.Is(token.EmptyTag, "redirect"):
		if len(p.Revisions) > 0 {
			return true, parseerr.UnhandledEvent("redirect after revision", parseerr.WithTag(p.Key()), parseerr.WithOffset(ev.Offset))
		}
		target, ok := xmlutil.NewAttributes(ev.Attr).Get("title")
		if !ok {
			target = UnknownRedirect
		}
		p.Redirect = &target
		return true, nil
	}
	return false, nil
}

// Latest returns the last revision of the page, or nil
func (p *Page) Latest() *Revision {
	if len(p.Revisions) == 0 {
		return nil
	}
	return p.Revisions[len(p.Revisions)-1]
}

func (p *Page) IsRedirect() bool { return p.Redirect != nil }

// RedirectTarget returns the redirect target, or "" for regular pages
func (p *Page) RedirectTarget() string {
	if p.Redirect == nil {
		return ""
	}
	return *p.Redirect
}
