package dump

import (
	"strings"

	"github.com/golang/glog"

	"github.com/Caellian/wiki-extractor/parseerr"
	"github.com/Caellian/wiki-extractor/tag"
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

const (
	// RootTag is the name of the export's root element
	RootTag = "mediawiki"
	// ExportNamespace prefixes the versioned namespace of the root element
	ExportNamespace = "http://www.mediawiki.org/xml/export"
)

// Document is the root of an export. It owns the SiteInfo and the pages
// not yet drained by the consumer.
type Document struct {
	SourceName string
	// Namespace is the export namespace, set once the root element was
	// validated
	Namespace *string
	SiteInfo  *SiteInfo

	state  tag.State
	pages  []*Page
	failed error

	// element depth within the last page, the <page> element included
	depth    int
	skipping bool
	recover  func(*Page, error)
}

func NewDocument(sourceName string, opts ...Option) *Document {
	d := &Document{SourceName: sourceName, SiteInfo: NewSiteInfo()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) Key() string      { return RootTag }
func (d *Document) State() tag.State { return d.state }

// HandleEvent applies the next event of the input to the document
func (d *Document) HandleEvent(ev token.Event) error {
	if d.failed != nil {
		return d.failed
	}
	switch d.state {
	case tag.Unopened:
		return d.open(ev)
	case tag.Closed:
		if ev.Kind == token.EOF || tag.Ignorable(ev) {
			return nil
		}
		return tag.NotOpen(RootTag, d.state)
	}

	if d.skipping {
		return d.skip(ev)
	}
	if d.SiteInfo.State() == tag.Open {
		return d.SiteInfo.HandleEvent(ev)
	}
	if p := d.lastPage(); p != nil && !p.Closed {
		return d.forward(p, ev)
	}

	switch {
	case ev.Is(token.StartTag, "siteinfo"), ev.Is(token.EmptyTag, "siteinfo"):
		if err := d.SiteInfo.Open(xmlutil.NewAttributes(ev.Attr)); err != nil {
			return err
		}
		if ev.Kind == token.EmptyTag {
			return d.SiteInfo.Close()
		}
		return nil
	case ev.Is(token.StartTag, "page"):
		d.pages = append(d.pages, NewPage(xmlutil.NewAttributes(ev.Attr)))
		d.depth = 1
		return nil
	case ev.Is(token.EndTag, RootTag):
		d.state = tag.Closed
		glog.V(1).Infof("%s: document closed", d.SourceName)
		return nil
	case ev.Kind == token.EOF:
		return parseerr.BadState(d.state, parseerr.WithTag(RootTag), parseerr.WithMessage("unclosed document"))
	case tag.Ignorable(ev):
		return nil
	}
	return tag.Unhandled(ev, RootTag)
}

// open validates the root element
func (d *Document) open(ev token.Event) error {
	switch ev.Kind {
	case token.StartTag, token.EmptyTag:
	case token.EOF:
		d.failed = parseerr.InvalidFormat("no root element", parseerr.WithOffset(ev.Offset))
		return d.failed
	default:
		if tag.Ignorable(ev) {
			return nil
		}
		return tag.Unhandled(ev, "")
	}

	if name := ev.Tag(); name != RootTag {
		d.failed = parseerr.InvalidFormat("expected root tag '"+RootTag+"'; got '"+name+"'", parseerr.WithOffset(ev.Offset))
		return d.failed
	}
	ns, ok := xmlutil.NewPrefixMap(ev.Attr...).Default()
	if !ok {
		d.failed = parseerr.InvalidFormat("root element has no namespace", parseerr.WithOffset(ev.Offset))
		return d.failed
	}
	if !strings.HasPrefix(ns, ExportNamespace) {
		d.failed = parseerr.InvalidFormat("unsupported namespace '"+ns+"'", parseerr.WithOffset(ev.Offset))
		return d.failed
	}
	d.Namespace = &ns
	d.state = tag.Open
	if ev.Kind == token.EmptyTag {
		d.state = tag.Closed
	}
	glog.V(1).Infof("%s: export namespace %s", d.SourceName, ns)
	return nil
}

// forward hands ev to the open page p, tracking element depth so that
// the rest of the page can be skipped if it fails
func (d *Document) forward(p *Page, ev token.Event) error {
	switch ev.Kind {
	case token.StartTag:
		d.depth++
	case token.EndTag:
		d.depth--
	}
	err := p.HandleEvent(ev)
	if err == nil {
		if p.Closed {
			glog.V(2).Infof("%s: page %q closed", d.SourceName, p.Title.Get())
		}
		return nil
	}
	if d.recover == nil || ev.Kind == token.EOF {
		return err
	}
	d.pages = d.pages[:len(d.pages)-1]
	d.recover(p, err)
	if ev.Is(token.EndTag, "page") {
		d.depth = 0
	}
	d.skipping = d.depth > 0
	return nil
}

// skip drops the events of a failed page. Pages do not nest, so its end
// tag ends the page whatever the depth.
func (d *Document) skip(ev token.Event) error {
	switch ev.Kind {
	case token.StartTag:
		d.depth++
	case token.EndTag:
		d.depth--
		if ev.Tag() == "page" {
			d.depth = 0
		}
	case token.EOF:
		return parseerr.BadState(tag.Open, parseerr.WithTag("page"), parseerr.WithMessage("unclosed document"))
	}
	if d.depth == 0 {
		d.skipping = false
	}
	return nil
}

func (d *Document) lastPage() *Page {
	if len(d.pages) == 0 {
		return nil
	}
	return d.pages[len(d.pages)-1]
}

// Pages returns the pages not yet removed, the last one possibly still
// being built
func (d *Document) Pages() []*Page { return d.pages }

// PopPage removes and returns the first page if it is Closed
func (d *Document) PopPage() (*Page, bool) {
	if len(d.pages) == 0 || !d.pages[0].Closed {
		return nil, false
	}
	p := d.pages[0]
	d.pages[0] = nil
	d.pages = d.pages[1:]
	return p, true
}

// Drain removes and returns the leading run of Closed pages
func (d *Document) Drain() []*Page {
	var out []*Page
	for {
		p, ok := d.PopPage()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

func (d *Document) SiteInfoClosed() bool { return d.SiteInfo.State() == tag.Closed }

// Closed reports whether the root end tag was seen
func (d *Document) Closed() bool { return d.state == tag.Closed }
