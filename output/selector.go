package output

import (
	"math"
	"strconv"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"

	"github.com/Caellian/wiki-extractor/dump"
	"github.com/Caellian/wiki-extractor/tag"
)

// Selector decides which pages are written, by evaluating an XPath
// expression with the page element as context node.
//
// The tree the expression sees holds the page fields, the redirect and
// the revision metadata; revision text is left out.
//
//	<page><title/><ns/><id/><redirect title=""/><restrictions/>
//	  <revision><id/><parentid/><timestamp/><contributor/><minor/>
//	    <comment/><model/><format/><sha1/><text bytes=""/></revision>
//	</page>
//
// Node sets select when non-empty, numbers when non-zero and strings when
// non-empty.
type Selector struct {
	expr *xpath.Expr
}

func NewSelector(expr string) (*Selector, error) {
	e, err := xpath.Compile(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid selection %q", expr)
	}
	return &Selector{expr: e}, nil
}

func (s *Selector) String() string { return s.expr.String() }

// Match reports whether p is selected. Expressions xpath compiles but
// cannot evaluate, such as arithmetic on a node set, fail with an error.
func (s *Selector) Match(p *dump.Page) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, errors.Errorf("evaluating selection %q: %v", s.expr.String(), r)
		}
	}()
	nav := xmlquery.CreateXPathNavigator(PageTree(p))
	nav.MoveToChild()
	switch v := s.expr.Evaluate(nav).(type) {
	case bool:
		return v, nil
	case float64:
		return v != 0 && !math.IsNaN(v), nil
	case string:
		return v != "", nil
	case *xpath.NodeIterator:
		return v.MoveNext(), nil
	}
	return false, nil
}

// PageTree returns a document node holding the <page> element of p
func PageTree(p *dump.Page) *xmlquery.Node {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}
	page := element(doc, "page")
	leaf(page, "title", p.Title.Get())
	if v, ok := p.NS.Value(); ok {
		leaf(page, "ns", strconv.FormatInt(v, 10))
	}
	if v, ok := p.ID.Value(); ok {
		leaf(page, "id", strconv.FormatUint(v, 10))
	}
	if p.Redirect != nil {
		xmlquery.AddAttr(element(page, "redirect"), "title", *p.Redirect)
	}
	if v, ok := p.Restrictions.Value(); ok {
		leaf(page, "restrictions", v)
	}
	for _, rev := range p.Revisions {
		r := element(page, "revision")
		uintLeaf(r, "id", rev.ID.Value)
		uintLeaf(r, "parentid", rev.ParentID.Value)
		stringLeaf(r, "timestamp", rev.Timestamp.Value)
		if rev.Contributor.State() == tag.Closed {
			c := element(r, "contributor")
			if rev.Contributor.Deleted() {
				xmlquery.AddAttr(c, "deleted", "deleted")
			}
			stringLeaf(c, "username", rev.Contributor.Username.Value)
			uintLeaf(c, "id", rev.Contributor.ID.Value)
			stringLeaf(c, "ip", rev.Contributor.IP.Value)
		}
		if rev.Minor.Get() {
			element(r, "minor")
		}
		stringLeaf(r, "comment", rev.Comment.Value)
		uintLeaf(r, "origin", rev.Origin.Value)
		stringLeaf(r, "model", rev.Model.Value)
		stringLeaf(r, "format", rev.Format.Value)
		stringLeaf(r, "sha1", rev.SHA1.Value)
		text := element(r, "text")
		if n, ok := rev.Size(); ok {
			xmlquery.AddAttr(text, "bytes", strconv.FormatInt(n, 10))
		}
	}
	return doc
}

func element(parent *xmlquery.Node, name string) *xmlquery.Node {
	n := &xmlquery.Node{Type: xmlquery.ElementNode, Data: name}
	xmlquery.AddChild(parent, n)
	return n
}

func leaf(parent *xmlquery.Node, name, text string) {
	n := element(parent, name)
	if text != "" {
		xmlquery.AddChild(n, &xmlquery.Node{Type: xmlquery.TextNode, Data: text})
	}
}

func stringLeaf(parent *xmlquery.Node, name string, get func() (string, bool)) {
	if v, ok := get(); ok {
		leaf(parent, name, v)
	}
}

func uintLeaf(parent *xmlquery.Node, name string, get func() (uint64, bool)) {
	if v, ok := get(); ok {
		leaf(parent, name, strconv.FormatUint(v, 10))
	}
}
