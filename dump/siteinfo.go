package dump

import (
	"github.com/Caellian/wiki-extractor/tag"
	"github.com/Caellian/wiki-extractor/token"
	"github.com/Caellian/wiki-extractor/xmlutil"
)

// Namespace is an entry of <siteinfo><namespaces>
type Namespace struct {
	// ID is the namespace key, as used by <page><ns>
	ID   int
	Case string
	name *tag.Value[string]
}

// NewNamespace returns an Open Namespace built from the attributes of its
// start tag
func NewNamespace(attrs xmlutil.Attributes) (*Namespace, error) {
	id, err := attrs.Int("namespace", "key")
	if err != nil {
		return nil, err
	}
	ns := &Namespace{ID: int(id), Case: attrs["case"], name: tag.NewString("namespace")}
	return ns, ns.name.Open(attrs)
}

// Name is the namespace prefix, empty for the main namespace
func (ns *Namespace) Name() string { return ns.name.Get() }

func (ns *Namespace) Key() string                      { return "namespace" }
func (ns *Namespace) State() tag.State                 { return ns.name.State() }
func (ns *Namespace) HandleEvent(ev token.Event) error { return ns.name.HandleEvent(ev) }
func (ns *Namespace) Close() error                     { return ns.name.Close() }

// SiteInfo is the <siteinfo> header of an export
type SiteInfo struct {
	*tag.Composite

	SiteName   *tag.Value[string]
	DBName     *tag.Value[string]
	Base       *tag.Value[string]
	Generator  *tag.Value[string]
	Case       *tag.Value[string]
	Namespaces *tag.List[*Namespace]
}

func NewSiteInfo() *SiteInfo {
	s := &SiteInfo{
		SiteName:   tag.NewString("sitename"),
		DBName:     tag.NewString("dbname"),
		Base:       tag.NewString("base"),
		Generator:  tag.NewString("generator"),
		Case:       tag.NewString("case"),
		Namespaces: tag.NewList[*Namespace]("namespaces", "namespace", NewNamespace),
	}
	s.Composite = tag.NewComposite("siteinfo",
		s.SiteName, s.DBName, s.Base, s.Generator, s.Case, s.Namespaces)
	return s
}

// Namespace returns the namespace with the given key
func (s *SiteInfo) Namespace(id int) (*Namespace, bool) {
	for _, ns := range s.Namespaces.Items() {
		if ns.ID == id {
			return ns, true
		}
	}
	return nil, false
}
