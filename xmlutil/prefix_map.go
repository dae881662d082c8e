package xmlutil

import (
	"encoding/xml"
)

// PrefixMap is a prefix to namespace URI map. The default namespace
// is held under the empty prefix.
type PrefixMap map[string]string

// NewPrefixMap returns a PrefixMap, containing the xmlns and xmlns:<prefix>
// declarations among the passed XML attributes
func NewPrefixMap(attrs ...xml.Attr) PrefixMap {
	pmap := PrefixMap{}
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "xmlns":
			pmap[attr.Name.Local] = attr.Value
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			pmap[""] = attr.Value
		}
	}
	return pmap
}

// Default returns the default namespace URI and whether one was declared
func (m PrefixMap) Default() (string, bool) {
	ns, ok := m[""]
	return ns, ok
}
