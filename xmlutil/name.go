package xmlutil

import (
	"encoding/xml"
	"strings"
)

// TagName renders n the way it appears in the document: prefix:local,
// or just local when unprefixed. Names coming from a raw token stream
// carry the prefix, not the namespace URI, in Space.
func TagName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// ParseName is the inverse of TagName.
func ParseName(s string) xml.Name {
	if i := strings.IndexByte(s, ':'); i > 0 {
		return xml.Name{Space: s[:i], Local: s[i+1:]}
	}
	return xml.Name{Local: s}
}
