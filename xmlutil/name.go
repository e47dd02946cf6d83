package xmlutil

import "encoding/xml"

// Tag returns the tag used to match n against a schema: its local
// name. Namespaces are not resolved.
func Tag(n xml.Name) string { return n.Local }

// AttrMap returns attrs as a map keyed by local attribute name, or
// nil if there are none. Namespace declarations are skipped.
func AttrMap(attrs []xml.Attr) map[string]string {
	var m map[string]string
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			continue
		}
		if m == nil {
			m = make(map[string]string, len(attrs))
		}
		m[attr.Name.Local] = attr.Value
	}
	return m
}
