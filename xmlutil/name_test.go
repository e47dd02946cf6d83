package xmlutil

import (
	"encoding/xml"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	for _, tc := range []struct {
		name xml.Name
		want string
	}{
		{name: xml.Name{Local: "page"}, want: "page"},
		{name: xml.Name{Space: "http://www.mediawiki.org/xml/export-0.10/", Local: "page"}, want: "page"},
		{want: ""},
	} {
		t.Run(fmt.Sprintf("%v", tc.name), func(t *testing.T) { assert.New(t).Equal(tc.want, Tag(tc.name)) })
	}
}

func TestAttrMap(t *testing.T) {
	for _, tc := range []struct {
		attrs []xml.Attr
		want  map[string]string
	}{
		// #00: no attributes
		{},

		// #01
		{
			attrs: []xml.Attr{
				{Name: xml.Name{Local: "xmlns"}, Value: "http://www.mediawiki.org/xml/export-0.10/"},
				{Name: xml.Name{Space: "xmlns", Local: "xsi"}, Value: "http://www.w3.org/2001/XMLSchema-instance"},
				{Name: xml.Name{Local: "deleted"}, Value: "deleted"},
				{Name: xml.Name{Space: "http://www.w3.org/XML/1998/namespace", Local: "space"}, Value: "preserve"},
			},
			want: map[string]string{"deleted": "deleted", "space": "preserve"},
		},

		// #02: only namespace declarations
		{
			attrs: []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: "urn:x"}},
		},
	} {
		t.Run("", func(t *testing.T) { assert.New(t).Equal(tc.want, AttrMap(tc.attrs)) })
	}
}
