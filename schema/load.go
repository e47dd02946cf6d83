package schema

import (
	"io"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"github.com/pkg/errors"
)

var (
	xpSchema    = xpath.MustCompile(`/schema`)
	xpContainer = xpath.MustCompile(`/schema/container`)
	xpField     = xpath.MustCompile(`/schema/field`)
)

// Load reads an XML schema file from r and returns its Policy
func Load(r io.Reader) (*Policy, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "schema: parse")
	}
	root := xmlquery.QuerySelector(doc, xpSchema)
	if root == nil {
		return nil, errors.New("schema: missing <schema> element")
	}

	cfg := Config{Record: attr(root, "record")}
	for _, c := range xmlquery.QuerySelectorAll(doc, xpContainer) {
		cfg.Containers = append(cfg.Containers, attr(c, "name"))
	}
	for _, f := range xmlquery.QuerySelectorAll(doc, xpField) {
		cfg.Fields = append(cfg.Fields, Field{
			Container: attr(f, "container"),
			Tag:       attr(f, "tag"),
			Name:      attr(f, "name"),
		})
	}
	return New(cfg)
}

// LoadFile reads the XML schema file at path
func LoadFile(path string) (*Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "schema")
	}
	defer f.Close()
	p, err := Load(f)
	return p, errors.Wrapf(err, "%s", path)
}

func attr(n *xmlquery.Node, name string) string { return strings.TrimSpace(n.SelectAttr(name)) }
