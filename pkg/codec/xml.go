package codec

import (
	"fmt"

	"github.com/beevik/etree"
)

// Extractor pulls one wire value out of a parsed XML document root.
type Extractor func(root *etree.Element) (any, error)

// Ring maps wire keys to extractors. XML APIs rarely mirror a mapping shape
// directly, so a ring describes how to build the raw mapping a modeled type
// expects from the element tree.
type Ring map[string]Extractor

type xmlCodec struct {
	ring         Ring
	contentTypes []string
}

// XMLRing returns a codec that parses XML bodies and runs every ring
// extractor against the document root. Content types default to text/xml and
// application/xml.
func XMLRing(ring Ring, contentTypes ...string) Codec {
	if len(contentTypes) == 0 {
		contentTypes = []string{"text/xml", "application/xml"}
	}
	return &xmlCodec{ring: ring, contentTypes: contentTypes}
}

func (c *xmlCodec) ContentTypes() []string {
	return append([]string(nil), c.contentTypes...)
}

func (c *xmlCodec) Decode(body []byte) (map[string]any, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("codec: parse XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("codec: XML payload has no root element")
	}
	out := make(map[string]any, len(c.ring))
	for key, extract := range c.ring {
		v, err := extract(root)
		if err != nil {
			return nil, fmt.Errorf("codec: extract %q: %w", key, err)
		}
		if v != nil {
			out[key] = v
		}
	}
	return out, nil
}

// Attr extracts an attribute from the element at path, the root itself when
// path is empty.
func Attr(path, name string) Extractor {
	return func(root *etree.Element) (any, error) {
		el := root
		if path != "" {
			el = root.FindElement(path)
		}
		if el == nil {
			return nil, nil
		}
		if attr := el.SelectAttr(name); attr != nil {
			return attr.Value, nil
		}
		return nil, nil
	}
}

// Text extracts the text content of the element at path.
func Text(path string) Extractor {
	return func(root *etree.Element) (any, error) {
		el := root.FindElement(path)
		if el == nil {
			return nil, nil
		}
		return el.Text(), nil
	}
}

// Each runs an inner ring over every element matching path, producing a
// sequence of nested mappings for collection fields. Zero matches produce an
// empty sequence, not nil.
func Each(path string, inner Ring) Extractor {
	return func(root *etree.Element) (any, error) {
		out := []any{}
		for _, el := range root.FindElements(path) {
			m := make(map[string]any, len(inner))
			for key, extract := range inner {
				v, err := extract(el)
				if err != nil {
					return nil, fmt.Errorf("element %q, key %q: %w", path, key, err)
				}
				if v != nil {
					m[key] = v
				}
			}
			out = append(out, m)
		}
		return out, nil
	}
}
