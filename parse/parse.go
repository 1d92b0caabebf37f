// Package parse provides XML parsing support for manifest documents.
package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/portable-homeserver/manifest-patch/debug"
	"github.com/portable-homeserver/manifest-patch/ir"
)

// Parse parses an XML document into an ir tree and returns the root element.
//
// Namespace prefixes on attributes are resolved to URIs by the decoder; the
// declarations themselves (xmlns:foo="uri") survive as ordinary attributes
// with Name.Space == "xmlns", so a round trip through encode preserves them.
// Whitespace-only character data between elements is dropped unless
// ParseKeepSpace is set; the encoder re-indents on output.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{comments: true}
	for _, f := range opts {
		f(pOpts)
	}
	dec := xml.NewDecoder(bytes.NewReader(d))
	var (
		root *ir.Node
		cur  *ir.Node
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := ir.NewElement(ir.Name{Space: t.Name.Space, Local: t.Name.Local})
			node.Attrs = make([]ir.Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, ir.Attr{
					Name:  ir.Name{Space: a.Name.Space, Local: a.Name.Local},
					Value: a.Value,
				})
			}
			switch {
			case cur != nil:
				cur.AppendChild(node)
			case root != nil:
				return nil, fmt.Errorf("%w: multiple root elements", ErrParse)
			default:
				root = node
			}
			cur = node
		case xml.EndElement:
			// the decoder guarantees balance, so cur is never nil here
			cur = cur.Parent
		case xml.CharData:
			if cur == nil {
				continue
			}
			s := string(t)
			if !pOpts.keepSpace {
				s = strings.TrimSpace(s)
				if s == "" {
					continue
				}
			}
			cur.AppendChild(ir.NewText(s))
		case xml.Comment:
			if !pOpts.comments || cur == nil {
				continue
			}
			cur.AppendChild(ir.NewComment(string(t)))
		case xml.ProcInst:
			// the declaration is synthesized on output
			if t.Target == "xml" || cur == nil {
				continue
			}
			cur.AppendChild(&ir.Node{
				Kind: ir.ProcInstKind,
				Name: ir.Name{Local: t.Target},
				Text: string(t.Inst),
			})
		case xml.Directive:
			// DOCTYPE and friends have no place in a generated manifest
			continue
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrParse)
	}
	if debug.Parse() {
		debug.Logf("parsed root <%s> with %d children\n", root.Name.Local, len(root.Children))
	}
	return root, nil
}
