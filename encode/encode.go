// Package encode serializes ir trees back to XML text with stable,
// human-diffable formatting.
package encode

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/portable-homeserver/manifest-patch/ir"
)

type EncState struct {
	indent string
	depth  int
	decl   bool

	// namespaces maps URIs to the prefixes used on output. The mapping is
	// explicit configuration rather than process-global registration;
	// resolveNamespaces extends it from the document's own declarations and
	// synthesizes prefixes for anything still unmapped.
	namespaces map[string]string

	root  *ir.Node
	synth []ir.Attr
}

// Encode writes node as XML. The output never ends with a newline after the
// root element; callers that need a trailing newline own that byte.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: "    "}
	for _, opt := range opts {
		opt(es)
	}
	es.resolveNamespaces(node)
	if es.decl {
		if err := writeString(w, xmlDeclaration+"\n"); err != nil {
			return err
		}
	}
	return encode(node, w, es)
}

const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>`

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Kind {
	case ir.TextKind:
		return escapeTo(w, node.Text)
	case ir.CommentKind:
		return writeString(w, "<!--"+node.Text+"-->")
	case ir.ProcInstKind:
		return writeString(w, "<?"+node.Name.Local+" "+node.Text+"?>")
	case ir.ElementKind:
		return encodeElement(node, w, es)
	}
	return fmt.Errorf("%w: cannot encode %s node", ErrEncoding, node.Kind)
}

func encodeElement(node *ir.Node, w io.Writer, es *EncState) error {
	name := es.renderName(node.Name)
	if err := writeString(w, "<"+name); err != nil {
		return err
	}
	for _, a := range node.Attrs {
		if err := writeString(w, " "+es.renderName(a.Name)+`="`); err != nil {
			return err
		}
		if err := escapeTo(w, a.Value); err != nil {
			return err
		}
		if err := writeString(w, `"`); err != nil {
			return err
		}
	}
	if node == es.root {
		for _, a := range es.synth {
			if err := writeString(w, " "+es.renderName(a.Name)+`="`); err != nil {
				return err
			}
			if err := escapeTo(w, a.Value); err != nil {
				return err
			}
			if err := writeString(w, `"`); err != nil {
				return err
			}
		}
	}
	if len(node.Children) == 0 {
		return writeString(w, "/>")
	}
	if err := writeString(w, ">"); err != nil {
		return err
	}
	if inlineText(node) {
		if err := escapeTo(w, node.Children[0].Text); err != nil {
			return err
		}
		return writeString(w, "</"+name+">")
	}
	es.depth++
	for _, c := range node.Children {
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(c, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, "</"+name+">")
}

// inlineText reports whether node's content is a single text child, which is
// kept on one line (<domain>127.0.0.1</domain>).
func inlineText(node *ir.Node) bool {
	return len(node.Children) == 1 && node.Children[0].Kind == ir.TextKind
}

func (es *EncState) renderName(n ir.Name) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == "xmlns":
		return "xmlns:" + n.Local
	}
	// resolveNamespaces guarantees a mapping for every URI in the tree;
	// an empty prefix means the default namespace.
	if prefix := es.namespaces[n.Space]; prefix != "" {
		return prefix + ":" + n.Local
	}
	return n.Local
}

// resolveNamespaces builds the effective URI-to-prefix mapping: explicit
// configuration first, then the declarations already present in the tree,
// then synthesized ns0, ns1, ... prefixes for any URI still unmapped.
// Synthesized prefixes are declared on the root element so the output stays
// well formed and reparses to the same tree.
func (es *EncState) resolveNamespaces(root *ir.Node) {
	ns := make(map[string]string, len(es.namespaces))
	taken := map[string]bool{}
	for uri, prefix := range es.namespaces {
		ns[uri] = prefix
		taken[prefix] = true
	}
	collectDeclarations(root, ns, taken)

	n := 0
	nextPrefix := func() string {
		for {
			p := fmt.Sprintf("ns%d", n)
			n++
			if !taken[p] {
				taken[p] = true
				return p
			}
		}
	}
	var synth func(*ir.Node)
	synth = func(y *ir.Node) {
		if y.Kind != ir.ElementKind {
			return
		}
		uris := make([]string, 0, len(y.Attrs)+1)
		if y.Name.Space != "" && y.Name.Space != "xmlns" {
			uris = append(uris, y.Name.Space)
		}
		for _, a := range y.Attrs {
			if a.Name.Space != "" && a.Name.Space != "xmlns" {
				uris = append(uris, a.Name.Space)
			}
		}
		for _, uri := range uris {
			if _, ok := ns[uri]; ok {
				continue
			}
			prefix := nextPrefix()
			ns[uri] = prefix
			es.synth = append(es.synth, ir.Attr{
				Name:  ir.Name{Space: "xmlns", Local: prefix},
				Value: uri,
			})
		}
		for _, c := range y.Children {
			synth(c)
		}
	}
	synth(root)

	es.namespaces = ns
	es.root = root
}

// collectDeclarations records xmlns:prefix="uri" (and default xmlns="uri")
// attributes anywhere in the tree. Explicitly configured mappings win.
func collectDeclarations(y *ir.Node, ns map[string]string, taken map[string]bool) {
	if y.Kind != ir.ElementKind {
		return
	}
	for _, a := range y.Attrs {
		switch {
		case a.Name.Space == "xmlns":
			if _, ok := ns[a.Value]; !ok {
				ns[a.Value] = a.Name.Local
			}
			taken[a.Name.Local] = true
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			if _, ok := ns[a.Value]; !ok {
				ns[a.Value] = ""
			}
		}
	}
	for _, c := range y.Children {
		collectDeclarations(c, ns, taken)
	}
}

func writeNL(w io.Writer, es *EncState) error {
	return writeString(w, "\n"+strings.Repeat(es.indent, es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func escapeTo(w io.Writer, s string) error {
	return xml.EscapeText(w, []byte(s))
}
