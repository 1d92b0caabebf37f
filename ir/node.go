package ir

import "fmt"

type Kind int

const (
	ElementKind Kind = iota
	TextKind
	CommentKind
	ProcInstKind
)

func (k Kind) String() string {
	switch k {
	case ElementKind:
		return "element"
	case TextKind:
		return "text"
	case CommentKind:
		return "comment"
	case ProcInstKind:
		return "procinst"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Name identifies an element or attribute. Space is the namespace URI, ""
// for unqualified names and "xmlns" for namespace declaration attributes.
type Name struct {
	Space, Local string
}

func (n Name) String() string {
	if n.Space == "" {
		return n.Local
	}
	return "{" + n.Space + "}" + n.Local
}

type Attr struct {
	Name  Name
	Value string
}

type Node struct {
	Kind        Kind
	Parent      *Node
	ParentIndex int

	// Element fields.
	Name     Name
	Attrs    []Attr
	Children []*Node

	// Content of text, comment and procinst nodes.
	Text string
}

func NewElement(name Name) *Node {
	return &Node{Kind: ElementKind, Name: name}
}

func NewText(s string) *Node {
	return &Node{Kind: TextKind, Text: s}
}

func NewComment(s string) *Node {
	return &Node{Kind: CommentKind, Text: s}
}

func (y *Node) WithAttr(name Name, value string) *Node {
	y.SetAttr(name, value)
	return y
}

// Find returns the first direct child element with the given local name, or
// nil.
func (y *Node) Find(local string) *Node {
	for _, c := range y.Children {
		if c.Kind == ElementKind && c.Name.Local == local {
			return c
		}
	}
	return nil
}

// FindAll returns the direct child elements with the given local name in
// document order.
func (y *Node) FindAll(local string) []*Node {
	var res []*Node
	for _, c := range y.Children {
		if c.Kind == ElementKind && c.Name.Local == local {
			res = append(res, c)
		}
	}
	return res
}

func (y *Node) Attr(name Name) (string, bool) {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			return y.Attrs[i].Value, true
		}
	}
	return "", false
}

// SetAttr sets the attribute to value, appending it if absent, and reports
// whether the node changed. Setting an attribute to its current value is a
// no-op.
func (y *Node) SetAttr(name Name, value string) bool {
	for i := range y.Attrs {
		if y.Attrs[i].Name != name {
			continue
		}
		if y.Attrs[i].Value == value {
			return false
		}
		y.Attrs[i].Value = value
		return true
	}
	y.Attrs = append(y.Attrs, Attr{Name: name, Value: value})
	return true
}

// RemoveAttr deletes the attribute and reports whether it was present.
func (y *Node) RemoveAttr(name Name) bool {
	for i := range y.Attrs {
		if y.Attrs[i].Name == name {
			y.Attrs = append(y.Attrs[:i], y.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// InsertChild inserts c at index i among y's children, shifting later
// children right. i == len(Children) appends.
func (y *Node) InsertChild(i int, c *Node) {
	y.Children = append(y.Children, nil)
	copy(y.Children[i+1:], y.Children[i:])
	y.Children[i] = c
	c.Parent = y
	y.reindex(i)
}

func (y *Node) AppendChild(c *Node) {
	c.Parent = y
	c.ParentIndex = len(y.Children)
	y.Children = append(y.Children, c)
}

// RemoveChild removes the child at index i.
func (y *Node) RemoveChild(i int) *Node {
	c := y.Children[i]
	y.Children = append(y.Children[:i], y.Children[i+1:]...)
	c.Parent = nil
	c.ParentIndex = 0
	y.reindex(i)
	return c
}

func (y *Node) reindex(from int) {
	for i := from; i < len(y.Children); i++ {
		y.Children[i].ParentIndex = i
	}
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Kind = y.Kind
	dst.Name = y.Name
	dst.Text = y.Text
	dst.Attrs = make([]Attr, len(y.Attrs))
	copy(dst.Attrs, y.Attrs)
	dst.Children = make([]*Node, len(y.Children))
	for i, c := range y.Children {
		dstC := &Node{}
		c.CloneTo(dstC)
		dstC.Parent = dst
		dstC.ParentIndex = i
		dst.Children[i] = dstC
	}
	return dst
}

// Equal reports deep equality of kind, name, text, attributes (including
// order) and children. Parent backlinks are ignored.
func (y *Node) Equal(o *Node) bool {
	if y == nil || o == nil {
		return y == o
	}
	if y.Kind != o.Kind || y.Name != o.Name || y.Text != o.Text {
		return false
	}
	if len(y.Attrs) != len(o.Attrs) || len(y.Children) != len(o.Children) {
		return false
	}
	for i := range y.Attrs {
		if y.Attrs[i] != o.Attrs[i] {
			return false
		}
	}
	for i := range y.Children {
		if !y.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
