package ir

import "testing"

func elt(local string) *Node {
	return NewElement(Name{Local: local})
}

func TestSetAttrReportsChange(t *testing.T) {
	n := elt("application")
	name := Name{Space: "ns", Local: "debuggable"}
	if !n.SetAttr(name, "true") {
		t.Error("first set did not report change")
	}
	if n.SetAttr(name, "true") {
		t.Error("same-value set reported change")
	}
	if !n.SetAttr(name, "false") {
		t.Error("value change not reported")
	}
	if v, ok := n.Attr(name); !ok || v != "false" {
		t.Errorf("got %q, %v", v, ok)
	}
}

func TestRemoveAttr(t *testing.T) {
	n := elt("application")
	name := Name{Local: "label"}
	if n.RemoveAttr(name) {
		t.Error("removed absent attribute")
	}
	n.SetAttr(name, "app")
	if !n.RemoveAttr(name) {
		t.Error("did not remove present attribute")
	}
	if _, ok := n.Attr(name); ok {
		t.Error("attribute survived removal")
	}
}

func TestInsertChildReindexes(t *testing.T) {
	root := elt("manifest")
	root.AppendChild(elt("uses-sdk"))
	root.AppendChild(elt("application"))
	root.InsertChild(1, elt("uses-permission"))

	locals := []string{"uses-sdk", "uses-permission", "application"}
	for i, want := range locals {
		c := root.Children[i]
		if c.Name.Local != want {
			t.Errorf("child %d: got %s, want %s", i, c.Name.Local, want)
		}
		if c.ParentIndex != i {
			t.Errorf("child %s: ParentIndex %d, want %d", want, c.ParentIndex, i)
		}
		if c.Parent != root {
			t.Errorf("child %s: bad parent", want)
		}
	}
}

func TestRemoveChildReindexes(t *testing.T) {
	root := elt("manifest")
	for _, l := range []string{"a", "b", "c"} {
		root.AppendChild(elt(l))
	}
	root.RemoveChild(1)
	if len(root.Children) != 2 {
		t.Fatalf("got %d children", len(root.Children))
	}
	if root.Children[1].Name.Local != "c" || root.Children[1].ParentIndex != 1 {
		t.Errorf("bad reindex: %v", root.Children[1])
	}
}

func TestCloneEqual(t *testing.T) {
	root := elt("manifest").WithAttr(Name{Local: "package"}, "com.example")
	app := elt("application")
	app.AppendChild(NewComment(" main "))
	root.AppendChild(app)

	cp := root.Clone()
	if !root.Equal(cp) {
		t.Fatal("clone not equal")
	}
	cp.Children[0].SetAttr(Name{Local: "x"}, "1")
	if root.Equal(cp) {
		t.Fatal("mutated clone still equal")
	}
}

func TestFindAll(t *testing.T) {
	root := elt("manifest")
	root.AppendChild(elt("uses-permission"))
	root.AppendChild(NewComment("between"))
	root.AppendChild(elt("uses-permission"))
	root.AppendChild(elt("application"))
	if got := len(root.FindAll("uses-permission")); got != 2 {
		t.Errorf("got %d permissions", got)
	}
	if root.Find("activity") != nil {
		t.Error("found absent element")
	}
}
