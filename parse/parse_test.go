package parse

import (
	"errors"
	"testing"

	"github.com/portable-homeserver/manifest-patch/ir"
)

const androidNS = "http://schemas.android.com/apk/res/android"

type parseTest struct {
	in string
	e  error
}

func TestParseOK(t *testing.T) {
	pts := []parseTest{
		{
			in: `<manifest/>`,
		},
		{
			in: `<manifest></manifest>`,
		},
		{
			in: `<?xml version="1.0" encoding="utf-8"?>
<manifest xmlns:android="http://schemas.android.com/apk/res/android" package="com.example">
    <application android:label="x"/>
</manifest>`,
		},
		{
			in: `<a><!-- c --><b>text</b></a>`,
		},
	}
	for i, pt := range pts {
		if _, err := Parse([]byte(pt.in)); err != nil {
			t.Errorf("test %d: %v", i, err)
		}
	}
}

func TestParseErrors(t *testing.T) {
	pts := []parseTest{
		{in: ``, e: ErrParse},
		{in: `   `, e: ErrParse},
		{in: `<manifest>`, e: ErrParse},
		{in: `<a></b>`, e: ErrParse},
		{in: `<a/><b/>`, e: ErrParse},
		{in: `not xml at all`, e: ErrParse},
	}
	for i, pt := range pts {
		_, err := Parse([]byte(pt.in))
		if err == nil {
			t.Errorf("test %d: no error", i)
			continue
		}
		if !errors.Is(err, pt.e) {
			t.Errorf("test %d: got %v", i, err)
		}
	}
}

func TestParseNamespaces(t *testing.T) {
	in := `<manifest xmlns:android="` + androidNS + `" package="com.example">
  <uses-permission android:name="android.permission.INTERNET"/>
</manifest>`
	root, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	// the declaration survives as an attribute
	if v, ok := root.Attr(ir.Name{Space: "xmlns", Local: "android"}); !ok || v != androidNS {
		t.Errorf("xmlns:android = %q, %v", v, ok)
	}
	if v, ok := root.Attr(ir.Name{Local: "package"}); !ok || v != "com.example" {
		t.Errorf("package = %q, %v", v, ok)
	}
	perm := root.Find("uses-permission")
	if perm == nil {
		t.Fatal("no uses-permission")
	}
	// prefixed attribute names resolve to the namespace URI
	if v, ok := perm.Attr(ir.Name{Space: androidNS, Local: "name"}); !ok || v != "android.permission.INTERNET" {
		t.Errorf("android:name = %q, %v", v, ok)
	}
}

func TestParseDropsSpace(t *testing.T) {
	root, err := Parse([]byte("<a>\n    <b/>\n</a>"))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 || root.Children[0].Name.Local != "b" {
		t.Errorf("children: %v", root.Children)
	}

	root, err = Parse([]byte("<a>\n    <b/>\n</a>"), ParseKeepSpace(true))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 3 {
		t.Errorf("keepSpace children: %d", len(root.Children))
	}
}

func TestParseComments(t *testing.T) {
	in := `<a><!-- note --><b/></a>`
	root, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if root.Children[0].Kind != ir.CommentKind || root.Children[0].Text != " note " {
		t.Errorf("comment: %+v", root.Children[0])
	}
	root, err = Parse([]byte(in), ParseComments(false))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 {
		t.Errorf("comments not dropped: %d children", len(root.Children))
	}
}

func TestParseText(t *testing.T) {
	root, err := Parse([]byte(`<domain includeSubdomains="false">127.0.0.1</domain>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(root.Children) != 1 || root.Children[0].Kind != ir.TextKind || root.Children[0].Text != "127.0.0.1" {
		t.Errorf("text child: %+v", root.Children)
	}
}
