package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/portable-homeserver/manifest-patch/parse"
)

func TestLoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	_, err := Load(path)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error does not name the path: %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	if err := os.WriteFile(path, []byte("<manifest><application></manifest>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, parse.ErrParse) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error does not name the path: %v", err)
	}
}

func TestSaveTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "AndroidManifest.xml")
	if err := os.WriteFile(path, []byte(manifestOpen+`<application/></manifest>`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(d), "/manifest>\n") || strings.HasSuffix(string(d), "\n\n") {
		t.Errorf("bad tail: %q", d)
	}
	if !strings.HasPrefix(string(d), `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Errorf("missing declaration: %q", d)
	}
}

func TestEnsureTrailingNewlineEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureTrailingNewline(path); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 0 {
		t.Errorf("empty file grew: %q", d)
	}
}

func TestEnsureTrailingNewlineAlreadyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ensureTrailingNewline(path); err != nil {
		t.Fatal(err)
	}
	d, _ := os.ReadFile(path)
	if string(d) != "x\n" {
		t.Errorf("got %q", d)
	}
}

func TestPackage(t *testing.T) {
	doc := docOf(t, manifestOpen+`<application/></manifest>`)
	if got := doc.Package(); got != "com.example" {
		t.Errorf("got %q", got)
	}
}
