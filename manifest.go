package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/portable-homeserver/manifest-patch/encode"
	"github.com/portable-homeserver/manifest-patch/ir"
	"github.com/portable-homeserver/manifest-patch/parse"
)

var (
	ErrNotFound      = errors.New("manifest not found")
	ErrNoApplication = errors.New("manifest does not contain an <application> element to patch")
)

// Document is a manifest loaded from disk. The tree is mutated in memory and
// only written back, once, by Save.
type Document struct {
	Path string
	Root *ir.Node

	// DryRun suppresses side effects outside the tree, such as writing the
	// network security config resource.
	DryRun bool
}

func Load(path string) (*Document, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	root, err := parse.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &Document{Path: path, Root: root}, nil
}

func (doc *Document) Dir() string {
	return filepath.Dir(doc.Path)
}

// Application returns the sole <application> element.
func (doc *Document) Application() (*ir.Node, error) {
	app := doc.Root.Find("application")
	if app == nil {
		return nil, ErrNoApplication
	}
	return app, nil
}

// Package returns the manifest's package attribute, if any.
func (doc *Document) Package() string {
	v, _ := doc.Root.Attr(ir.Name{Local: "package"})
	return v
}

// Encode serializes the tree the way Save writes it, without the trailing
// newline.
func (doc *Document) Encode() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	err := encode.Encode(doc.Root, buf,
		encode.Declaration(true),
		encode.Namespaces(Namespaces()))
	if err != nil {
		return nil, fmt.Errorf("encoding manifest %s: %w", doc.Path, err)
	}
	return buf.Bytes(), nil
}

// Save rewrites the manifest in place and guarantees the file ends with a
// single newline, whether or not the encoder emitted one.
func (doc *Document) Save() error {
	d, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(doc.Path, d, 0o644); err != nil {
		return fmt.Errorf("writing patched manifest to %s: %w", doc.Path, err)
	}
	if err := ensureTrailingNewline(doc.Path); err != nil {
		return fmt.Errorf("writing patched manifest to %s: %w", doc.Path, err)
	}
	return nil
}

func ensureTrailingNewline(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if end == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, end-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte{'\n'})
	return err
}
