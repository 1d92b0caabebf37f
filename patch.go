package manifest

import (
	"fmt"

	"github.com/portable-homeserver/manifest-patch/debug"
	"github.com/portable-homeserver/manifest-patch/ir"
)

// Step is one idempotent mutation of a manifest document. Apply reports
// whether it changed anything. The patch pipeline is an ordered []Step so
// steps can be added, removed or reordered without re-deriving positional
// logic.
type Step interface {
	Name() string
	Apply(doc *Document) (bool, error)
}

type stepFunc struct {
	name string
	fn   func(*Document) (bool, error)
}

func (s stepFunc) Name() string { return s.name }

func (s stepFunc) Apply(doc *Document) (bool, error) { return s.fn(doc) }

func StepFunc(name string, fn func(*Document) (bool, error)) Step {
	return stepFunc{name: name, fn: fn}
}

// Apply runs steps in order and reports whether any of them changed the
// document. Any step error aborts the run; nothing is written to disk here,
// so a failed run leaves the on-disk manifest untouched.
func Apply(doc *Document, steps []Step) (bool, error) {
	changed := false
	for _, step := range steps {
		ch, err := step.Apply(doc)
		if err != nil {
			return changed, fmt.Errorf("%s: %w", step.Name(), err)
		}
		if debug.Patch() {
			debug.Logf("step %q changed=%v\n", step.Name(), ch)
		}
		changed = changed || ch
	}
	return changed, nil
}

// DefaultSteps is the standard pipeline: both permissions, then a network
// security config referenced from the application element in place of any
// usesCleartextTraffic flag left by older runs.
func DefaultSteps() []Step {
	return []Step{
		EnsurePermission(PermissionInternet),
		EnsurePermission(PermissionAccessNetworkState),
		RemoveApplicationAttr(AttrUsesCleartextTraffic),
		EnsureApplicationAttr(AttrNetworkSecurityConfig, NetworkSecurityConfigRef),
		WriteNetworkSecurityConfig(),
	}
}

// CleartextSteps sets android:usesCleartextTraffic directly instead of
// writing a network security config.
func CleartextSteps() []Step {
	return []Step{
		EnsurePermission(PermissionInternet),
		EnsurePermission(PermissionAccessNetworkState),
		EnsureApplicationAttr(AttrUsesCleartextTraffic, "true"),
	}
}

// EnsurePermission adds a uses-permission element if no direct child already
// declares permission. New elements are inserted just before <application>
// so permissions stay grouped; the insertion point is recomputed from the
// then-current child list on every call.
func EnsurePermission(permission string) Step {
	return StepFunc("ensure uses-permission "+permission, func(doc *Document) (bool, error) {
		name := AndroidName("name")
		for _, node := range doc.Root.FindAll("uses-permission") {
			if v, ok := node.Attr(name); ok && v == permission {
				return false, nil
			}
		}
		perm := ir.NewElement(ir.Name{Local: "uses-permission"}).
			WithAttr(name, permission)
		at := len(doc.Root.Children)
		for i, c := range doc.Root.Children {
			if c.Kind == ir.ElementKind && c.Name.Local == "application" {
				at = i
				break
			}
		}
		doc.Root.InsertChild(at, perm)
		return true, nil
	})
}

// EnsureApplicationAttr sets android:<local> on the application element when
// its current value differs.
func EnsureApplicationAttr(local, value string) Step {
	return StepFunc("set application android:"+local, func(doc *Document) (bool, error) {
		app, err := doc.Application()
		if err != nil {
			return false, err
		}
		return app.SetAttr(AndroidName(local), value), nil
	})
}

// RemoveApplicationAttr deletes android:<local> from the application element
// if present.
func RemoveApplicationAttr(local string) Step {
	return StepFunc("remove application android:"+local, func(doc *Document) (bool, error) {
		app, err := doc.Application()
		if err != nil {
			return false, err
		}
		return app.RemoveAttr(AndroidName(local)), nil
	})
}
