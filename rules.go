package manifest

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"

	"github.com/portable-homeserver/manifest-patch/debug"
)

// Rules are additional declarative patch steps loaded from a YAML file. They
// run after the built-in pipeline, in file order.
type Rules struct {
	Permissions []PermissionRule `yaml:"permissions"`
	Application ApplicationRule  `yaml:"application"`
}

type PermissionRule struct {
	Name string `yaml:"name"`
	// When is an optional expression over manifest facts; a false result
	// skips the rule.
	When string `yaml:"when,omitempty"`
}

type ApplicationRule struct {
	Set    map[string]string `yaml:"set,omitempty"`
	Remove []string          `yaml:"remove,omitempty"`
}

func LoadRules(path string) (*Rules, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules %s: %w", path, err)
	}
	r := &Rules{}
	if err := yaml.Unmarshal(d, r); err != nil {
		return nil, fmt.Errorf("parsing rules %s: %w", path, err)
	}
	for i, p := range r.Permissions {
		if p.Name == "" {
			return nil, fmt.Errorf("parsing rules %s: permission rule %d has no name", path, i)
		}
	}
	return r, nil
}

// Steps orders the rules: permission rules in file order, then application
// set rules by attribute name (YAML maps carry no order, so sorting keeps
// runs deterministic), then removals in file order.
func (r *Rules) Steps() []Step {
	var steps []Step
	for _, p := range r.Permissions {
		steps = append(steps, conditional(p.When, EnsurePermission(p.Name)))
	}
	for _, k := range slices.Sorted(maps.Keys(r.Application.Set)) {
		steps = append(steps, EnsureApplicationAttr(k, r.Application.Set[k]))
	}
	for _, k := range r.Application.Remove {
		steps = append(steps, RemoveApplicationAttr(k))
	}
	return steps
}

// conditional gates step on an expression over manifest facts. An empty
// condition always applies.
func conditional(cond string, step Step) Step {
	if cond == "" {
		return step
	}
	return StepFunc(step.Name()+" when "+cond, func(doc *Document) (bool, error) {
		env := facts(doc)
		out, err := expr.Eval(cond, env)
		if err != nil {
			return false, fmt.Errorf("evaluating %q: %w", cond, err)
		}
		ok, isBool := out.(bool)
		if !isBool {
			return false, fmt.Errorf("condition %q evaluated to %T, not bool", cond, out)
		}
		if debug.Rules() {
			debug.Logf("condition %q = %v\n", cond, ok)
		}
		if !ok {
			return false, nil
		}
		return step.Apply(doc)
	})
}

// facts gathers the evaluation environment for rule conditions: the package
// name, declared permissions, the application element's android attributes
// keyed by local name, and uses-sdk's minSdkVersion as sdk (0 if absent).
func facts(doc *Document) map[string]any {
	perms := []string{}
	name := AndroidName("name")
	for _, p := range doc.Root.FindAll("uses-permission") {
		if v, ok := p.Attr(name); ok {
			perms = append(perms, v)
		}
	}
	attrs := map[string]string{}
	if app := doc.Root.Find("application"); app != nil {
		for _, a := range app.Attrs {
			if a.Name.Space == AndroidNS {
				attrs[a.Name.Local] = a.Value
			}
		}
	}
	// numeric when the manifest declares a number; a codename like "S" is
	// kept as the raw string so conditions comparing against ints fail
	// loudly instead of silently seeing 0
	var sdk any = 0
	if us := doc.Root.Find("uses-sdk"); us != nil {
		if v, ok := us.Attr(AndroidName("minSdkVersion")); ok {
			if n, err := strconv.Atoi(v); err == nil {
				sdk = n
			} else {
				sdk = v
			}
		}
	}
	return map[string]any{
		"package":     doc.Package(),
		"permissions": perms,
		"attrs":       attrs,
		"sdk":         sdk,
	}
}
