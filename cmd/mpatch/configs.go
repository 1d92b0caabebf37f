package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	manifest "github.com/portable-homeserver/manifest-patch"
)

type MainConfig struct {
	Cleartext bool `cli:"name=cleartext desc='set android:usesCleartextTraffic instead of writing a network security config'"`
	DryRun    bool `cli:"name=n aliases=dry-run desc='print the patched manifest without writing anything'"`
	ShowDiff  bool `cli:"name=diff desc='print a line diff of the rewrite'"`
	Color     bool `cli:"name=color desc='force colored diff output'"`

	Rules *manifest.Rules

	Main *cli.Command
}

func (cfg *MainConfig) rulesOpt(cc *cli.Context, a string) (any, error) {
	r, err := manifest.LoadRules(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Rules = r
	return nil, nil
}

func (cfg *MainConfig) steps() []manifest.Step {
	var steps []manifest.Step
	if cfg.Cleartext {
		steps = manifest.CleartextSteps()
	} else {
		steps = manifest.DefaultSteps()
	}
	if cfg.Rules != nil {
		steps = append(steps, cfg.Rules.Steps()...)
	}
	return steps
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
