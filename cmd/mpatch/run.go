package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	manifest "github.com/portable-homeserver/manifest-patch"
)

func run(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: mpatch requires one argument, the path to the generated AndroidManifest.xml", cli.ErrUsage)
	}
	path := args[0]
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}
	doc.DryRun = cfg.DryRun

	var before []byte
	if cfg.ShowDiff {
		if before, err = doc.Encode(); err != nil {
			return err
		}
	}

	if _, err := manifest.Apply(doc, cfg.steps()); err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}

	if cfg.DryRun {
		after, err := doc.Encode()
		if err != nil {
			return err
		}
		if cfg.ShowDiff {
			printDiff(cfg, cc.Out, string(before), string(after))
			return nil
		}
		_, err = cc.Out.Write(append(after, '\n'))
		return err
	}

	if err := doc.Save(); err != nil {
		return err
	}
	if cfg.ShowDiff {
		after, err := doc.Encode()
		if err != nil {
			return err
		}
		printDiff(cfg, cc.Out, string(before), string(after))
	}
	return nil
}

func printDiff(cfg *MainConfig, w io.Writer, before, after string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	if cfg.useColor(w) {
		green.EnableColor()
		red.EnableColor()
	} else {
		green.DisableColor()
		red.DisableColor()
	}
	for _, d := range manifest.Diff(before, after) {
		for line := range strings.Lines(d.Text) {
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffInsert:
				green.Fprintf(w, "+%s\n", line)
			case diffpatch.DiffDelete:
				red.Fprintf(w, "-%s\n", line)
			case diffpatch.DiffEqual:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}
