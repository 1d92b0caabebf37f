package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "rules",
		Description: "yaml file with extra patch rules",
		Type:        cli.NamedFuncOpt(cfg.rulesOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "mpatch").
		WithSynopsis("mpatch [opts] <AndroidManifest.xml>").
		WithDescription("mpatch patches a generated Android manifest so the app can reach a loopback server over plaintext HTTP.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}
