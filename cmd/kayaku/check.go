package main

import (
	"fmt"

	"github.com/GraiaProject/kayaku/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := 0
	for _, arg := range args {
		d, err := readArg(cc, arg)
		if err != nil {
			return err
		}
		if _, err := parse.Parse(d, cfg.parseOpts()...); err != nil {
			theLog.Error("check failed", "file", arg, "err", err)
			failed++
			continue
		}
		if !cfg.Quiet {
			fmt.Fprintf(cc.Out, "%s: ok\n", arg)
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
