package main

import (
	"fmt"

	"github.com/GraiaProject/kayaku"
	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/ir"

	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression argument", cli.ErrUsage)
	}
	src := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		node, _, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		res, err := kayaku.Query(node, src)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
		out, err := ir.FromGo(res)
		if err != nil {
			return fmt.Errorf("error rendering result: %w", err)
		}
		opts := append(cfg.encOpts(), encode.EncodeEndline(true))
		if err := encode.Encode(out, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
