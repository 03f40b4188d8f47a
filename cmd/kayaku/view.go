package main

import (
	"fmt"

	"github.com/GraiaProject/kayaku/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		node, _, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		opts := append(cfg.encOpts(cc.Out), encode.EncodeEndline(true))
		if err := encode.Encode(node, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
