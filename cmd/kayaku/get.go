package main

import (
	"fmt"

	"github.com/GraiaProject/kayaku/encode"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	path := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		node, _, err := readDoc(cfg.MainConfig, cc, arg)
		if err != nil {
			return err
		}
		res, err := node.GetKPath(path)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", path, arg, err)
		}
		if res == nil {
			// absent path: print nothing, don't yell either
			continue
		}
		res = res.Clone()
		res.ClearStyle()
		opts := append(cfg.encOpts(), encode.EncodeEndline(true))
		if err := encode.Encode(res, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
	}
	return nil
}
