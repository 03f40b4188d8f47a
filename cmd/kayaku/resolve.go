package main

import (
	"fmt"
	"strings"

	"github.com/GraiaProject/kayaku/domain"

	"github.com/scott-cotton/cli"
)

func resolve(cfg *ResolveConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Resolve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(cfg.Specs) == 0 {
		return fmt.Errorf("%w: resolve requires at least one -m pattern=path", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: resolve requires a domain argument", cli.ErrUsage)
	}
	reg := domain.NewRegistry()
	if err := reg.RegisterAll(cfg.Specs); err != nil {
		return err
	}
	for _, d := range args {
		fp, err := reg.Resolve(d)
		if err != nil {
			return err
		}
		if len(fp.MountDest) == 0 {
			fmt.Fprintf(cc.Out, "%s: %s\n", d, fp.Path)
			continue
		}
		fmt.Fprintf(cc.Out, "%s: %s :: %s\n", d, fp.Path, strings.Join(fp.MountDest, "."))
	}
	return nil
}
