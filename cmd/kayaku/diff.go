package main

import (
	"fmt"
	"io"

	"github.com/GraiaProject/kayaku/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two documents", cli.ErrUsage)
	}
	from, fromSrc, err := readDoc(cfg.MainConfig, cc, args[0])
	if err != nil {
		return err
	}
	to, toSrc, err := readDoc(cfg.MainConfig, cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Text {
		d := libdiff.Texts(string(fromSrc), string(toSrc))
		if d == "" {
			return nil
		}
		if _, err := io.WriteString(cc.Out, d); err != nil {
			return err
		}
		return cli.ExitCodeErr(1)
	}
	edits := libdiff.Diff(from, to)
	if len(edits) == 0 {
		return nil
	}
	for _, e := range edits {
		fmt.Fprintln(cc.Out, e.String())
	}
	return cli.ExitCodeErr(1)
}
