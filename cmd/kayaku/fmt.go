package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/libdiff"
	"github.com/GraiaProject/kayaku/pretty"

	"github.com/scott-cotton/cli"
)

func fmtRun(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := fmtArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func fmtArg(cfg *FmtConfig, cc *cli.Context, arg string) error {
	node, src, err := readDoc(cfg.MainConfig, cc, arg)
	if err != nil {
		return err
	}
	p := &pretty.Prettifier{
		Indent:       cfg.Indent,
		TrailComma:   cfg.TrailComma,
		UnfoldSingle: cfg.UnfoldSingle,
	}
	if cfg.BareKeys {
		p.KeyQuote = pretty.QuoteBare
	}
	var buf bytes.Buffer
	opts := append(cfg.encOpts(), encode.EncodeEndline(true))
	if err := encode.Encode(p.Prettify(node), &buf, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", arg, err)
	}
	switch {
	case cfg.Diff:
		d := libdiff.Texts(string(src), buf.String())
		if d == "" {
			return nil
		}
		fmt.Fprintf(cc.Out, "--- %s\n", arg)
		_, err := io.WriteString(cc.Out, d)
		return err
	case cfg.Write && arg != "-":
		if bytes.Equal(buf.Bytes(), src) {
			return nil
		}
		return writeBack(arg, buf.Bytes())
	default:
		_, err := cc.Out.Write(buf.Bytes())
		return err
	}
}
