package main

import (
	"fmt"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := convertArg(cfg, cc, arg); err != nil {
			return err
		}
	}
	return nil
}

func convertArg(cfg *ConvertConfig, cc *cli.Context, arg string) error {
	node, _, err := readDoc(cfg.MainConfig, cc, arg)
	if err != nil {
		return err
	}
	if cfg.To == "yaml" {
		d, err := yaml.Marshal(node.ToGo())
		if err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
		_, err = cc.Out.Write(d)
		return err
	}
	f := cfg.outFormat()
	if cfg.To != "" {
		f, err = format.ParseFormat(cfg.To)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
	}
	downgrade(node, f)
	opts := []encode.EncodeOption{encode.EncodeFormat(f), encode.EncodeEndline(true)}
	if !f.Comments() {
		opts = append(opts, encode.EncodeComments(false))
	}
	if err := encode.Encode(node, cc.Out, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", arg, err)
	}
	return nil
}

// downgrade rewrites style the target dialect cannot carry: identifier
// keys and single quoted strings turn double quoted, trailing commas
// drop under strict json, hash comments turn line comments.  Values
// stay as they are, so hex numbers or NaN under a json target still
// fail the checked encode.
func downgrade(n *ir.Node, f format.Format) {
	if f.IsJSON5() {
		return
	}
	if !f.TrailingCommas() {
		n.TrailingComma = false
	}
	rewriteHash(n.Before)
	rewriteHash(n.After)
	rewriteHash(n.Tail)
	switch n.Type {
	case ir.IdentifierType:
		n.Type = ir.StringType
		n.Quote = '"'
	case ir.StringType:
		if n.Quote == '\'' {
			n.Quote = '"'
			n.Origin = ""
			n.Linebreaks = nil
		}
	}
	for _, k := range n.Fields {
		downgrade(k, f)
	}
	for _, v := range n.Values {
		downgrade(v, f)
	}
}

func rewriteHash(run []ir.WSC) {
	for i := range run {
		if run[i].Kind == ir.HashCommentKind {
			run[i].Kind = ir.LineCommentKind
		}
	}
}
