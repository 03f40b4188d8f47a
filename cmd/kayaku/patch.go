package main

import (
	"bytes"
	"fmt"

	"github.com/GraiaProject/kayaku"
	"github.com/GraiaProject/kayaku/encode"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	var patchData []byte
	switch {
	case cfg.File != "":
		patchData, err = readArg(cc, cfg.File)
		if err != nil {
			return err
		}
	case len(args) > 0:
		patchData = []byte(args[0])
		args = args[1:]
	default:
		return fmt.Errorf("%w: patch requires -f <file> or a patch argument", cli.ErrUsage)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := patchArg(cfg, cc, arg, patchData); err != nil {
			return err
		}
	}
	return nil
}

func patchArg(cfg *PatchConfig, cc *cli.Context, arg string, patchData []byte) error {
	node, src, err := readDoc(cfg.MainConfig, cc, arg)
	if err != nil {
		return err
	}
	if cfg.Merge {
		err = kayaku.ApplyMergePatch(node, patchData)
	} else {
		err = kayaku.ApplyPatch(node, patchData)
	}
	if err != nil {
		return fmt.Errorf("error patching %s: %w", arg, err)
	}
	var buf bytes.Buffer
	opts := append(cfg.encOpts(), encode.EncodeEndline(true))
	if err := encode.Encode(node, &buf, opts...); err != nil {
		return fmt.Errorf("error encoding %s: %w", arg, err)
	}
	if cfg.Write && arg != "-" {
		if bytes.Equal(buf.Bytes(), src) {
			return nil
		}
		return writeBack(arg, buf.Bytes())
	}
	_, err = cc.Out.Write(buf.Bytes())
	return err
}
