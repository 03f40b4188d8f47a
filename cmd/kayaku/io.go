package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/parse"

	"github.com/scott-cotton/cli"
)

// readDoc reads and parses one argument, "-" meaning stdin.  The raw
// bytes come back alongside the tree for diffing and write-back.
func readDoc(cfg *MainConfig, cc *cli.Context, arg string) (*ir.Node, []byte, error) {
	d, err := readArg(cc, arg)
	if err != nil {
		return nil, nil, err
	}
	node, err := parse.Parse(d, cfg.parseOpts()...)
	if err != nil {
		return nil, nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	return node, d, nil
}

func readArg(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "-" {
		return io.ReadAll(cc.In)
	}
	d, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	return d, nil
}

// writeBack replaces path through a sibling temp file and rename, so
// an interrupted write never leaves a half document behind.
func writeBack(path string, d []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(d); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
