package main

import (
	"fmt"
	"io"
	"os"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	JSON  bool `cli:"name=json aliases=j desc='do i/o in plain json'"`
	JSONC bool `cli:"name=jsonc desc='do i/o in jsonc'"`
	JSON5 bool `cli:"name=json5 desc='do i/o in json5 (the default)'"`

	InFormat, OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) dialect() format.Format {
	switch {
	case cfg.JSON:
		return format.JSONFormat
	case cfg.JSONC:
		return format.JSONCFormat
	default:
		return format.JSON5Format
	}
}

func (cfg *MainConfig) inFormat() format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return cfg.dialect()
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return cfg.dialect()
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(cfg.inFormat())}
}

func (cfg *MainConfig) encOpts() []encode.EncodeOption {
	return []encode.EncodeOption{encode.EncodeFormat(cfg.outFormat())}
}

type FmtConfig struct {
	*MainConfig

	Indent       int  `cli:"name=indent desc='spaces per indent level'"`
	TrailComma   bool `cli:"name=trail-comma desc='emit trailing commas'"`
	UnfoldSingle bool `cli:"name=unfold-single desc='never inline single member containers'"`
	BareKeys     bool `cli:"name=bare-keys desc='prefer identifier keys'"`
	Diff         bool `cli:"name=d desc='print diffs instead of the result'"`
	Write        bool `cli:"name=w aliases=write desc='write the result back to the source file'"`

	Fmt *cli.Command
}

type ViewConfig struct {
	*MainConfig

	Color   bool `cli:"name=color desc='force color output'"`
	NoColor bool `cli:"name=no-color desc='disable color output'"`

	View *cli.Command
}

func (cfg *ViewConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := cfg.MainConfig.encOpts()
	switch {
	case cfg.NoColor:
		return res
	case cfg.Color:
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Quiet bool `cli:"name=q aliases=quiet desc='suppress per file ok lines'"`

	Check *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	To string `cli:"name=to desc='target: json, jsonc, json5, yaml'"`

	Convert *cli.Command
}

type ResolveConfig struct {
	*MainConfig
	Specs map[string]string

	Resolve *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type PatchConfig struct {
	*MainConfig

	File  string `cli:"name=f aliases=file desc='read the patch from a file'"`
	Merge bool   `cli:"name=merge desc='treat the patch as an rfc 7386 merge patch'"`
	Write bool   `cli:"name=w aliases=write desc='write the result back to the source file'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Text bool `cli:"name=text desc='line diff of the raw documents'"`

	Diff *cli.Command
}
