package token

import (
	"github.com/GraiaProject/kayaku/format"
)

type tokenOpts struct {
	format format.Format
}
type TokenOpt func(*tokenOpts)

func TokenJSON5() TokenOpt {
	return func(o *tokenOpts) { o.format = format.JSON5Format }
}
func TokenJSONC() TokenOpt {
	return func(o *tokenOpts) { o.format = format.JSONCFormat }
}
func TokenJSON() TokenOpt {
	return func(o *tokenOpts) { o.format = format.JSONFormat }
}
func TokenFormat(f format.Format) TokenOpt {
	return func(o *tokenOpts) { o.format = f }
}
