package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Update  bool
	Patch   bool
	Query   bool
	Resolve bool
}

var d *debug

func init() {
	d = &debug{}
	d.Update = boolEnv("KAYAKU_DEBUG_UPDATE")
	d.Patch = boolEnv("KAYAKU_DEBUG_PATCH")
	d.Query = boolEnv("KAYAKU_DEBUG_QUERY")
	d.Resolve = boolEnv("KAYAKU_DEBUG_RESOLVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Update() bool {
	return d.Update
}
func Patch() bool {
	return d.Patch
}
func Query() bool {
	return d.Query
}
func Resolve() bool {
	return d.Resolve
}
