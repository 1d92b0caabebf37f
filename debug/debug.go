package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Patch bool
	Rules bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("MPATCH_DEBUG_PARSE")
	d.Patch = boolEnv("MPATCH_DEBUG_PATCH")
	d.Rules = boolEnv("MPATCH_DEBUG_RULES")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Patch() bool {
	return d.Patch
}
func Rules() bool {
	return d.Rules
}
