package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Codec bool
	Query bool
	Parse bool
}

var d *debug

func init() {
	d = &debug{}
	d.Codec = boolEnv("IRMAP_DEBUG_CODEC")
	d.Query = boolEnv("IRMAP_DEBUG_QUERY")
	d.Parse = boolEnv("IRMAP_DEBUG_PARSE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Codec() bool {
	return d.Codec
}
func Query() bool {
	return d.Query
}
func Parse() bool {
	return d.Parse
}
