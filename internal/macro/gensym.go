package macro

import (
	"strconv"
	"sync/atomic"
)

// counter backs gensym, shared process-wide so names never collide across
// unrelated macro expansions (spec.md §4.3 "monotonically increasing
// counter").
var counter int64

// Gensym returns a fresh string "prefix__n", defaulting prefix to "G" to
// match the "G__{n}" format the reference implementation's macro tests
// assert on.
func Gensym(prefix string) string {
	if prefix == "" {
		prefix = "G"
	}
	n := atomic.AddInt64(&counter, 1)
	return prefix + "__" + strconv.FormatInt(n, 10)
}
