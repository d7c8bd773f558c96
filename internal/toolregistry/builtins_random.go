package toolregistry

import (
	"math/rand"
	"sync"

	"github.com/openSVM/solisp-sub002/internal/errors"
	"github.com/openSVM/solisp-sub002/internal/value"
)

// randSource is shared process-wide, guarded by its own lock since
// math/rand.Rand is not safe for concurrent use and `random` may be
// called from any ConcurrencyRuntime thread. Grounded on the teacher's
// Interpreter.rand field (internal/interp/interpreter.go), promoted here
// from a per-interpreter field to a package-level one guarded explicitly,
// since this core's evaluators are spawned per-thread rather than shared.
var (
	randMu  sync.Mutex
	randGen = rand.New(rand.NewSource(1))
)

// Reseed reseeds the shared generator, backing the `randomize` builtin.
func Reseed(seed int64) {
	randMu.Lock()
	defer randMu.Unlock()
	randGen = rand.New(rand.NewSource(seed))
}

func mathRandomize(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, errors.Arity("randomize", 1, len(args))
	}
	seed, ok := value.AsInt(args[0])
	if !ok {
		return nil, errors.TypeMismatch("int", value.TypeName(args[0])).WithTool("randomize")
	}
	Reseed(seed)
	return value.Nil, nil
}

func mathRandom(args []value.Value) (value.Value, error) {
	randMu.Lock()
	defer randMu.Unlock()
	if len(args) == 0 {
		return value.Float(randGen.Float64()), nil
	}
	if len(args) == 1 {
		n, ok := value.AsInt(args[0])
		if !ok || n <= 0 {
			return nil, errors.InvalidArguments("random", "argument must be a positive integer")
		}
		return value.Int(randGen.Int63n(n)), nil
	}
	return nil, errors.Arity("random", 0, len(args))
}
