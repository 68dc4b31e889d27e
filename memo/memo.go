package memo

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Cache is a generic function-result store keyed by call signature.
// Implementations must be safe for concurrent use; the stock stores are.
type Cache interface {
	// Get returns the value remembered under key, if any.
	Get(key string) (any, bool)

	// Put remembers value under key, overwriting any previous entry.
	Put(key string, value any)
}

// Nop returns a Cache that remembers nothing: every computation runs fresh.
// It is the default backing store of the pipeline.
func Nop() Cache { return nopCache{} }

type nopCache struct{}

func (nopCache) Get(string) (any, bool) { return nil, false }
func (nopCache) Put(string, any)        {}

// InMemory returns a mutex-guarded, map-backed Cache. Entries live for the
// lifetime of the cache; there is no eviction.
func InMemory() Cache { return &memCache{entries: make(map[string]any)} }

type memCache struct {
	mu      sync.Mutex
	entries map[string]any
}

func (c *memCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]

	return v, ok
}

func (c *memCache) Put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Do returns the value remembered under key, or runs fn and remembers its
// result. Errors are returned to the caller and never cached. A nil cache
// behaves like Nop.
//
// Cached values are returned as-is: callers that mutate results must copy
// them first, or the cache entry would be corrupted.
func Do[T any](c Cache, key string, fn func() (T, error)) (T, error) {
	if c == nil {
		c = Nop()
	}
	if v, ok := c.Get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := fn()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Put(key, t)

	return t, nil
}

// Key folds a call's full argument list into a stable signature string
// (FNV-1a over the binary representation of each part).
//
// Supported parts: integers, floats, bools, strings, []float64, []bool and
// gonum mat.Matrix values (hashed element-wise together with their
// dimensions). Anything else is folded in via its fmt representation, which
// is stable for value types.
func Key(parts ...any) string {
	h := fnv.New64a()
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeF64 := func(v float64) { writeU64(math.Float64bits(v)) }

	for _, p := range parts {
		switch v := p.(type) {
		case nil:
			writeU64(0)
		case int:
			writeU64(uint64(int64(v)))
		case int64:
			writeU64(uint64(v))
		case uint64:
			writeU64(v)
		case float64:
			writeF64(v)
		case bool:
			if v {
				writeU64(1)
			} else {
				writeU64(0)
			}
		case string:
			writeU64(uint64(len(v)))
			h.Write([]byte(v))
		case []float64:
			writeU64(uint64(len(v)))
			for _, x := range v {
				writeF64(x)
			}
		case []bool:
			writeU64(uint64(len(v)))
			for _, b := range v {
				if b {
					writeU64(1)
				} else {
					writeU64(0)
				}
			}
		case mat.Matrix:
			r, c := v.Dims()
			writeU64(uint64(r))
			writeU64(uint64(c))
			for i := 0; i < r; i++ {
				for j := 0; j < c; j++ {
					writeF64(v.At(i, j))
				}
			}
		default:
			fmt.Fprintf(h, "%T%v", v, v)
		}
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
