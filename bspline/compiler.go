// SPDX-License-Identifier: MIT

package bspline

import (
	"fmt"
	"strings"
	"time"

	"github.com/katalvlaran/bspline/algebra"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cast"
)

// Compiler caches compiled shift-first-knots functions per basis shape.
// Compiling a symbolic transform costs far more than calling it, and a
// receding-horizon loop asks for the same shape every cycle.
// A Compiler is safe for concurrent use.
type Compiler struct {
	ttl      time.Duration
	compiled *cache.Cache
}

// NewCompiler returns a cache whose entries expire ttl after their last
// compilation; ttl <= 0 keeps them until Flush.
func NewCompiler(ttl time.Duration) *Compiler {
	if ttl <= 0 {
		return &Compiler{ttl: cache.NoExpiration, compiled: cache.New(cache.NoExpiration, 0)}
	}

	return &Compiler{ttl: ttl, compiled: cache.New(ttl, 2*ttl)}
}

// Len returns the number of cached functions, expired ones included until
// the next cleanup.
func (c *Compiler) Len() int { return c.compiled.ItemCount() }

// Flush drops every cached function.
func (c *Compiler) Flush() { c.compiled.Flush() }

func compileKey(kind algebra.Kind, b *Basis, inverse bool) string {
	var sb strings.Builder
	sb.WriteString(kind.String())
	sb.WriteByte(':')
	sb.WriteString(cast.ToString(b.degree))
	sb.WriteByte(':')
	sb.WriteString(cast.ToString(inverse))
	for _, k := range b.knots {
		sb.WriteByte(':')
		sb.WriteString(cast.ToString(k))
	}

	return sb.String()
}

func compiledShift[S any](c *Compiler, alg algebra.Algebra[S], b *Basis, inverse bool) (algebra.Callable[S], error) {
	key := compileKey(alg.Kind(), b, inverse)
	if v, ok := c.compiled.Get(key); ok {
		if fn, ok := v.(algebra.Callable[S]); ok {
			return fn, nil
		}
	}
	fn, err := compileShift(alg, b, inverse)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", key, err)
	}
	c.compiled.Set(key, fn, c.ttl)
	Logger().Debug("compiled shift", "key", key, "cached", c.compiled.ItemCount())

	return fn, nil
}
