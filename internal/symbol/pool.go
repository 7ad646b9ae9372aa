// Package symbol hands out vertex labels from a fixed alphabet.
package symbol

import (
	"errors"
	"fmt"

	"graphed/internal/topology"
)

var (
	ErrExhausted     = errors.New("symbol pool exhausted")
	ErrInUse         = errors.New("symbol already in use")
	ErrUnknownSymbol = errors.New("symbol not in pool")
)

// Alphabet is the default set of labels.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Pool is a stack of free symbols. The next symbol handed out is the one
// most recently returned, or the first unused letter of the alphabet.
type Pool struct {
	free  []topology.Symbol
	known map[topology.Symbol]bool
	used  map[topology.Symbol]bool
}

// NewPool returns a pool over the runes of alphabet, handing them out in
// order.
func NewPool(alphabet string) *Pool {
	p := &Pool{
		known: make(map[topology.Symbol]bool),
		used:  make(map[topology.Symbol]bool),
	}
	runes := []rune(alphabet)
	for i := len(runes) - 1; i >= 0; i-- {
		sym := topology.Symbol(runes[i])
		if p.known[sym] {
			continue
		}
		p.known[sym] = true
		p.free = append(p.free, sym)
	}
	return p
}

// Acquire takes want out of the pool, or the next free symbol when want is
// empty.
func (p *Pool) Acquire(want topology.Symbol) (topology.Symbol, error) {
	if want == "" {
		if len(p.free) == 0 {
			return "", ErrExhausted
		}
		last := len(p.free) - 1
		sym := p.free[last]
		p.free = p.free[:last]
		p.used[sym] = true
		return sym, nil
	}
	if !p.known[want] {
		return "", fmt.Errorf("acquire %q: %w", want, ErrUnknownSymbol)
	}
	if p.used[want] {
		return "", fmt.Errorf("acquire %q: %w", want, ErrInUse)
	}
	for i, sym := range p.free {
		if sym == want {
			p.free = append(p.free[:i], p.free[i+1:]...)
			break
		}
	}
	p.used[want] = true
	return want, nil
}

// Release puts sym back on top of the pool. Releasing a free or foreign
// symbol does nothing.
func (p *Pool) Release(sym topology.Symbol) {
	if !p.used[sym] {
		return
	}
	delete(p.used, sym)
	p.free = append(p.free, sym)
}

// Available returns the number of free symbols.
func (p *Pool) Available() int { return len(p.free) }

// InUse reports whether sym has been handed out.
func (p *Pool) InUse(sym topology.Symbol) bool { return p.used[sym] }
