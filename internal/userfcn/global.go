package userfcn

import (
	"fmt"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

// GlobalParts is the index addressed collection of global parts owned by the
// host. Slots are nil until a plugin stores its global part.
type GlobalParts struct {
	parts []Global
}

func NewGlobalParts() *GlobalParts {
	return &GlobalParts{}
}

func (p *GlobalParts) Len() int { return len(p.parts) }

// At returns the global part at idx, or nil.
func (p *GlobalParts) At(idx int) Global {
	if idx < 0 || idx >= len(p.parts) {
		return nil
	}
	return p.parts[idx]
}

// Set stores g at idx, growing the collection to idx+1 if needed.
func (p *GlobalParts) Set(idx int, g Global) {
	if idx < 0 {
		return
	}
	if idx >= len(p.parts) {
		grown := make([]Global, idx+1)
		copy(grown, p.parts)
		p.parts = grown
	}
	p.parts[idx] = g
}

// Attach implements SetGlobalPart for plugins with a global part of type T.
// If the slot at idx does not exist yet (or is empty), a new global part is
// built with newFn and stored at idx, unless it is invalid. Otherwise the
// existing one is returned.
func Attach[T Global](parts *GlobalParts, idx int, newFn func() T) (T, error) {
	var zero T
	if parts == nil || idx < 0 {
		return zero, &domain.OpError{
			Op:   "userfcn.attach",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: no global part slot (idx=%d)", domain.ErrInvalidConfig, idx),
		}
	}

	if parts.Len() <= idx || parts.At(idx) == nil {
		g := newFn()
		if !g.IsValid() {
			return zero, &domain.OpError{
				Op:   "userfcn.attach",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("%w: global part at %d is invalid", domain.ErrExecution, idx),
			}
		}
		parts.Set(idx, g)
		return g, nil
	}

	g, ok := parts.At(idx).(T)
	if !ok {
		return zero, &domain.OpError{
			Op:   "userfcn.attach",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: global part at %d has type %T, want %T", domain.ErrInvalidConfig, idx, parts.At(idx), zero),
		}
	}
	return g, nil
}
