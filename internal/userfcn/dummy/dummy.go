// Package dummy is the minimal user function with a global part: an
// exponential depolarization exp(-λt), tabulated once per λ and shared by all
// instances.
package dummy

import (
	"log/slog"
	"math"

	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
)

// Name is the registry name of the plugin.
const Name = "dummy"

const (
	timeStep  = 1.0e-3 // µs
	tMax      = 20.0   // µs
	noOfParam = 1
)

func init() {
	userfcn.Register(Name, func() userfcn.UserFcn { return New() })
}

// Global keeps the tabulated polarization of the last λ.
type Global struct {
	cache *userfcn.ParamCache
	pol   []float64
}

func NewGlobal() *Global {
	return &Global{cache: userfcn.NewParamCache()}
}

func (g *Global) IsValid() bool { return true }

// CalculatePol tabulates exp(-λ t) on [0, 20) µs, unless param did not change.
func (g *Global) CalculatePol(param []float64) {
	if !g.cache.Changed(param) {
		return
	}

	n := int(math.Round(tMax / timeStep))
	if cap(g.pol) < n {
		g.pol = make([]float64, n)
	}
	g.pol = g.pol[:n]
	for i := range g.pol {
		g.pol[i] = math.Exp(-param[0] * float64(i) * timeStep)
	}
}

// PolValue returns the tabulated polarization at t (µs).
func (g *Global) PolValue(t float64) float64 {
	if t < 0 {
		return 1.0
	}
	if t >= tMax {
		return 0.0
	}
	idx := int(t / timeStep)
	if idx < 0 || idx >= len(g.pol) {
		return -1.0
	}
	return g.pol[idx]
}

// Recomputes reports how often the table was rebuilt.
func (g *Global) Recomputes() int { return g.cache.Recomputes() }

// UserFcn is the per-instance part. Params: [0] λ (1/µs).
type UserFcn struct {
	log    *slog.Logger
	valid  bool
	global *Global
}

func New() *UserFcn {
	return &UserFcn{log: logger.L()}
}

var _ userfcn.UserFcn = (*UserFcn)(nil)

func (f *UserFcn) NeedGlobalPart() bool { return true }

func (f *UserFcn) SetGlobalPart(parts *userfcn.GlobalParts, idx int) {
	g, err := userfcn.Attach(parts, idx, NewGlobal)
	if err != nil {
		f.valid = false
		f.log.Error("dummy: global part not available", "idx", idx, "err", err)
		return
	}
	f.valid = true
	f.global = g
}

func (f *UserFcn) GlobalPartIsValid() bool {
	return f.valid && f.global != nil && f.global.IsValid()
}

func (f *UserFcn) Eval(t float64, param []float64) float64 {
	if len(param) != noOfParam || f.global == nil {
		return math.NaN()
	}
	if t <= 0 {
		return 1.0
	}

	f.global.CalculatePol(param)
	return f.global.PolValue(t)
}
