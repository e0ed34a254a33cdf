// Package depthprofile provides the fraction of muons stopping within a depth
// window [a, b] for a given implantation energy, taken from the TRIM.SP
// tables listed in depth_profile_startup.xml.
package depthprofile

import (
	"log/slog"
	"math"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/startupfinder"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"github.com/aPeter1/musrfit-fork-sub004/internal/rge"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
)

// Name is the registry name of the plugin.
const Name = "depthprofile"

const noOfParam = 3

func init() {
	userfcn.Register(Name, func() userfcn.UserFcn { return New() })
}

type Option func(*settings)

type settings struct {
	startupFile string
	locator     ports.StartupLocator
	rgeOpts     []rge.Option
}

// WithStartupFile sets the startup file name, which is resolved by the
// locator unless it has a directory part.
func WithStartupFile(name string) Option {
	return func(s *settings) { s.startupFile = name }
}

func WithLocator(l ports.StartupLocator) Option {
	return func(s *settings) { s.locator = l }
}

// WithRgeOptions is passed on to rge.NewHandler.
func WithRgeOptions(opts ...rge.Option) Option {
	return func(s *settings) { s.rgeOpts = append(s.rgeOpts, opts...) }
}

// Global owns the rge tables.
type Global struct {
	valid bool
	rge   *rge.Handler
}

func NewGlobal(opts ...Option) *Global {
	s := settings{startupFile: domain.DefaultConfig().Startup.DepthProfileFile}
	for _, opt := range opts {
		opt(&s)
	}
	if s.locator == nil {
		s.locator = startupfinder.NewFinder(startupfinder.WithSearchPath(startupfinder.SearchPathFromEnv()...))
	}

	g := &Global{}
	path, err := s.locator.Locate(s.startupFile)
	if err != nil {
		logger.L().Error("depthprofile: startup file not found", "name", s.startupFile, "err", err)
		return g
	}

	g.rge = rge.NewHandler(path, s.rgeOpts...)
	g.valid = g.rge.IsValid()
	return g
}

func (g *Global) IsValid() bool { return g.valid }

func (g *Global) Rge() *rge.Handler { return g.rge }

// StoppingProbability returns the fraction of muons with energy (eV) stopping
// in [a, b] (nm). It is 0 for an energy without table.
func (g *Global) StoppingProbability(a, b, energy float64) float64 {
	if g.rge == nil {
		return 0.0
	}
	idx := g.rge.EnergyIndex(energy)
	if idx == rge.NotFound {
		return 0.0
	}
	return g.rge.StoppingProbability(idx, a, b)
}

// UserFcn params: [0] energy (eV), [1] a (nm), [2] b (nm).
type UserFcn struct {
	log   *slog.Logger
	opts  []Option
	valid bool

	global *Global
	cache  *userfcn.ParamCache
	value  float64
}

func New(opts ...Option) *UserFcn {
	return &UserFcn{
		log:   logger.L(),
		opts:  opts,
		cache: userfcn.NewParamCache(),
	}
}

var _ userfcn.UserFcn = (*UserFcn)(nil)

func (f *UserFcn) NeedGlobalPart() bool { return true }

func (f *UserFcn) SetGlobalPart(parts *userfcn.GlobalParts, idx int) {
	g, err := userfcn.Attach(parts, idx, func() *Global { return NewGlobal(f.opts...) })
	if err != nil {
		f.valid = false
		f.log.Error("depthprofile: global part not available", "idx", idx, "err", err)
		return
	}
	f.valid = true
	f.global = g
}

func (f *UserFcn) GlobalPartIsValid() bool {
	return f.valid && f.global != nil && f.global.IsValid()
}

// Eval does not depend on t.
func (f *UserFcn) Eval(_ float64, param []float64) float64 {
	if len(param) != noOfParam || f.global == nil {
		return math.NaN()
	}
	if f.cache.Changed(param) {
		f.value = f.global.StoppingProbability(param[1], param[2], param[0])
		if f.global.Rge() != nil && f.global.Rge().EnergyIndex(param[0]) == rge.NotFound {
			f.log.Warn("depthprofile: no rge table for energy", "energy", param[0])
		}
	}
	return f.value
}

// Recomputes reports how often the stopping probability was recalculated.
func (f *UserFcn) Recomputes() int { return f.cache.Recomputes() }
