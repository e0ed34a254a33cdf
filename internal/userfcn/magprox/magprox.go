// Package magprox fits a magnetic proximity layer: the field
//
//	B(z) = B1·exp(-(zEnd-z)/ζ) + B0,  zStart <= z <= zEnd
//
// folded with the muon stopping profile n(E, z):
//
//	P(t) = Σ_z n(E, z)·cos(γ_µ·B(z)·t + φ)·dz
package magprox

import (
	"log/slog"
	"math"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/rgefile"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/startupfinder"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/xmlstartup"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"github.com/aPeter1/musrfit-fork-sub004/internal/rge"
	"github.com/aPeter1/musrfit-fork-sub004/internal/userfcn"
)

// Name is the registry name of the plugin.
const Name = "magprox"

const (
	GammaMu    = 0.0851615503527 // muon gyromagnetic ratio (2π MHz/G)
	Degree2Rad = 0.0174532925199

	fieldStep = 0.01 // nm
	polStep   = 0.1  // nm

	// the polarization sum stops after more than maxSmallSteps consecutive
	// contributions below smallContribution
	smallContribution = 1.0e-5
	maxSmallSteps     = 10

	noOfParam = 7
	phaseIdx  = 6
)

func init() {
	userfcn.Register(Name, func() userfcn.UserFcn { return New() })
}

type Option func(*settings)

type settings struct {
	startupFile string
	locator     ports.StartupLocator
	reader      ports.RgeReader
}

func WithStartupFile(name string) Option {
	return func(s *settings) { s.startupFile = name }
}

func WithLocator(l ports.StartupLocator) Option {
	return func(s *settings) { s.locator = l }
}

func WithReader(r ports.RgeReader) Option {
	return func(s *settings) { s.reader = r }
}

// Global owns the stopping profiles and the field of the last parameter set.
type Global struct {
	valid bool
	rge   *rge.Handler

	cache  *userfcn.ParamCache
	zStart float64
	zEnd   float64
	field  []float64
}

func NewGlobal(opts ...Option) *Global {
	s := settings{
		startupFile: domain.DefaultConfig().Startup.MagProxFile,
		reader:      rgefile.NewReader(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.locator == nil {
		s.locator = startupfinder.NewFinder(startupfinder.WithSearchPath(startupfinder.SearchPathFromEnv()...))
	}

	g := &Global{cache: userfcn.NewParamCache(phaseIdx)}
	log := logger.L()

	path, err := s.locator.Locate(s.startupFile)
	if err != nil {
		log.Error("magprox: startup file not found", "name", s.startupFile, "err", err)
		return g
	}
	startup, err := xmlstartup.NewLoader().LoadMagProxStartup(path)
	if err != nil {
		log.Error("magprox: startup handler too unhappy", "path", path, "err", err)
		return g
	}

	sets := make([]domain.RgeData, 0, len(startup.Files))
	for i, fln := range startup.Files {
		depth, ampl, err := s.reader.ReadRge(fln)
		if err != nil {
			log.Error("magprox: rge data handler too unhappy", "path", fln, "err", err)
			return g
		}
		sets = append(sets, domain.RgeData{Energy: startup.Energies[i] * 1000, Depth: depth, Amplitude: ampl})
	}
	h, err := rge.FromData(sets)
	if err != nil {
		log.Error("magprox: rge data handler too unhappy", "path", path, "err", err)
		return g
	}

	g.rge = h
	g.valid = true
	return g
}

func (g *Global) IsValid() bool { return g.valid }

// EnergyIndex looks up the table for energy in keV.
func (g *Global) EnergyIndex(energyKeV float64) int {
	if g.rge == nil {
		return rge.NotFound
	}
	return g.rge.EnergyIndex(energyKeV * 1000)
}

func (g *Global) StoppingDensity(idx int, z float64) float64 {
	if g.rge == nil {
		return -1.0
	}
	return g.rge.N(idx, z)
}

func (g *Global) ZMax(idx int) float64 {
	if g.rge == nil {
		return -1.0
	}
	return g.rge.ZMax(idx)
}

// CalculateField tabulates B(z) on [zStart, zEnd] with a 0.01 nm step, unless
// the parameters other than the phase did not change.
func (g *Global) CalculateField(param []float64) {
	if !g.cache.Changed(param) {
		return
	}

	zStart, zEnd := param[1], param[2]
	b0, b1, zeta := param[3], param[4], param[5]
	g.zStart, g.zEnd = zStart, zEnd

	n := 1
	if zEnd > zStart {
		n = int(math.Floor((zEnd-zStart)/fieldStep+1e-9)) + 1
	}
	g.field = g.field[:0]
	for i := 0; i < n; i++ {
		z := zStart + float64(i)*fieldStep
		b := 0.0
		if zeta != 0 {
			b = b1*math.Exp(-(zEnd-z)/zeta) + b0
		}
		g.field = append(g.field, b)
	}
}

// MagneticField interpolates the tabulated field at z (nm); it is 0 outside
// of [zStart, zEnd].
func (g *Global) MagneticField(z float64) float64 {
	if len(g.field) == 0 || z < g.zStart || z > g.zEnd {
		return 0.0
	}
	idx := int((z - g.zStart) / fieldStep)
	if idx >= len(g.field)-1 {
		return g.field[len(g.field)-1]
	}
	frac := ((z - g.zStart) - float64(idx)*fieldStep) / fieldStep
	return g.field[idx] + (g.field[idx+1]-g.field[idx])*frac
}

// Recomputes reports how often the field was recalculated.
func (g *Global) Recomputes() int { return g.cache.Recomputes() }

// UserFcn params: [0] energy (keV), [1] zStart (nm), [2] zEnd (nm), [3] B0 (G),
// [4] B1 (G), [5] ζ (nm), [6] phase (°).
type UserFcn struct {
	log   *slog.Logger
	opts  []Option
	valid bool

	global *Global
}

func New(opts ...Option) *UserFcn {
	return &UserFcn{log: logger.L(), opts: opts}
}

var _ userfcn.UserFcn = (*UserFcn)(nil)

func (f *UserFcn) NeedGlobalPart() bool { return true }

func (f *UserFcn) SetGlobalPart(parts *userfcn.GlobalParts, idx int) {
	g, err := userfcn.Attach(parts, idx, func() *Global { return NewGlobal(f.opts...) })
	if err != nil {
		f.valid = false
		f.log.Error("magprox: global part not available", "idx", idx, "err", err)
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
	// ζ <= 0 switches the proximity effect off
	if param[5] <= 0 {
		return 1.0
	}

	f.global.CalculateField(param)
	idx := f.global.EnergyIndex(param[0])
	if idx == rge.NotFound {
		return 0.0
	}
	zMax := f.global.ZMax(idx)
	phase := param[phaseIdx] * Degree2Rad

	pol := 0.0
	small := 0
	for z := param[1]; z <= zMax; z += polStep {
		dPol := f.global.StoppingDensity(idx, z) * math.Cos(GammaMu*f.global.MagneticField(z)*t+phase)
		pol += dPol

		if math.Abs(dPol) < smallContribution {
			small++
		} else {
			small = 0
		}
		if small > maxSmallSteps {
			break
		}
	}

	return pol * polStep
}
