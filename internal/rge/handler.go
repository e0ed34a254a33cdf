// Package rge holds the TRIM.SP implantation profiles n(z) of a set of
// implantation energies and answers depth queries on them.
//
// A Handler is built from a startup file (xml or yaml) which names the
// directory, the rge file name prefix and the energies to load. A failed load
// never panics: the handler is flagged invalid and every query returns its
// sentinel (-1).
package rge

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/rgefile"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/xmlstartup"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/yamlstartup"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"gonum.org/v1/gonum/floats"
)

// NotFound is returned by EnergyIndex if no table matches.
const NotFound = -1

// energyTolerance is the matching window (eV) of EnergyIndex.
const energyTolerance = 1.0

type Handler struct {
	loader ports.StartupLoader
	reader ports.RgeReader
	log    *slog.Logger

	valid bool
	data  domain.RgeDataList
}

type Option func(*Handler)

// WithLoader overrides the startup loader, which is otherwise picked from the
// file extension.
func WithLoader(l ports.StartupLoader) Option {
	return func(h *Handler) { h.loader = l }
}

func WithReader(r ports.RgeReader) Option {
	return func(h *Handler) { h.reader = r }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) { h.log = l }
}

// NewHandler always returns a handler. Callers must check IsValid.
func NewHandler(path string, opts ...Option) *Handler {
	h, err := load(path, opts...)
	if err != nil {
		h.log.Error("rge handler invalid", "path", path, "err", err)
	}
	return h
}

// Load is NewHandler with the load error returned instead of logged.
func Load(path string, opts ...Option) (*Handler, error) {
	h, err := load(path, opts...)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// FromData builds a valid handler from already loaded raw tables.
func FromData(sets []domain.RgeData) (*Handler, error) {
	h := &Handler{log: logger.L()}
	for _, s := range sets {
		d, err := newRgeData(s.Energy, s.Depth, s.Amplitude)
		if err != nil {
			return nil, &domain.OpError{Op: "rge.from_data", Kind: domain.KindInvalidData, Err: err}
		}
		h.data = append(h.data, d)
	}
	h.valid = true
	return h, nil
}

func load(path string, opts ...Option) (*Handler, error) {
	h := &Handler{
		reader: rgefile.NewReader(),
		log:    logger.L(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.loader == nil {
		h.loader = loaderFor(path)
	}

	if path == "" {
		return h, &domain.OpError{
			Op:   "rge.load",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: empty startup file name", domain.ErrInvalidConfig),
		}
	}

	startup, err := h.loader.LoadRgeStartup(path)
	if err != nil {
		return h, err
	}

	data := make(domain.RgeDataList, 0, len(startup.Energies))
	for _, e := range startup.Energies {
		fln := startup.RgeFileName(e)
		depth, ampl, err := h.reader.ReadRge(fln)
		if err != nil {
			return h, err
		}
		d, err := newRgeData(float64(e), depth, ampl)
		if err != nil {
			return h, &domain.OpError{Op: "rge.load", Kind: domain.KindInvalidData, Path: fln, Err: err}
		}
		data = append(data, d)
		h.log.Debug("rge file loaded", "path", fln, "energy", e, "points", len(depth))
	}

	h.data = data
	h.valid = true
	return h, nil
}

func loaderFor(path string) ports.StartupLoader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlstartup.NewLoader(yamlstartup.WithStrict(true))
	default:
		return xmlstartup.NewLoader()
	}
}

// newRgeData normalizes the amplitudes such that sum_j nn_j*(z_j - z_{j-1}) = 1,
// with z_{-1} = 0.
func newRgeData(energy float64, depth, ampl []float64) (domain.RgeData, error) {
	if len(depth) == 0 || len(depth) != len(ampl) {
		return domain.RgeData{}, fmt.Errorf("%w: depth/amplitude length mismatch (%d/%d)", domain.ErrInvalidData, len(depth), len(ampl))
	}

	dz := make([]float64, len(depth))
	zz := 0.0
	for i, z := range depth {
		dz[i] = z - zz
		zz = z
	}
	tot := floats.Dot(ampl, dz)
	if !(tot > 0) || math.IsInf(tot, 0) {
		return domain.RgeData{}, fmt.Errorf("%w: profile integral is %g", domain.ErrInvalidData, tot)
	}

	nn := make([]float64, len(ampl))
	floats.ScaleTo(nn, 1.0/tot, ampl)

	return domain.RgeData{
		Energy:        energy,
		Depth:         append([]float64(nil), depth...),
		Amplitude:     append([]float64(nil), ampl...),
		NN:            nn,
		NoOfParticles: floats.Sum(ampl),
	}, nil
}

func (h *Handler) IsValid() bool { return h.valid }

func (h *Handler) NoOfSets() int { return len(h.data) }

// Data returns a copy of all tables.
func (h *Handler) Data() domain.RgeDataList {
	out := make(domain.RgeDataList, len(h.data))
	for i, d := range h.data {
		out[i] = d.Clone()
	}
	return out
}

// EnergyIndex returns the index of the first table whose energy is within
// 1 eV of energy, or NotFound.
func (h *Handler) EnergyIndex(energy float64) int {
	for i, d := range h.data {
		if math.Abs(d.Energy-energy) < energyTolerance {
			return i
		}
	}
	return NotFound
}

func (h *Handler) ZMaxByEnergy(energy float64) float64 {
	return h.ZMax(h.EnergyIndex(energy))
}

// ZMax returns the deepest tabulated depth (nm) of table idx, or -1.
func (h *Handler) ZMax(idx int) float64 {
	if idx < 0 || idx >= len(h.data) {
		return -1.0
	}
	return h.data[idx].ZMax()
}

func (h *Handler) NByEnergy(energy, z float64) float64 {
	return h.N(h.EnergyIndex(energy), z)
}

// N returns the normalized stopping density of table idx at depth z (nm).
// It is -1 for a bad index and 0 outside of (depth[0], zMax].
func (h *Handler) N(idx int, z float64) float64 {
	if idx < 0 || idx >= len(h.data) {
		return -1.0
	}
	d := &h.data[idx]
	if z < 0 || z > d.ZMax() {
		return 0.0
	}

	pos := sort.SearchFloat64s(d.Depth, z) - 1
	if pos < 0 {
		return 0.0
	}

	return d.NN[pos] + (d.NN[pos+1]-d.NN[pos])*(z-d.Depth[pos])/(d.Depth[pos+1]-d.Depth[pos])
}
