// Package yamlstartup reads the <trim_sp> startup information from YAML:
//
//	trim_sp:
//	  data_path: /data/trimsp
//	  rge_fln_pre: LCCO_E
//	  energy: [1000, 2500, 5000]
package yamlstartup

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
	"gopkg.in/yaml.v3"
)

type Loader struct {
	strict bool
}

type Option func(*Loader)

// WithStrict rejects unknown keys.
func WithStrict(strict bool) Option {
	return func(l *Loader) { l.strict = strict }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.StartupLoader = (*Loader)(nil)

type yamlStartup struct {
	TrimSP struct {
		DataPath  string `yaml:"data_path"`
		RgeFlnPre string `yaml:"rge_fln_pre"`
		// Decoded as floats: yaml.v3 truncates 1000.5 into an int field.
		Energy []float64 `yaml:"energy"`
	} `yaml:"trim_sp"`
}

func (l *Loader) LoadRgeStartup(path string) (domain.RgeStartup, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.RgeStartup{}, &domain.OpError{
			Op:   "yamlstartup.load_rge",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var y yamlStartup
	dec := yaml.NewDecoder(f)
	dec.KnownFields(l.strict)
	if err := dec.Decode(&y); err != nil {
		return domain.RgeStartup{}, &domain.OpError{
			Op:   "yamlstartup.load_rge",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
		}
	}

	energies, energyErr := toEnergies(y.TrimSP.Energy)
	s := domain.RgeStartup{
		DataPath: y.TrimSP.DataPath,
		FlnPre:   y.TrimSP.RgeFlnPre,
		Energies: energies,
	}
	if err := errors.Join(energyErr, validate(s, len(y.TrimSP.Energy))); err != nil {
		return domain.RgeStartup{}, &domain.OpError{
			Op:   "yamlstartup.load_rge",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err),
		}
	}
	return s, nil
}

// toEnergies accepts whole, positive energies within int range.
func toEnergies(raw []float64) ([]int, error) {
	var errs []error
	out := make([]int, 0, len(raw))
	for _, e := range raw {
		switch {
		case e != math.Trunc(e) || math.IsNaN(e):
			errs = append(errs, fmt.Errorf("trim_sp.energy: %g is not an integer", e))
		case e > math.MaxInt32 || e < math.MinInt32:
			errs = append(errs, fmt.Errorf("trim_sp.energy: %g is out-of-range", e))
		case e <= 0:
			errs = append(errs, fmt.Errorf("trim_sp.energy: %g is not positive", e))
		default:
			out = append(out, int(e))
		}
	}
	return out, errors.Join(errs...)
}

func validate(s domain.RgeStartup, configured int) error {
	var errs []error
	if s.DataPath == "" {
		errs = append(errs, errors.New("trim_sp.data_path is missing"))
	}
	if s.FlnPre == "" {
		errs = append(errs, errors.New("trim_sp.rge_fln_pre is missing"))
	}
	if configured == 0 {
		errs = append(errs, errors.New("trim_sp.energy: no implantation energies present"))
	}
	return errors.Join(errs...)
}
