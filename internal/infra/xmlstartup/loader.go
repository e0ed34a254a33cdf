package xmlstartup

import (
	"fmt"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

var _ ports.StartupLoader = (*Loader)(nil)

func (l *Loader) LoadRgeStartup(path string) (domain.RgeStartup, error) {
	h := NewRgeHandler()
	if err := ParseFile(path, h); err != nil {
		return domain.RgeStartup{}, &domain.OpError{
			Op:   "xmlstartup.load_rge",
			Kind: kindOf(err),
			Path: path,
			Err:  err,
		}
	}
	if !h.IsValid() {
		return domain.RgeStartup{}, &domain.OpError{
			Op:   "xmlstartup.load_rge",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  fmt.Errorf("%w: %w", domain.ErrInvalidConfig, h.Err()),
		}
	}
	return h.Startup(), nil
}

func (l *Loader) LoadMagProxStartup(path string) (domain.MagProxStartup, error) {
	h := NewMagProxHandler()
	if err := ParseFile(path, h); err != nil {
		return domain.MagProxStartup{}, &domain.OpError{
			Op:   "xmlstartup.load_magprox",
			Kind: kindOf(err),
			Path: path,
			Err:  err,
		}
	}
	if !h.IsValid() {
		return domain.MagProxStartup{}, &domain.OpError{
			Op:   "xmlstartup.load_magprox",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  domain.ErrInvalidConfig,
		}
	}
	return h.Startup(), nil
}
