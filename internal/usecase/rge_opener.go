package usecase

import "github.com/aPeter1/musrfit-fork-sub004/internal/rge"

// RgeOpener loads the rge tables listed in a startup file.
type RgeOpener func(path string) (*rge.Handler, error)

// OpenRge is the default RgeOpener.
func OpenRge(opts ...rge.Option) RgeOpener {
	return func(path string) (*rge.Handler, error) {
		return rge.Load(path, opts...)
	}
}
