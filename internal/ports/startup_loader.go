package ports

import "github.com/aPeter1/musrfit-fork-sub004/internal/domain"

// StartupLoader loads the <trim_sp> information from a startup file.
type StartupLoader interface {
	LoadRgeStartup(path string) (domain.RgeStartup, error)
}
