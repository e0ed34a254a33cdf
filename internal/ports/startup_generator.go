package ports

import "github.com/aPeter1/musrfit-fork-sub004/internal/domain"

type StartupGenerator interface {
	Generate(path string, startup domain.RgeStartup, force bool) error
}
