package usecase

import (
	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
)

type InitStartup struct {
	generator ports.StartupGenerator
}

func NewInitStartup(generator ports.StartupGenerator) *InitStartup {
	return &InitStartup{generator: generator}
}

func (uc *InitStartup) Execute(path string, startup domain.RgeStartup, force bool) error {
	return uc.generator.Generate(path, startup, force)
}
