package usecase

import (
	"fmt"
	"path/filepath"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
)

type PlotProfiles struct {
	open     RgeOpener
	renderer ports.ProfileRenderer
}

func NewPlotProfiles(open RgeOpener, r ports.ProfileRenderer) *PlotProfiles {
	return &PlotProfiles{open: open, renderer: r}
}

// Execute plots the given sets (1-based; all sets if none given) of the
// startup file into out.
func (uc *PlotProfiles) Execute(startupPath, out string, setNos []int) error {
	h, err := uc.open(startupPath)
	if err != nil {
		return err
	}

	all := h.Data()
	sets := all
	if len(setNos) > 0 {
		sets = make([]domain.RgeData, 0, len(setNos))
		for _, n := range setNos {
			s, err := SelectSet(all, n)
			if err != nil {
				return err
			}
			sets = append(sets, s)
		}
	}

	title := fmt.Sprintf("stopping profiles: %s", filepath.Base(startupPath))
	return uc.renderer.Render(out, title, sets)
}
