package usecase

import (
	"errors"
	"fmt"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

// NoSet requests no single set.
const NoSet = -1

var (
	// ErrSetOutOfRange is returned for a set number beyond the number of sets.
	ErrSetOutOfRange = errors.New("rge set number out of range")
	// ErrSetZero is returned for set number 0; sets are counted from 1.
	ErrSetZero = errors.New("rge set numbers start at 1")
)

// RgeReport is what the inspection found.
type RgeReport struct {
	Path  string
	Sets  domain.RgeDataList
	SetNo int             // 1-based, or NoSet
	Set   *domain.RgeData // the selected set, if SetNo != NoSet
}

type InspectRge struct {
	open RgeOpener
}

func NewInspectRge(open RgeOpener) *InspectRge {
	return &InspectRge{open: open}
}

// Execute loads the startup file at path and, unless setNo is NoSet, selects
// set setNo (1-based). The report holds all sets even if the selection fails.
func (uc *InspectRge) Execute(path string, setNo int) (RgeReport, error) {
	h, err := uc.open(path)
	if err != nil {
		return RgeReport{Path: path, SetNo: setNo}, err
	}

	rep := RgeReport{Path: path, Sets: h.Data(), SetNo: setNo}
	if setNo == NoSet {
		return rep, nil
	}

	set, err := SelectSet(rep.Sets, setNo)
	if err != nil {
		return rep, err
	}
	rep.Set = &set
	return rep, nil
}

// SelectSet returns set n (1-based) of list.
func SelectSet(list domain.RgeDataList, n int) (domain.RgeData, error) {
	switch {
	case n == 0:
		return domain.RgeData{}, &domain.OpError{
			Op:   "usecase.select_set",
			Kind: domain.KindOutOfRange,
			Err:  ErrSetZero,
		}
	case n < 0 || n > len(list):
		return domain.RgeData{}, &domain.OpError{
			Op:   "usecase.select_set",
			Kind: domain.KindOutOfRange,
			Err:  fmt.Errorf("%w: requested set number %d > number of rge-data sets (%d)", ErrSetOutOfRange, n, len(list)),
		}
	}
	return list[n-1], nil
}
