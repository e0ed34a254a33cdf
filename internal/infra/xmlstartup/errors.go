package xmlstartup

import (
	"errors"
	"io/fs"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
)

func kindOf(err error) domain.ErrorKind {
	if errors.Is(err, fs.ErrNotExist) {
		return domain.KindNotFound
	}
	return domain.KindInvalidConfig
}
