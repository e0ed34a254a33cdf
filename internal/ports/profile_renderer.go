package ports

import "github.com/aPeter1/musrfit-fork-sub004/internal/domain"

// ProfileRenderer draws stopping profiles n(z) into an image file.
type ProfileRenderer interface {
	Render(path string, title string, sets []domain.RgeData) error
}
