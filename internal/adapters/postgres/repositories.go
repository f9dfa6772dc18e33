package postgres

import (
	"gorm.io/gorm"

	"github.com/dolmengate/label-cms/internal/ports"
)

type Repositories struct {
	Artists  ports.ArtistRepository
	Releases ports.ReleaseRepository
	Theme    ports.ThemeRepository
	Admins   ports.AdminMembershipRepository
	Users    ports.UserRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Artists:  &artistRepository{db: db},
		Releases: &releaseRepository{db: db},
		Theme:    &themeRepository{db: db},
		Admins:   &adminRepository{db: db},
		Users:    &userRepository{db: db},
	}
}
