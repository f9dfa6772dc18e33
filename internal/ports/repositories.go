package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
)

type SaveArtistParams struct {
	ArtistID   uuid.UUID // uuid.Nil inserts, anything else updates
	Name       string
	Genre      string
	Bio        string
	ImageURL   string
	Color      string
	Instagram  string
	Twitter    string
	Spotify    string
	SoundCloud string
	Featured   bool
	OrderIndex int
	Now        time.Time
}

type SaveReleaseParams struct {
	ReleaseID     uuid.UUID
	Title         string
	ArtistName    string
	ArtistID      *uuid.UUID
	ArtworkURL    string
	Year          string
	Color         string
	SpotifyURL    string
	AppleMusicURL string
	SoundCloudURL string
	Featured      bool
	OrderIndex    int
	Now           time.Time
}

type SaveThemeParams struct {
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	ExtraColor1     string
	ExtraColor2     string
	BackgroundColor string
	BorderColor     string
	TextColor       string
	LabelName       string
	Now             time.Time
}

// ArtistRepository and ReleaseRepository list ordered by order_index
// ascending with created_at as the tie-breaker, so display order stays
// stable when indices collide.
type ArtistRepository interface {
	ListOrdered(ctx context.Context) ([]domain.Artist, error)
	Insert(ctx context.Context, params SaveArtistParams) (domain.Artist, error)
	Update(ctx context.Context, params SaveArtistParams) (domain.Artist, error)
	Delete(ctx context.Context, artistID uuid.UUID) error
}

type ReleaseRepository interface {
	ListOrdered(ctx context.Context) ([]domain.Release, error)
	Insert(ctx context.Context, params SaveReleaseParams) (domain.Release, error)
	Update(ctx context.Context, params SaveReleaseParams) (domain.Release, error)
	Delete(ctx context.Context, releaseID uuid.UUID) error
}

// ThemeRepository is update-only: the singleton row is seeded out-of-band.
type ThemeRepository interface {
	Get(ctx context.Context) (domain.ThemeSettings, error)
	Update(ctx context.Context, params SaveThemeParams) error
}

// AdminMembershipRepository answers presence, not a role enum.
type AdminMembershipRepository interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	Add(ctx context.Context, email string, now time.Time) error
}

type CreateUserParams struct {
	Email        string
	PasswordHash string
	Now          time.Time
}

type UserRepository interface {
	Create(ctx context.Context, params CreateUserParams) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
