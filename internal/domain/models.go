package domain

import (
	"time"

	"github.com/google/uuid"
)

// ThemeSettingsID is the fixed id of the theme singleton row. The row is
// created by migration and only ever updated afterwards.
var ThemeSettingsID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

type Artist struct {
	ArtistID   uuid.UUID
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
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Release struct {
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
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ThemeSettings is the one global row of site-wide color configuration.
type ThemeSettings struct {
	ThemeID         uuid.UUID
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	ExtraColor1     string
	ExtraColor2     string
	BackgroundColor string
	BorderColor     string
	TextColor       string
	LabelName       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StyleVars maps the theme row to the CSS custom-property names the public
// site consumes.
func (t ThemeSettings) StyleVars() map[string]string {
	return map[string]string{
		"--color-primary":    t.PrimaryColor,
		"--color-secondary":  t.SecondaryColor,
		"--color-accent":     t.AccentColor,
		"--color-extra-1":    t.ExtraColor1,
		"--color-extra-2":    t.ExtraColor2,
		"--color-background": t.BackgroundColor,
		"--color-border":     t.BorderColor,
		"--color-text":       t.TextColor,
	}
}

// DefaultTheme is the built-in fallback applied when the theme row has never
// been loaded. The site stays usable with these values.
func DefaultTheme() ThemeSettings {
	return ThemeSettings{
		ThemeID:         ThemeSettingsID,
		PrimaryColor:    "#3B82F6",
		SecondaryColor:  "#EF4444",
		AccentColor:     "#FBBF24",
		ExtraColor1:     "#10B981",
		ExtraColor2:     "#8B5CF6",
		BackgroundColor: "#FFFFFF",
		BorderColor:     "#000000",
		TextColor:       "#000000",
		LabelName:       "Dolmen Gate Media",
	}
}

// AdminUser is a membership row: having one's email in this table grants
// admin access, independent of the credential identity.
type AdminUser struct {
	AdminUserID uuid.UUID
	Email       string
	CreatedAt   time.Time
}

// User is a local credential identity for password sign-in.
type User struct {
	UserID       uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the resolved caller identity, however it was authenticated.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// AdminStatus is the admin panel session state.
type AdminStatus string

const (
	StatusUnauthenticated AdminStatus = "unauthenticated"
	StatusAuthenticating  AdminStatus = "authenticating"
	StatusAdmin           AdminStatus = "authenticated-admin"
	StatusNonAdmin        AdminStatus = "authenticated-non-admin"
)
