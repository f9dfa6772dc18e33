package application

import (
	"time"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
)

// ImageUpload is a local file waiting to be pushed to object storage during
// the next artist save.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ArtistForm is the admin panel's edit buffer for one artist.
type ArtistForm struct {
	ArtistID     uuid.UUID `json:"id,omitempty"`
	Name         string    `json:"name"`
	Genre        string    `json:"genre"`
	Bio          string    `json:"bio"`
	ImageURL     string    `json:"image_url"`
	Color        string    `json:"color"`
	Instagram    string    `json:"instagram"`
	Twitter      string    `json:"twitter"`
	Spotify      string    `json:"spotify"`
	SoundCloud   string    `json:"soundcloud"`
	Featured     bool      `json:"featured"`
	OrderIndex   int       `json:"order_index"`
	PendingImage *ImageUpload
}

type ReleaseForm struct {
	ReleaseID     uuid.UUID  `json:"id,omitempty"`
	Title         string     `json:"title"`
	ArtistName    string     `json:"artist_name"`
	ArtistID      *uuid.UUID `json:"artist_id,omitempty"`
	ArtworkURL    string     `json:"artwork_url"`
	Year          string     `json:"year"`
	Color         string     `json:"color"`
	SpotifyURL    string     `json:"spotify_url"`
	AppleMusicURL string     `json:"apple_music_url"`
	SoundCloudURL string     `json:"soundcloud_url"`
	Featured      bool       `json:"featured"`
	OrderIndex    int        `json:"order_index"`
}

type ThemeForm struct {
	PrimaryColor    string `json:"primary_color"`
	SecondaryColor  string `json:"secondary_color"`
	AccentColor     string `json:"accent_color"`
	ExtraColor1     string `json:"extra_color_1"`
	ExtraColor2     string `json:"extra_color_2"`
	BackgroundColor string `json:"background_color"`
	BorderColor     string `json:"border_color"`
	TextColor       string `json:"text_color"`
	LabelName       string `json:"label_name"`
}

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionResolution is the output of the session/admin-status resolver.
// Alert carries a provider failure distinct from "no session"; the status is
// still resolved so the caller never hangs on an error.
type SessionResolution struct {
	Status   domain.AdminStatus
	Identity *domain.Identity
	Alert    string
}

type IdentityEventKind string

const (
	IdentitySignedIn  IdentityEventKind = "signed-in"
	IdentitySignedOut IdentityEventKind = "signed-out"
)

// IdentityEvent is pushed to subscribers whenever the identity provider
// reports a sign-in or sign-out, re-driving session resolution.
type IdentityEvent struct {
	Kind  IdentityEventKind
	Token string
	Email string
}

type ArtistView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Genre      string `json:"genre,omitempty"`
	Bio        string `json:"bio,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
	Color      string `json:"color"`
	Instagram  string `json:"instagram,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Spotify    string `json:"spotify,omitempty"`
	SoundCloud string `json:"soundcloud,omitempty"`
	Featured   bool   `json:"featured"`
	OrderIndex int    `json:"order_index"`
}

type ReleaseView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ArtistName    string `json:"artist_name"`
	ArtistID      string `json:"artist_id,omitempty"`
	ArtworkURL    string `json:"artwork_url"`
	Year          string `json:"year"`
	Color         string `json:"color"`
	SpotifyURL    string `json:"spotify_url,omitempty"`
	AppleMusicURL string `json:"apple_music_url,omitempty"`
	SoundCloudURL string `json:"soundcloud_url,omitempty"`
	Featured      bool   `json:"featured"`
	OrderIndex    int    `json:"order_index"`
}

type ThemeView struct {
	ID        string            `json:"id"`
	LabelName string            `json:"label_name"`
	Colors    map[string]string `json:"colors"`
	StyleVars map[string]string `json:"style_vars"`
}

func toArtistView(a domain.Artist) ArtistView {
	return ArtistView{
		ID: a.ArtistID.String(), Name: a.Name, Genre: a.Genre, Bio: a.Bio,
		ImageURL: a.ImageURL, Color: a.Color, Instagram: a.Instagram,
		Twitter: a.Twitter, Spotify: a.Spotify, SoundCloud: a.SoundCloud,
		Featured: a.Featured, OrderIndex: a.OrderIndex,
	}
}

func toReleaseView(r domain.Release) ReleaseView {
	view := ReleaseView{
		ID: r.ReleaseID.String(), Title: r.Title, ArtistName: r.ArtistName,
		ArtworkURL: r.ArtworkURL, Year: r.Year, Color: r.Color,
		SpotifyURL: r.SpotifyURL, AppleMusicURL: r.AppleMusicURL,
		SoundCloudURL: r.SoundCloudURL, Featured: r.Featured, OrderIndex: r.OrderIndex,
	}
	if r.ArtistID != nil {
		view.ArtistID = r.ArtistID.String()
	}
	return view
}

func toThemeView(t domain.ThemeSettings) ThemeView {
	return ThemeView{
		ID:        t.ThemeID.String(),
		LabelName: t.LabelName,
		Colors: map[string]string{
			"primary_color":    t.PrimaryColor,
			"secondary_color":  t.SecondaryColor,
			"accent_color":     t.AccentColor,
			"extra_color_1":    t.ExtraColor1,
			"extra_color_2":    t.ExtraColor2,
			"background_color": t.BackgroundColor,
			"border_color":     t.BorderColor,
			"text_color":       t.TextColor,
		},
		StyleVars: t.StyleVars(),
	}
}

// ArtistViews and ReleaseViews convert whole cached lists for the HTTP layer.
func ArtistViews(artists []domain.Artist) []ArtistView {
	out := make([]ArtistView, 0, len(artists))
	for _, a := range artists {
		out = append(out, toArtistView(a))
	}
	return out
}

func ReleaseViews(releases []domain.Release) []ReleaseView {
	out := make([]ReleaseView, 0, len(releases))
	for _, r := range releases {
		out = append(out, toReleaseView(r))
	}
	return out
}
