package domain

import (
	"fmt"
	"testing"
	"time"
)

func validArtist() Artist {
	return Artist{
		Name:     "Nova",
		Genre:    "Techno",
		Bio:      "Berlin based.",
		ImageURL: "https://cdn.example.com/nova.jpg",
		Color:    "#112233",
		Spotify:  "https://open.spotify.com/artist/abc",
	}
}

func validRelease() Release {
	return Release{
		Title:      "Night Drive",
		ArtistName: "Nova",
		ArtworkURL: "https://cdn.example.com/nd.png",
		Year:       "2024",
		Color:      "#112233",
	}
}

func TestValidateArtistAcceptsCompleteForm(t *testing.T) {
	t.Parallel()

	if errs := ValidateArtist(validArtist()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateArtistCollectsAllViolations(t *testing.T) {
	t.Parallel()

	errs := ValidateArtist(Artist{Name: "", Color: "nope", Instagram: "not-a-handle"})
	if errs["name"] != "Name is required" {
		t.Fatalf("unexpected name error: %q", errs["name"])
	}
	if errs["color"] != "Color must be a 6-digit hex value like #3B82F6" {
		t.Fatalf("unexpected color error: %q", errs["color"])
	}
	if errs["instagram"] != "Instagram must be an instagram.com link or @handle" {
		t.Fatalf("unexpected instagram error: %q", errs["instagram"])
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %v", errs)
	}
}

func TestValidateArtistOptionalFields(t *testing.T) {
	t.Parallel()

	a := validArtist()
	a.Genre = ""
	a.Bio = ""
	a.ImageURL = ""
	a.Spotify = ""
	if errs := ValidateArtist(a); len(errs) != 0 {
		t.Fatalf("optional fields should be skippable, got %v", errs)
	}

	a.Instagram = "@nova"
	a.Twitter = "@nova"
	if errs := ValidateArtist(a); len(errs) != 0 {
		t.Fatalf("handle forms should pass, got %v", errs)
	}
}

func TestValidateArtistImageURL(t *testing.T) {
	t.Parallel()

	a := validArtist()
	a.ImageURL = "https://cdn.example.com/nova.pdf"
	if errs := ValidateArtist(a); errs["image_url"] == "" {
		t.Fatalf("expected image_url error for non-image extension")
	}
	a.ImageURL = "https://cdn.example.com/nova.WEBP"
	if errs := ValidateArtist(a); len(errs) != 0 {
		t.Fatalf("extension match should be case-insensitive, got %v", errs)
	}
}

func TestValidateReleaseRequiredFields(t *testing.T) {
	t.Parallel()

	errs := ValidateRelease(Release{})
	for _, field := range []string{"title", "artist_name", "artwork_url", "year", "color"} {
		if errs[field] == "" {
			t.Fatalf("expected error for %s, got %v", field, errs)
		}
	}
}

func TestValidateReleaseYearBounds(t *testing.T) {
	t.Parallel()

	maxYear := time.Now().Year() + 5
	rangeMsg := fmt.Sprintf("Year must be between 1900 and %d", maxYear)

	cases := map[string]string{
		"2024": "",
		"1899": rangeMsg,
		fmt.Sprintf("%d", maxYear):   "",
		fmt.Sprintf("%d", maxYear+1): rangeMsg,
		"abcd": "Year must be a 4-digit year",
		"24":   "Year must be a 4-digit year",
	}
	for year, want := range cases {
		r := validRelease()
		r.Year = year
		got := ValidateRelease(r)["year"]
		if got != want {
			t.Fatalf("year %q: expected %q, got %q", year, want, got)
		}
	}
}

func TestValidateReleaseColor(t *testing.T) {
	t.Parallel()

	r := validRelease()
	r.Color = "#ZZZZZZ"
	if got := ValidateRelease(r)["color"]; got != "Color must be a 6-digit hex value like #3B82F6" {
		t.Fatalf("unexpected color error: %q", got)
	}
	r.Color = "#3b82f6"
	if errs := ValidateRelease(r); errs["color"] != "" {
		t.Fatalf("lowercase hex should pass, got %q", errs["color"])
	}
}

func TestValidateReleaseArtworkAllowsQuery(t *testing.T) {
	t.Parallel()

	r := validRelease()
	r.ArtworkURL = "https://cdn.example.com/nd.png?w=600"
	if errs := ValidateRelease(r); errs["artwork_url"] != "" {
		t.Fatalf("query string should be allowed on artwork, got %q", errs["artwork_url"])
	}
}

func TestValidateReleaseStreamingLinks(t *testing.T) {
	t.Parallel()

	r := validRelease()
	r.SpotifyURL = "https://example.com/x"
	r.AppleMusicURL = "https://apple.com/x"
	r.SoundCloudURL = "https://example.com/x"
	errs := ValidateRelease(r)
	if errs["spotify_url"] != "Spotify URL must be a spotify.com link" {
		t.Fatalf("unexpected spotify error: %q", errs["spotify_url"])
	}
	if errs["apple_music_url"] != "Apple Music URL must be a music.apple.com link" {
		t.Fatalf("unexpected apple error: %q", errs["apple_music_url"])
	}
	if errs["soundcloud_url"] != "SoundCloud URL must be a soundcloud.com link" {
		t.Fatalf("unexpected soundcloud error: %q", errs["soundcloud_url"])
	}
}

func TestValidateTheme(t *testing.T) {
	t.Parallel()

	theme := DefaultTheme()
	if errs := ValidateTheme(theme); len(errs) != 0 {
		t.Fatalf("default theme should validate, got %v", errs)
	}

	theme.AccentColor = "gold"
	theme.LabelName = "   "
	errs := ValidateTheme(theme)
	if errs["accent_color"] != "Accent color must be a 6-digit hex value like #3B82F6" {
		t.Fatalf("unexpected accent error: %q", errs["accent_color"])
	}
	if errs["label_name"] != "Label name is required" {
		t.Fatalf("unexpected label error: %q", errs["label_name"])
	}
}

func TestValidationErrorFirstMessageFollowsFieldOrder(t *testing.T) {
	t.Parallel()

	errs := ValidateRelease(Release{})
	verr := NewReleaseValidationError(errs)
	if verr.Error() != "Title is required" {
		t.Fatalf("expected title error first, got %q", verr.Error())
	}
}
