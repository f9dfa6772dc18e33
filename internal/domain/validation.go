package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FormErrors maps a field name to a human-readable message. An empty mapping
// means the candidate is persistable.
type FormErrors map[string]string

var (
	// Title and release artist name allow the wider punctuation set.
	titleCharsPattern = regexp.MustCompile(`^[\p{L}\p{N}\s\-_.,:!?'"()&]*$`)
	// Artist name and genre use the tighter set.
	nameCharsPattern = regexp.MustCompile(`^[\p{L}\p{N}\s\-_.'&]*$`)

	artistImagePattern    = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp|svg)$`)
	releaseArtworkPattern = regexp.MustCompile(`(?i)^https?://.+\.(jpg|jpeg|png|gif|webp|svg)(\?.*)?$`)
	yearPattern           = regexp.MustCompile(`^\d{4}$`)
	hexColorPattern       = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	handlePattern         = regexp.MustCompile(`^@\S+$`)
)

const (
	maxTitleLen      = 200
	maxArtistNameLen = 100
	maxGenreLen      = 50
	maxBioLen        = 1000
	minYear          = 1900
)

const (
	titleCharsMsg = "letters, numbers, spaces and - _ . , : ! ? ' \" ( ) & are allowed"
	nameCharsMsg  = "letters, numbers, spaces and - _ . ' & are allowed"
)

// artistFieldOrder and releaseFieldOrder fix the order in which "the first
// error" is chosen when a whole mapping is collapsed to one message.
var artistFieldOrder = []string{
	"name", "genre", "bio", "image_url", "color",
	"instagram", "twitter", "spotify", "soundcloud",
}

var releaseFieldOrder = []string{
	"title", "artist_name", "artwork_url", "year", "color",
	"spotify_url", "apple_music_url", "soundcloud_url",
}

var themeFieldOrder = []string{
	"primary_color", "secondary_color", "accent_color",
	"extra_color_1", "extra_color_2", "background_color",
	"border_color", "text_color", "label_name",
}

// ValidateArtist checks an artist candidate against every field rule and
// collects all violations. It never short-circuits.
func ValidateArtist(a Artist) FormErrors {
	errs := FormErrors{}

	name := strings.TrimSpace(a.Name)
	switch {
	case name == "":
		errs["name"] = "Name is required"
	case len(name) > maxArtistNameLen:
		errs["name"] = fmt.Sprintf("Name must be %d characters or less", maxArtistNameLen)
	case !nameCharsPattern.MatchString(name):
		errs["name"] = "Name contains invalid characters (" + nameCharsMsg + ")"
	}

	genre := strings.TrimSpace(a.Genre)
	switch {
	case len(genre) > maxGenreLen:
		errs["genre"] = fmt.Sprintf("Genre must be %d characters or less", maxGenreLen)
	case genre != "" && !nameCharsPattern.MatchString(genre):
		errs["genre"] = "Genre contains invalid characters (" + nameCharsMsg + ")"
	}

	if len(a.Bio) > maxBioLen {
		errs["bio"] = fmt.Sprintf("Bio must be %d characters or less", maxBioLen)
	}

	if img := strings.TrimSpace(a.ImageURL); img != "" && !artistImagePattern.MatchString(img) {
		errs["image_url"] = "Image URL must be an image link ending in .jpg, .jpeg, .png, .gif, .webp or .svg"
	}

	validateHexColor(errs, "color", a.Color)

	if v := strings.TrimSpace(a.Instagram); v != "" && !handlePattern.MatchString(v) && !strings.Contains(v, "instagram.com") {
		errs["instagram"] = "Instagram must be an instagram.com link or @handle"
	}
	if v := strings.TrimSpace(a.Twitter); v != "" && !handlePattern.MatchString(v) && !strings.Contains(v, "twitter.com") && !strings.Contains(v, "x.com") {
		errs["twitter"] = "Twitter must be a twitter.com link or @handle"
	}
	validateSpotifyURL(errs, "spotify", a.Spotify)
	validateSoundCloudURL(errs, "soundcloud", a.SoundCloud)

	return errs
}

// ValidateRelease checks a release candidate the same way. The year range's
// upper bound is derived from the clock at validation time.
func ValidateRelease(r Release) FormErrors {
	errs := FormErrors{}

	title := strings.TrimSpace(r.Title)
	switch {
	case title == "":
		errs["title"] = "Title is required"
	case len(title) > maxTitleLen:
		errs["title"] = fmt.Sprintf("Title must be %d characters or less", maxTitleLen)
	case !titleCharsPattern.MatchString(title):
		errs["title"] = "Title contains invalid characters (" + titleCharsMsg + ")"
	}

	artistName := strings.TrimSpace(r.ArtistName)
	switch {
	case artistName == "":
		errs["artist_name"] = "Artist name is required"
	case len(artistName) > maxArtistNameLen:
		errs["artist_name"] = fmt.Sprintf("Artist name must be %d characters or less", maxArtistNameLen)
	case !titleCharsPattern.MatchString(artistName):
		errs["artist_name"] = "Artist name contains invalid characters (" + titleCharsMsg + ")"
	}

	artwork := strings.TrimSpace(r.ArtworkURL)
	switch {
	case artwork == "":
		errs["artwork_url"] = "Artwork URL is required"
	case !releaseArtworkPattern.MatchString(artwork):
		errs["artwork_url"] = "Artwork URL must be an image link ending in .jpg, .jpeg, .png, .gif, .webp or .svg"
	}

	year := strings.TrimSpace(r.Year)
	maxYear := time.Now().Year() + 5
	switch {
	case year == "":
		errs["year"] = "Year is required"
	case !yearPattern.MatchString(year):
		errs["year"] = "Year must be a 4-digit year"
	default:
		if y, _ := strconv.Atoi(year); y < minYear || y > maxYear {
			errs["year"] = fmt.Sprintf("Year must be between %d and %d", minYear, maxYear)
		}
	}

	validateHexColor(errs, "color", r.Color)

	validateSpotifyURL(errs, "spotify_url", r.SpotifyURL)
	if v := strings.TrimSpace(r.AppleMusicURL); v != "" && !strings.Contains(v, "music.apple.com") {
		errs["apple_music_url"] = "Apple Music URL must be a music.apple.com link"
	}
	validateSoundCloudURL(errs, "soundcloud_url", r.SoundCloudURL)

	return errs
}

// ValidateTheme checks the theme form: every color must be 6-digit hex and
// the label name non-blank.
func ValidateTheme(t ThemeSettings) FormErrors {
	errs := FormErrors{}
	validateThemeColor(errs, "primary_color", "Primary color", t.PrimaryColor)
	validateThemeColor(errs, "secondary_color", "Secondary color", t.SecondaryColor)
	validateThemeColor(errs, "accent_color", "Accent color", t.AccentColor)
	validateThemeColor(errs, "extra_color_1", "Extra color 1", t.ExtraColor1)
	validateThemeColor(errs, "extra_color_2", "Extra color 2", t.ExtraColor2)
	validateThemeColor(errs, "background_color", "Background color", t.BackgroundColor)
	validateThemeColor(errs, "border_color", "Border color", t.BorderColor)
	validateThemeColor(errs, "text_color", "Text color", t.TextColor)
	if strings.TrimSpace(t.LabelName) == "" {
		errs["label_name"] = "Label name is required"
	}
	return errs
}

func validateHexColor(errs FormErrors, field, value string) {
	validateThemeColor(errs, field, "Color", value)
}

func validateThemeColor(errs FormErrors, field, label, value string) {
	color := strings.TrimSpace(value)
	switch {
	case color == "":
		errs[field] = label + " is required"
	case !hexColorPattern.MatchString(color):
		errs[field] = label + " must be a 6-digit hex value like #3B82F6"
	}
}

func validateSpotifyURL(errs FormErrors, field, value string) {
	// open.spotify.com is implied: it contains spotify.com as a suffix.
	if v := strings.TrimSpace(value); v != "" && !strings.Contains(v, "spotify.com") {
		errs[field] = "Spotify URL must be a spotify.com link"
	}
}

func validateSoundCloudURL(errs FormErrors, field, value string) {
	if v := strings.TrimSpace(value); v != "" && !strings.Contains(v, "soundcloud.com") {
		errs[field] = "SoundCloud URL must be a soundcloud.com link"
	}
}

// NewArtistValidationError wraps a non-empty mapping for error-path callers.
func NewArtistValidationError(fields FormErrors) *ValidationError {
	return &ValidationError{Fields: fields, order: artistFieldOrder}
}

func NewReleaseValidationError(fields FormErrors) *ValidationError {
	return &ValidationError{Fields: fields, order: releaseFieldOrder}
}

func NewThemeValidationError(fields FormErrors) *ValidationError {
	return &ValidationError{Fields: fields, order: themeFieldOrder}
}
