package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

const (
	eventArtistSaved   = "artist.saved"
	eventArtistDeleted = "artist.deleted"
)

func (s *Service) publicArtistsKey() string {
	return s.cfg.ServiceName + ":public:artists"
}

// PublicArtists serves the read side of the catalog. The cache is a
// best-effort layer in front of the repository; a cache failure degrades to
// a direct read rather than an error.
func (s *Service) PublicArtists(ctx context.Context) ([]ArtistView, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, s.publicArtistsKey()); err == nil && raw != "" {
			var views []ArtistView
			if err := json.Unmarshal([]byte(raw), &views); err == nil {
				return views, nil
			}
		}
	}

	artists, err := s.artists.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	views := ArtistViews(artists)

	if s.cache != nil {
		if raw, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, s.publicArtistsKey(), string(raw), s.cfg.PublicCacheTTL); err != nil {
				slog.Default().WarnContext(ctx, "artist cache write failed",
					"service", s.cfg.ServiceName, "error", err)
			}
		}
	}
	return views, nil
}

// ListArtists is the admin-side read used to refresh the panel after
// mutations. It always hits the repository so the panel never shows stale
// rows after its own writes.
func (s *Service) ListArtists(ctx context.Context, identity *domain.Identity) ([]ArtistView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return nil, err
	}
	artists, err := s.artists.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	return ArtistViews(artists), nil
}

// SaveArtist runs the full write pipeline for one artist: admin gate, field
// validation, pending image upload, then insert or update keyed on whether
// the form carries an id. Validation failures leave storage untouched.
func (s *Service) SaveArtist(ctx context.Context, identity *domain.Identity, form ArtistForm) (ArtistView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return ArtistView{}, err
	}

	form = trimArtistForm(form)
	candidate := domain.Artist{
		Name:       form.Name,
		Genre:      form.Genre,
		Bio:        form.Bio,
		ImageURL:   form.ImageURL,
		Color:      form.Color,
		Instagram:  form.Instagram,
		Twitter:    form.Twitter,
		Spotify:    form.Spotify,
		SoundCloud: form.SoundCloud,
	}
	if form.PendingImage != nil {
		// The uploaded file will replace ImageURL, so a stale or blank URL
		// in the buffer must not block the save.
		candidate.ImageURL = ""
	}
	if fields := domain.ValidateArtist(candidate); len(fields) > 0 {
		return ArtistView{}, domain.NewArtistValidationError(fields)
	}

	if form.PendingImage != nil {
		url, err := s.uploadArtistImage(ctx, form.PendingImage)
		if err != nil {
			return ArtistView{}, err
		}
		form.ImageURL = url
	}

	params := ports.SaveArtistParams{
		ArtistID:   form.ArtistID,
		Name:       form.Name,
		Genre:      form.Genre,
		Bio:        form.Bio,
		ImageURL:   form.ImageURL,
		Color:      form.Color,
		Instagram:  form.Instagram,
		Twitter:    form.Twitter,
		Spotify:    form.Spotify,
		SoundCloud: form.SoundCloud,
		Featured:   form.Featured,
		OrderIndex: form.OrderIndex,
		Now:        s.nowFn(),
	}

	var (
		saved domain.Artist
		err   error
	)
	if form.ArtistID == uuid.Nil {
		saved, err = s.artists.Insert(ctx, params)
	} else {
		saved, err = s.artists.Update(ctx, params)
	}
	if err != nil {
		return ArtistView{}, err
	}

	s.invalidatePublic(ctx, s.publicArtistsKey())
	s.publishEvent(ctx, eventArtistSaved, saved.ArtistID.String())
	return toArtistView(saved), nil
}

// PublicCreateArtist is the minimal unauthenticated create kept for the
// legacy landing-page form. Name and image URL are mandatory; the color
// defaults and the row appends to the current ordering.
func (s *Service) PublicCreateArtist(ctx context.Context, form ArtistForm) (ArtistView, error) {
	form = trimArtistForm(form)
	form.ArtistID = uuid.Nil
	form.PendingImage = nil
	if form.Color == "" {
		form.Color = "#3B82F6"
	}

	candidate := domain.Artist{
		Name:       form.Name,
		Genre:      form.Genre,
		Bio:        form.Bio,
		ImageURL:   form.ImageURL,
		Color:      form.Color,
		Instagram:  form.Instagram,
		Twitter:    form.Twitter,
		Spotify:    form.Spotify,
		SoundCloud: form.SoundCloud,
	}
	fields := domain.ValidateArtist(candidate)
	if form.ImageURL == "" {
		fields["image_url"] = "Image URL is required"
	}
	if len(fields) > 0 {
		return ArtistView{}, domain.NewArtistValidationError(fields)
	}

	existing, err := s.artists.ListOrdered(ctx)
	if err != nil {
		return ArtistView{}, err
	}

	saved, err := s.artists.Insert(ctx, ports.SaveArtistParams{
		Name:       form.Name,
		Genre:      form.Genre,
		Bio:        form.Bio,
		ImageURL:   form.ImageURL,
		Color:      form.Color,
		Instagram:  form.Instagram,
		Twitter:    form.Twitter,
		Spotify:    form.Spotify,
		SoundCloud: form.SoundCloud,
		Featured:   form.Featured,
		OrderIndex: len(existing),
		Now:        s.nowFn(),
	})
	if err != nil {
		return ArtistView{}, err
	}

	s.invalidatePublic(ctx, s.publicArtistsKey())
	s.publishEvent(ctx, eventArtistSaved, saved.ArtistID.String())
	return toArtistView(saved), nil
}

// DeleteArtist refuses to touch the repository until the caller has
// explicitly confirmed.
func (s *Service) DeleteArtist(ctx context.Context, identity *domain.Identity, artistID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := s.requireAdmin(ctx, identity); err != nil {
		return err
	}
	if err := s.artists.Delete(ctx, artistID); err != nil {
		return err
	}
	s.invalidatePublic(ctx, s.publicArtistsKey())
	s.publishEvent(ctx, eventArtistDeleted, artistID.String())
	return nil
}

// uploadArtistImage pushes the file to object storage before anything is
// persisted, so a failed upload aborts the save with the database unchanged.
func (s *Service) uploadArtistImage(ctx context.Context, upload *ImageUpload) (string, error) {
	ext := strings.ToLower(path.Ext(upload.FileName))
	if ext == "" {
		ext = ".jpg"
	}
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate image key: %w", err)
	}
	key := fmt.Sprintf("%s/%d-%s%s", s.cfg.MediaKeyPrefix, s.nowFn().UnixMilli(), hex.EncodeToString(buf), ext)

	if err := s.storage.Upload(ctx, key, upload.Data, upload.ContentType); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return s.storage.PublicURL(key), nil
}

func (s *Service) invalidatePublic(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		slog.Default().WarnContext(ctx, "cache invalidation failed",
			"service", s.cfg.ServiceName, "keys", keys, "error", err)
	}
}

// publishEvent is fire-and-forget: a broker outage must never fail a save
// that already committed.
func (s *Service) publishEvent(ctx context.Context, eventType, entityID string) {
	if s.events == nil {
		return
	}
	payload, _ := json.Marshal(map[string]string{
		"id":          entityID,
		"occurred_at": s.nowFn().Format(time.RFC3339),
	})
	if err := s.events.Publish(ctx, eventType, payload); err != nil {
		slog.Default().WarnContext(ctx, "event publish failed",
			"service", s.cfg.ServiceName, "event", eventType, "error", err)
	}
}

func trimArtistForm(form ArtistForm) ArtistForm {
	form.Name = strings.TrimSpace(form.Name)
	form.Genre = strings.TrimSpace(form.Genre)
	form.Bio = strings.TrimSpace(form.Bio)
	form.ImageURL = strings.TrimSpace(form.ImageURL)
	form.Color = strings.TrimSpace(form.Color)
	form.Instagram = strings.TrimSpace(form.Instagram)
	form.Twitter = strings.TrimSpace(form.Twitter)
	form.Spotify = strings.TrimSpace(form.Spotify)
	form.SoundCloud = strings.TrimSpace(form.SoundCloud)
	return form
}
