package application

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

const (
	eventReleaseSaved   = "release.saved"
	eventReleaseDeleted = "release.deleted"
)

func (s *Service) publicReleasesKey() string {
	return s.cfg.ServiceName + ":public:releases"
}

func (s *Service) PublicReleases(ctx context.Context) ([]ReleaseView, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, s.publicReleasesKey()); err == nil && raw != "" {
			var views []ReleaseView
			if err := json.Unmarshal([]byte(raw), &views); err == nil {
				return views, nil
			}
		}
	}

	releases, err := s.releases.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	views := ReleaseViews(releases)

	if s.cache != nil {
		if raw, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, s.publicReleasesKey(), string(raw), s.cfg.PublicCacheTTL); err != nil {
				slog.Default().WarnContext(ctx, "release cache write failed",
					"service", s.cfg.ServiceName, "error", err)
			}
		}
	}
	return views, nil
}

func (s *Service) ListReleases(ctx context.Context, identity *domain.Identity) ([]ReleaseView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return nil, err
	}
	releases, err := s.releases.ListOrdered(ctx)
	if err != nil {
		return nil, err
	}
	return ReleaseViews(releases), nil
}

// SaveRelease mirrors the artist pipeline without the upload step: releases
// reference external artwork URLs directly.
func (s *Service) SaveRelease(ctx context.Context, identity *domain.Identity, form ReleaseForm) (ReleaseView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return ReleaseView{}, err
	}

	form = trimReleaseForm(form)
	candidate := domain.Release{
		Title:         form.Title,
		ArtistName:    form.ArtistName,
		ArtworkURL:    form.ArtworkURL,
		Year:          form.Year,
		Color:         form.Color,
		SpotifyURL:    form.SpotifyURL,
		AppleMusicURL: form.AppleMusicURL,
		SoundCloudURL: form.SoundCloudURL,
	}
	if fields := domain.ValidateRelease(candidate); len(fields) > 0 {
		return ReleaseView{}, domain.NewReleaseValidationError(fields)
	}

	params := ports.SaveReleaseParams{
		ReleaseID:     form.ReleaseID,
		Title:         form.Title,
		ArtistName:    form.ArtistName,
		ArtistID:      form.ArtistID,
		ArtworkURL:    form.ArtworkURL,
		Year:          form.Year,
		Color:         form.Color,
		SpotifyURL:    form.SpotifyURL,
		AppleMusicURL: form.AppleMusicURL,
		SoundCloudURL: form.SoundCloudURL,
		Featured:      form.Featured,
		OrderIndex:    form.OrderIndex,
		Now:           s.nowFn(),
	}

	var (
		saved domain.Release
		err   error
	)
	if form.ReleaseID == uuid.Nil {
		saved, err = s.releases.Insert(ctx, params)
	} else {
		saved, err = s.releases.Update(ctx, params)
	}
	if err != nil {
		return ReleaseView{}, err
	}

	s.invalidatePublic(ctx, s.publicReleasesKey())
	s.publishEvent(ctx, eventReleaseSaved, saved.ReleaseID.String())
	return toReleaseView(saved), nil
}

func (s *Service) DeleteRelease(ctx context.Context, identity *domain.Identity, releaseID uuid.UUID, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	if err := s.requireAdmin(ctx, identity); err != nil {
		return err
	}
	if err := s.releases.Delete(ctx, releaseID); err != nil {
		return err
	}
	s.invalidatePublic(ctx, s.publicReleasesKey())
	s.publishEvent(ctx, eventReleaseDeleted, releaseID.String())
	return nil
}

func trimReleaseForm(form ReleaseForm) ReleaseForm {
	form.Title = strings.TrimSpace(form.Title)
	form.ArtistName = strings.TrimSpace(form.ArtistName)
	form.ArtworkURL = strings.TrimSpace(form.ArtworkURL)
	form.Year = strings.TrimSpace(form.Year)
	form.Color = strings.TrimSpace(form.Color)
	form.SpotifyURL = strings.TrimSpace(form.SpotifyURL)
	form.AppleMusicURL = strings.TrimSpace(form.AppleMusicURL)
	form.SoundCloudURL = strings.TrimSpace(form.SoundCloudURL)
	return form
}
