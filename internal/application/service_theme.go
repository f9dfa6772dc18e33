package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

const eventThemeSaved = "theme.saved"

func (s *Service) publicThemeKey() string {
	return s.cfg.ServiceName + ":public:theme"
}

// PublicTheme never fails the public site: a missing row or a repository
// error both fall back to the built-in default theme.
func (s *Service) PublicTheme(ctx context.Context) ThemeView {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, s.publicThemeKey()); err == nil && raw != "" {
			var view ThemeView
			if err := json.Unmarshal([]byte(raw), &view); err == nil && view.ID != "" {
				return view
			}
		}
	}

	theme, err := s.theme.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Default().WarnContext(ctx, "theme load failed, serving defaults",
				"service", s.cfg.ServiceName, "error", err)
		}
		return toThemeView(domain.DefaultTheme())
	}
	view := toThemeView(theme)

	if s.cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err := s.cache.Set(ctx, s.publicThemeKey(), string(raw), s.cfg.PublicCacheTTL); err != nil {
				slog.Default().WarnContext(ctx, "theme cache write failed",
					"service", s.cfg.ServiceName, "error", err)
			}
		}
	}
	return view
}

// LoadTheme is the admin-side read: unlike the public path it surfaces
// repository errors so the panel can alert instead of silently showing
// defaults over real data.
func (s *Service) LoadTheme(ctx context.Context, identity *domain.Identity) (ThemeView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return ThemeView{}, err
	}
	theme, err := s.theme.Get(ctx)
	if err != nil {
		return ThemeView{}, err
	}
	return toThemeView(theme), nil
}

// SaveTheme updates the singleton row in place. There is no insert path:
// the row exists from migration, and an update that matches no row reports
// not-found rather than creating a second theme.
func (s *Service) SaveTheme(ctx context.Context, identity *domain.Identity, form ThemeForm) (ThemeView, error) {
	if err := s.requireAdmin(ctx, identity); err != nil {
		return ThemeView{}, err
	}

	form = trimThemeForm(form)
	candidate := domain.ThemeSettings{
		PrimaryColor:    form.PrimaryColor,
		SecondaryColor:  form.SecondaryColor,
		AccentColor:     form.AccentColor,
		ExtraColor1:     form.ExtraColor1,
		ExtraColor2:     form.ExtraColor2,
		BackgroundColor: form.BackgroundColor,
		BorderColor:     form.BorderColor,
		TextColor:       form.TextColor,
		LabelName:       form.LabelName,
	}
	if fields := domain.ValidateTheme(candidate); len(fields) > 0 {
		return ThemeView{}, domain.NewThemeValidationError(fields)
	}

	err := s.theme.Update(ctx, ports.SaveThemeParams{
		PrimaryColor:    form.PrimaryColor,
		SecondaryColor:  form.SecondaryColor,
		AccentColor:     form.AccentColor,
		ExtraColor1:     form.ExtraColor1,
		ExtraColor2:     form.ExtraColor2,
		BackgroundColor: form.BackgroundColor,
		BorderColor:     form.BorderColor,
		TextColor:       form.TextColor,
		LabelName:       form.LabelName,
		Now:             s.nowFn(),
	})
	if err != nil {
		return ThemeView{}, err
	}

	// Reload instead of echoing the form so the caller sees exactly what
	// the row now holds.
	theme, err := s.theme.Get(ctx)
	if err != nil {
		return ThemeView{}, err
	}

	s.invalidatePublic(ctx, s.publicThemeKey())
	s.publishEvent(ctx, eventThemeSaved, theme.ThemeID.String())
	return toThemeView(theme), nil
}

func trimThemeForm(form ThemeForm) ThemeForm {
	form.PrimaryColor = strings.TrimSpace(form.PrimaryColor)
	form.SecondaryColor = strings.TrimSpace(form.SecondaryColor)
	form.AccentColor = strings.TrimSpace(form.AccentColor)
	form.ExtraColor1 = strings.TrimSpace(form.ExtraColor1)
	form.ExtraColor2 = strings.TrimSpace(form.ExtraColor2)
	form.BackgroundColor = strings.TrimSpace(form.BackgroundColor)
	form.BorderColor = strings.TrimSpace(form.BorderColor)
	form.TextColor = strings.TrimSpace(form.TextColor)
	form.LabelName = strings.TrimSpace(form.LabelName)
	return form
}
