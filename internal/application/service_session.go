package application

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dolmengate/label-cms/internal/domain"
)

// ResolveAdminStatus drives the session state machine for one token.
//
// No usable token resolves to unauthenticated. A valid token moves through
// authenticating into authenticated-admin when the email holds an
// admin-membership row, and authenticated-non-admin otherwise. A membership
// lookup that errors or exceeds the configured deadline also resolves to
// non-admin: denial is preferred over an indefinite loading state.
func (s *Service) ResolveAdminStatus(ctx context.Context, token string) SessionResolution {
	token = strings.TrimSpace(token)
	if token == "" {
		return SessionResolution{Status: domain.StatusUnauthenticated}
	}

	claims, err := s.tokens.ParseAndValidate(token)
	if err != nil {
		// An invalid or expired token means no active session, which is
		// benign; anything else is a provider failure worth surfacing.
		if errors.Is(err, domain.ErrUnauthorized) {
			return SessionResolution{Status: domain.StatusUnauthenticated}
		}
		return SessionResolution{Status: domain.StatusUnauthenticated, Alert: domain.Classify(err)}
	}

	identity := &domain.Identity{UserID: claims.UserID, Email: claims.Email}

	lookupCtx, cancel := context.WithTimeout(ctx, s.cfg.AdminResolveTimeout)
	defer cancel()

	isAdmin, err := s.admins.IsAdmin(lookupCtx, claims.Email)
	if err != nil {
		slog.Default().WarnContext(ctx, "admin membership lookup failed, resolving to non-admin",
			"service", s.cfg.ServiceName, "email", claims.Email, "error", err)
		return SessionResolution{Status: domain.StatusNonAdmin, Identity: identity}
	}
	if !isAdmin {
		return SessionResolution{Status: domain.StatusNonAdmin, Identity: identity}
	}
	return SessionResolution{Status: domain.StatusAdmin, Identity: identity}
}

// requireAdmin is the fail-closed gate run before every mutating operation.
func (s *Service) requireAdmin(ctx context.Context, identity *domain.Identity) error {
	if identity == nil || strings.TrimSpace(identity.Email) == "" {
		return domain.ErrUnauthorized
	}
	isAdmin, err := s.admins.IsAdmin(ctx, identity.Email)
	if err != nil {
		return domain.ErrForbidden
	}
	if !isAdmin {
		return domain.ErrForbidden
	}
	return nil
}
