package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dolmengate/label-cms/internal/domain"
	"github.com/dolmengate/label-cms/internal/ports"
)

const minPasswordLength = 8

// SignUp creates a local credential identity and starts a session for it.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AuthResponse{}, err
	}
	if len(req.Password) < minPasswordLength {
		return AuthResponse{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, ports.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Now:          s.nowFn(),
	})
	if err != nil {
		return AuthResponse{}, err
	}
	return s.startSession(user)
}

// SignIn validates password credentials and starts a session.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return AuthResponse{}, domain.ErrInvalidCredentials
		}
		return AuthResponse{}, err
	}
	if user.PasswordHash == "" {
		// OAuth-only account without a local password.
		return AuthResponse{}, domain.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return AuthResponse{}, domain.ErrInvalidCredentials
	}
	return s.startSession(user)
}

// OAuthBeginURL returns the provider redirect URL for the given state.
func (s *Service) OAuthBeginURL(state string) string {
	return s.oauth.AuthCodeURL(state)
}

// OAuthExchange completes the redirect flow: the provider identity is
// upserted into the local user table and a session is started for it.
func (s *Service) OAuthExchange(ctx context.Context, code string) (AuthResponse, error) {
	identity, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	email, err := normalizeEmail(identity.Email)
	if err != nil {
		return AuthResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = s.users.Create(ctx, ports.CreateUserParams{Email: email, Now: s.nowFn()})
	}
	if err != nil {
		return AuthResponse{}, err
	}
	return s.startSession(user)
}

// SignOut ends a session from the caller's point of view and notifies
// subscribers so dependent state machines reset.
func (s *Service) SignOut(token string) {
	email := ""
	if claims, err := s.tokens.ParseAndValidate(token); err == nil {
		email = claims.Email
	}
	s.emitIdentityEvent(IdentityEvent{Kind: IdentitySignedOut, Email: email})
}

func (s *Service) startSession(user domain.User) (AuthResponse, error) {
	now := s.nowFn()
	claims := ports.AuthClaims{
		UserID:    user.UserID,
		Email:     user.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	token, err := s.tokens.Sign(claims)
	if err != nil {
		return AuthResponse{}, fmt.Errorf("sign token: %w", err)
	}
	s.emitIdentityEvent(IdentityEvent{Kind: IdentitySignedIn, Token: token, Email: user.Email})
	return AuthResponse{
		Token:     token,
		UserID:    user.UserID.String(),
		Email:     user.Email,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: valid email is required", domain.ErrInvalidInput)
	}
	return email, nil
}
