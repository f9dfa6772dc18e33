package security

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dolmengate/label-cms/internal/ports"
)

const (
	googleAuthEndpoint     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint    = "https://oauth2.googleapis.com/token"
	googleUserInfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"
)

type GoogleOAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
}

// GoogleOAuthProvider implements the authorization-code redirect flow
// against Google's OAuth 2.0 endpoints.
type GoogleOAuthProvider struct {
	cfg        GoogleOAuthConfig
	httpClient *http.Client
}

func NewGoogleOAuthProvider(cfg GoogleOAuthConfig) *GoogleOAuthProvider {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &GoogleOAuthProvider{cfg: cfg, httpClient: httpClient}
}

func (p *GoogleOAuthProvider) AuthCodeURL(state string) string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	q.Set("state", state)
	return googleAuthEndpoint + "?" + q.Encode()
}

func (p *GoogleOAuthProvider) Exchange(ctx context.Context, code string) (ports.OAuthIdentity, error) {
	if strings.TrimSpace(code) == "" {
		return ports.OAuthIdentity{}, fmt.Errorf("authorization code is required")
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", p.cfg.ClientID)
	form.Set("client_secret", p.cfg.ClientSecret)
	form.Set("redirect_uri", p.cfg.RedirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return ports.OAuthIdentity{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ports.OAuthIdentity{}, fmt.Errorf("token exchange: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.OAuthIdentity{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return ports.OAuthIdentity{}, fmt.Errorf("token exchange failed: status %d", resp.StatusCode)
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return ports.OAuthIdentity{}, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return ports.OAuthIdentity{}, fmt.Errorf("token response missing access_token")
	}

	return p.fetchIdentity(ctx, tokenResp.AccessToken)
}

func (p *GoogleOAuthProvider) fetchIdentity(ctx context.Context, accessToken string) (ports.OAuthIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoEndpoint, nil)
	if err != nil {
		return ports.OAuthIdentity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ports.OAuthIdentity{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.OAuthIdentity{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return ports.OAuthIdentity{}, fmt.Errorf("userinfo failed: status %d", resp.StatusCode)
	}

	var info struct {
		Sub   string `json:"sub"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return ports.OAuthIdentity{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if info.Email == "" {
		return ports.OAuthIdentity{}, fmt.Errorf("userinfo missing email")
	}

	return ports.OAuthIdentity{
		Provider:    "google",
		ProviderSub: info.Sub,
		Email:       info.Email,
		Name:        info.Name,
	}, nil
}
