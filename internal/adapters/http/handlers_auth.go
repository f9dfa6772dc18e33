package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/application"
	"github.com/dolmengate/label-cms/internal/domain"
)

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req application.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req application.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if token, err := bearerTokenFromHeader(r.Header.Get("Authorization")); err == nil {
		h.service.SignOut(token)
	}
	writeMessage(w, http.StatusOK, "signed out")
}

// resolveSession reports the admin status for the presented token. A missing
// token is not an error: it resolves to unauthenticated.
func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerTokenFromHeader(r.Header.Get("Authorization"))
	res := h.service.ResolveAdminStatus(r.Context(), token)

	payload := map[string]any{"status": string(res.Status)}
	if res.Identity != nil {
		payload["email"] = res.Identity.Email
		payload["user_id"] = res.Identity.UserID.String()
	}
	if res.Alert != "" {
		payload["alert"] = res.Alert
	}
	writeSuccess(w, http.StatusOK, payload)
}

func (h *Handler) oauthBegin(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if state == "" {
		state = uuid.NewString()
	}
	http.Redirect(w, r, h.service.OAuthBeginURL(state), http.StatusFound)
}

func (h *Handler) oauthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "code query param is required")
		return
	}
	resp, err := h.service.OAuthExchange(r.Context(), code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

// authMiddleware resolves the bearer token into an identity. Admin
// membership is checked again inside the service on every mutation, so a
// stale token alone never reaches the repositories.
func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := bearerTokenFromHeader(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		res := h.service.ResolveAdminStatus(r.Context(), raw)
		if res.Identity == nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
			return
		}
		if res.Status != domain.StatusAdmin {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Access denied. Admin privileges are required for this action.")
			return
		}
		ctx := r.Context()
		ctx = contextWithIdentity(ctx, res.Identity, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
