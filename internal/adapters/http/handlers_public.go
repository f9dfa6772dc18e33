package http

import (
	"encoding/json"
	"net/http"

	"github.com/dolmengate/label-cms/internal/application"
)

func (h *Handler) listPublicArtists(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.PublicArtists(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, views)
}

func (h *Handler) createPublicArtist(w http.ResponseWriter, r *http.Request) {
	var form application.ArtistForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	view, err := h.service.PublicCreateArtist(r.Context(), form)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, view)
}

func (h *Handler) listPublicReleases(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.PublicReleases(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, views)
}

func (h *Handler) getPublicTheme(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.service.PublicTheme(r.Context()))
}
