package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dolmengate/label-cms/internal/application"
)

const maxImageUploadBytes = 10 << 20

func (h *Handler) adminListArtists(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListArtists(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, views)
}

// adminSaveArtist accepts either a JSON body or multipart/form-data with a
// "payload" JSON part plus an optional "image" file. The file, when present,
// is uploaded before the row is written.
func (h *Handler) adminSaveArtist(w http.ResponseWriter, r *http.Request) {
	form, ok := h.decodeArtistForm(w, r)
	if !ok {
		return
	}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid artist id")
			return
		}
		form.ArtistID = id
	}
	view, err := h.service.SaveArtist(r.Context(), identityFromContext(r.Context()), form)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusCreated
	}
	writeSuccess(w, status, view)
}

func (h *Handler) adminDeleteArtist(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid artist id")
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.service.DeleteArtist(r.Context(), identityFromContext(r.Context()), id, confirmed); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "artist deleted")
}

func (h *Handler) adminListReleases(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ListReleases(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, views)
}

func (h *Handler) adminSaveRelease(w http.ResponseWriter, r *http.Request) {
	var form application.ReleaseForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid release id")
			return
		}
		form.ReleaseID = id
	}
	view, err := h.service.SaveRelease(r.Context(), identityFromContext(r.Context()), form)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusCreated
	}
	writeSuccess(w, status, view)
}

func (h *Handler) adminDeleteRelease(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid release id")
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.service.DeleteRelease(r.Context(), identityFromContext(r.Context()), id, confirmed); err != nil {
		writeDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "release deleted")
}

func (h *Handler) adminGetTheme(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.LoadTheme(r.Context(), identityFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) adminSaveTheme(w http.ResponseWriter, r *http.Request) {
	var form application.ThemeForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	view, err := h.service.SaveTheme(r.Context(), identityFromContext(r.Context()), form)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

func (h *Handler) decodeArtistForm(w http.ResponseWriter, r *http.Request) (application.ArtistForm, bool) {
	var form application.ArtistForm

	contentType := r.Header.Get("Content-Type")
	if len(contentType) >= 19 && contentType[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart body")
			return form, false
		}
		payload := r.FormValue("payload")
		if payload == "" {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "payload form field is required")
			return form, false
		}
		if err := json.Unmarshal([]byte(payload), &form); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload json")
			return form, false
		}
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(io.LimitReader(file, maxImageUploadBytes))
			if readErr != nil {
				writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "could not read image upload")
				return form, false
			}
			form.PendingImage = &application.ImageUpload{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		}
		return form, true
	}

	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return form, false
	}
	return form, true
}
