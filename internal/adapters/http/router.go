package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dolmengate/label-cms/internal/application"
)

type Handler struct {
	service  *application.Service
	mediaDir string
}

// NewHandler wires the HTTP surface. mediaDir, when set, is served under
// /media/ so locally stored artist images resolve as public URLs.
func NewHandler(service *application.Service, mediaDir string) *Handler {
	return &Handler{service: service, mediaDir: mediaDir}
}

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	r.Route("/api", func(r chi.Router) {
		r.Get("/artists", handler.listPublicArtists)
		r.Post("/artists", handler.createPublicArtist)
		r.Get("/releases", handler.listPublicReleases)
		r.Get("/theme", handler.getPublicTheme)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handler.signUp)
			r.Post("/signin", handler.signIn)
			r.Post("/signout", handler.signOut)
			r.Get("/session", handler.resolveSession)
			r.Get("/google", handler.oauthBegin)
			r.Get("/google/callback", handler.oauthCallback)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/artists", handler.adminListArtists)
			r.Post("/artists", handler.adminSaveArtist)
			r.Put("/artists/{id}", handler.adminSaveArtist)
			r.Delete("/artists/{id}", handler.adminDeleteArtist)
			r.Get("/releases", handler.adminListReleases)
			r.Post("/releases", handler.adminSaveRelease)
			r.Put("/releases/{id}", handler.adminSaveRelease)
			r.Delete("/releases/{id}", handler.adminDeleteRelease)
			r.Get("/theme", handler.adminGetTheme)
			r.Put("/theme", handler.adminSaveTheme)
		})
	})

	if handler.mediaDir != "" {
		fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(handler.mediaDir)))
		r.Get("/media/*", func(w http.ResponseWriter, r *http.Request) {
			fileServer.ServeHTTP(w, r)
		})
	}

	return r
}
