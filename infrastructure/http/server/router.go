package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public routes of the archive.
func NewRouter(log *slog.Logger, archiveServer *ArchiveServer) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", archiveServer.Health)
	r.Get("/archive/streams/{stream_id}/topics/{topic_name}", archiveServer.GetArchive)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	return r
}
