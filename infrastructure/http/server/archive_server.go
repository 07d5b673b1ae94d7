package server

import (
	"bytes"
	goerrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"topic-archive/domain"
	"topic-archive/errors"
	"topic-archive/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type ArchiveRequest struct {
	StreamID int64  `validate:"gte=0"`
	Topic    string `validate:"required,max=60"`
}

type ArchiveServer struct {
	archiveService services.IArchiveService
	log            *slog.Logger
}

func NewArchiveServer(log *slog.Logger, archiveService services.IArchiveService) *ArchiveServer {
	return &ArchiveServer{archiveService: archiveService, log: log}
}

// GetArchive renders the public archive of one topic.
// An unknown stream is a 404, private streams and empty topics are rendered
// as regular pages without messages.
func (s *ArchiveServer) GetArchive(w http.ResponseWriter, r *http.Request) {
	req, err := parseArchiveRequest(r)
	if err != nil {
		s.log.Debug("Rejected archive request", "path", r.URL.Path, "error", err)
		http.Error(w, "Invalid stream or topic", http.StatusBadRequest)
		return
	}

	document, err := s.archiveService.RenderArchive(domain.StreamID(req.StreamID), req.Topic)
	switch {
	case goerrors.Is(err, errors.ErrStreamNotFound):
		http.Error(w, "Stream not found", http.StatusNotFound)
		return
	case err != nil:
		s.log.Error("Archive rendering failed", "stream_id", req.StreamID, "topic", req.Topic, "error", err)
		http.Error(w, "Failed to render archive", http.StatusInternalServerError)
		return
	}

	// Rendered in memory first so that a template failure still yields a clean 500
	var buf bytes.Buffer
	if err = s.archiveService.RenderPage(&buf, document); err != nil {
		s.log.Error("Archive page rendering failed", "stream_id", req.StreamID, "error", err)
		http.Error(w, "Failed to render archive", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *ArchiveServer) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprint(w, "ok")
}

func parseArchiveRequest(r *http.Request) (ArchiveRequest, error) {
	streamID, err := strconv.ParseInt(chi.URLParam(r, "stream_id"), 10, 64)
	if err != nil {
		return ArchiveRequest{}, fmt.Errorf("%w: stream id: %v", errors.ErrInvalidArchiveRequest, err)
	}
	// chi matches on the raw path when the request carries one, e.g. a topic
	// with an encoded slash, and on the decoded path otherwise
	topic := chi.URLParam(r, "topic_name")
	if r.URL.RawPath != "" {
		if topic, err = url.PathUnescape(topic); err != nil {
			return ArchiveRequest{}, fmt.Errorf("%w: topic: %v", errors.ErrInvalidArchiveRequest, err)
		}
	}

	req := ArchiveRequest{StreamID: streamID, Topic: topic}
	if err = validate.Struct(req); err != nil {
		return ArchiveRequest{}, fmt.Errorf("%w: %v", errors.ErrInvalidArchiveRequest, err)
	}
	return req, nil
}
