// Package server exposes the rendered feed over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/martinlindenberg/ttinforss/internal/feed"
	"github.com/martinlindenberg/ttinforss/internal/pipeline"
)

// Server serves the feed document produced by the pipeline.
type Server struct {
	pipe *pipeline.Pipeline
	log  *slog.Logger
}

// New creates a Server around the given pipeline.
func New(pipe *pipeline.Pipeline, log *slog.Logger) *Server {
	return &Server{pipe: pipe, log: log}
}

// Handler returns the HTTP handler serving the feed at the root path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.serveFeed)
	return mux
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request) {
	doc, cached, err := s.pipe.Run(r.Context())
	if err != nil {
		s.log.Error("generate feed", "error", err)
		http.Error(w, "feed generation failed", http.StatusInternalServerError)
		return
	}

	s.log.Debug("serving feed", "cached", cached, "bytes", len(doc))
	w.Header().Set("Content-Type", feed.ContentType)
	_, _ = w.Write([]byte(doc))
}
