package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dgnsrekt/greatloveaudio/internal/book"
	"github.com/dgnsrekt/greatloveaudio/internal/config"
	"github.com/dgnsrekt/greatloveaudio/internal/events"
	"github.com/dgnsrekt/greatloveaudio/internal/tts"
	"github.com/rs/cors"
)

// BookParser extracts the content of a stored book.
type BookParser interface {
	Parse(path string) (book.Content, error)
}

// FileSaver persists an uploaded file and returns its path.
type FileSaver interface {
	Save(name string, r io.Reader) (string, error)
}

// Deps holds the components the handlers delegate to. They are built once
// at startup.
type Deps struct {
	Parser  BookParser
	Store   FileSaver
	Engines *tts.Registry
	Voices  *tts.Catalog
	Events  events.Publisher
}

// Server handles HTTP API requests.
type Server struct {
	cfg     *config.Config
	logger  *slog.Logger
	server  *http.Server
	handler http.Handler

	parser  BookParser
	store   FileSaver
	engines *tts.Registry
	voices  *tts.Catalog
	events  events.Publisher
}

// New creates a new API server.
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	s := &Server{
		cfg:     cfg,
		logger:  logger,
		parser:  deps.Parser,
		store:   deps.Store,
		engines: deps.Engines,
		voices:  deps.Voices,
		events:  deps.Events,
	}
	if s.events == nil {
		s.events = events.NopPublisher{}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("POST /upload-book", s.handleUploadBook)
	mux.HandleFunc("POST /generate-speech", s.handleGenerateSpeech)
	mux.HandleFunc("GET /available-voices", s.handleAvailableVoices)
	mux.HandleFunc("GET /available-voices/{id}", s.handleVoice)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
			http.MethodHead,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.handler = s.withRequestID(s.withLogging(s.withRecovery(c.Handler(mux).ServeHTTP)))

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      s.handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
