// Package server exposes upload, one-shot edit and interactive editing
// sessions over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/ZacxDev/video-overlay/internal/config"
	"github.com/ZacxDev/video-overlay/internal/engine"
	"github.com/ZacxDev/video-overlay/internal/ffmpeg"
	"github.com/ZacxDev/video-overlay/internal/platform"
	"github.com/ZacxDev/video-overlay/internal/storage"
)

// ProbeFunc returns the duration of a media file in seconds
type ProbeFunc func(path string) (float64, error)

// Option customizes a Server
type Option func(*Server)

// WithProbe replaces the ffprobe based duration lookup
func WithProbe(probe ProbeFunc) Option {
	return func(s *Server) {
		s.probe = probe
	}
}

// Server routes HTTP requests to sessions, storage and the render engine
type Server struct {
	cfg    *config.Config
	store  *storage.Store
	logger zerolog.Logger
	probe  ProbeFunc
	router *gin.Engine

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// New builds the router. The caller picks the gin mode.
func New(cfg *config.Config, store *storage.Store, logger zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		store:    store,
		logger:   logger,
		sessions: make(map[string]*sessionEntry),
	}

	processor := ffmpeg.NewProcessor(logger)
	s.probe = func(path string) (float64, error) {
		md, err := processor.GetVideoMetadata(path)
		if err != nil {
			return 0, err
		}
		return md.Duration, nil
	}

	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured bind address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Bind,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("bind", s.cfg.Server.Bind).Msg("editor service listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info().Msg("shutting down editor service")
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	}
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), cors())
	r.MaxMultipartMemory = 32 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/profiles", s.handleProfiles)

	r.POST("/upload", s.handleUpload)
	r.POST("/edit", s.handleEdit)

	r.Static("/uploads", s.store.UploadDir())
	r.Static("/outputs", s.store.OutputDir())

	sessions := r.Group("/sessions")
	{
		sessions.POST("", s.handleCreateSession)
		sessions.GET("/:id", s.withSession(s.handleGetSession))
		sessions.DELETE("/:id", s.handleDeleteSession)
		sessions.GET("/:id/filters", s.withSession(s.handleFilters))
		sessions.POST("/:id/export", s.withSession(s.handleExport))

		sessions.POST("/:id/overlays", s.withSession(s.handleAddOverlay))
		sessions.PATCH("/:id/overlays/:oid", s.withSession(s.handleEditOverlay))
		sessions.DELETE("/:id/overlays/:oid", s.withSession(s.handleDeleteOverlay))

		sessions.GET("/:id/timeline", s.withSession(s.handleTimeline))
		sessions.PUT("/:id/timeline/zoom", s.withSession(s.handleZoom))
		sessions.POST("/:id/timeline/seek", s.withSession(s.handleSeek))
		sessions.POST("/:id/timeline/tracks/:oid/drag", s.withSession(s.handleDrag))
		sessions.POST("/:id/timeline/tracks/:oid/resize", s.withSession(s.handleResize))
		sessions.DELETE("/:id/timeline/tracks/:oid", s.withSession(s.handleDeleteTrack))

		sessions.GET("/:id/preview", s.withSession(s.handleVisible))
		sessions.PUT("/:id/preview/:oid/position", s.withSession(s.handlePreviewDrag))
	}

	return r
}

// newEngine builds the configured engine and the output extension its
// profile writes.
func (s *Server) newEngine(inputPath string, duration float64) (engine.Engine, string, error) {
	p, err := platform.Get(s.cfg.Engine.Profile)
	if err != nil {
		return nil, "", err
	}
	eng, err := engine.New(s.cfg.Engine.Name, inputPath, engine.Options{
		Platform:      p,
		Logger:        s.logger,
		MediaDuration: duration,
		BinaryPath:    s.cfg.Engine.FFmpegPath,
	})
	if err != nil {
		return nil, "", err
	}
	return eng, p.GetOutputFormat(), nil
}

// duration probes an input, treating failure as unknown length
func (s *Server) duration(path string) float64 {
	d, err := s.probe(path)
	if err != nil {
		s.logger.Warn().Err(err).Str("input", path).Msg("could not probe input duration")
		return 0
	}
	return d
}
