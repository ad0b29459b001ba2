// Package server exposes the catalog pipeline over an HTTP JSON API.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geoshelf/geoshelf/internal/classify"
	"github.com/geoshelf/geoshelf/internal/metadata"
	"github.com/geoshelf/geoshelf/internal/organize"
	"github.com/geoshelf/geoshelf/internal/scanner"
	"github.com/geoshelf/geoshelf/internal/storage"
)

// Server wires the core components behind HTTP handlers. The catalog is
// optional; without it the scan and organize endpoints skip persistence.
type Server struct {
	router     *gin.Engine
	scanner    *scanner.Scanner
	classifier *classify.Classifier
	organizer  *organize.Organizer
	metadata   *metadata.Manager
	catalog    *storage.SQLiteCatalog
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithCatalog enables catalog persistence for scan results and
// organization runs.
func WithCatalog(catalog *storage.SQLiteCatalog) Option {
	return func(s *Server) { s.catalog = catalog }
}

// WithClassifier replaces the default rule set.
func WithClassifier(classifier *classify.Classifier) Option {
	return func(s *Server) { s.classifier = classifier }
}

// WithOrganizer replaces the default template set.
func WithOrganizer(organizer *organize.Organizer) Option {
	return func(s *Server) { s.organizer = organizer }
}

// New builds a Server with its routes registered.
func New(opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router:     gin.New(),
		scanner:    scanner.New(),
		classifier: classify.New(),
		organizer:  organize.New(),
		metadata:   metadata.NewManager(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(gin.Recovery())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api")
	{
		api.POST("/scan", s.handleScan)
		api.POST("/classify", s.handleClassify)
		api.POST("/organize", s.handleOrganize)
		api.POST("/metadata/extract", s.handleMetadataExtract)
		api.POST("/metadata/save", s.handleMetadataSave)

		api.GET("/rules", s.handleRules)
		api.GET("/templates", s.handleTemplates)

		api.GET("/datasets", s.handleListDatasets)
		api.GET("/runs", s.handleListRuns)
	}
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves the API until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("starting API server", "addr", addr)
	return s.router.Run(addr)
}
