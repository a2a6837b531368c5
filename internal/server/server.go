package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/tariffmill/internal/logger"
	"github.com/rezonia/tariffmill/internal/pipeline"
	"github.com/rezonia/tariffmill/internal/refdata"
)

// ReloadFunc loads a fresh reference snapshot from the backing source.
// The server swaps it in atomically; in-flight runs keep the snapshot
// they started with.
type ReloadFunc func() (*refdata.Snapshot, error)

// Config holds server configuration
type Config struct {
	Address         string
	DomesticCountry string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	Debug           bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	store    *refdata.Store
	pipeline *pipeline.Pipeline
	reload   ReloadFunc
	log      *logger.Logger
}

// NewServer creates a new API server over the given reference store.
// reload may be nil, in which case the reload endpoint returns 501.
func NewServer(config *Config, store *refdata.Store, reload ReloadFunc, log *logger.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	var pipeOpts []pipeline.Option
	if config.DomesticCountry != "" {
		pipeOpts = append(pipeOpts, pipeline.WithDomesticCountry(config.DomesticCountry))
	}

	s := &Server{
		config:   config,
		router:   router,
		store:    store,
		pipeline: pipeline.NewPipeline(store, pipeOpts...),
		reload:   reload,
		log:      log,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/process", s.handleProcess)
		v1.POST("/reload", s.handleReload)

		v1.GET("/parts", s.handleSearchParts)
		v1.GET("/parts/:id", s.handleGetPart)
		v1.GET("/codes", s.handleCodes)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info("listening", "address", s.config.Address)
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.store.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"time":       time.Now().UTC().Format(time.RFC3339),
		"parts":      snap.PartCount(),
		"exclusions": snap.ExclusionCount(),
		"loaded_at":  snap.LoadedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "no line items"})
		return
	}

	result := s.pipeline.ProcessInvoice(req.Items, req.DeclaredTotal, req.ManufacturerID)
	s.log.Info("invoice processed",
		"run_id", result.RunID,
		"lines_in", len(req.Items),
		"lines_out", len(result.Lines),
		"matched", result.Reconciliation.Matched,
	)

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleReload(c *gin.Context) {
	if s.reload == nil {
		c.JSON(http.StatusNotImplemented, ErrorResponse{Error: "no reload source configured"})
		return
	}

	snap, err := s.reload()
	if err != nil {
		s.log.Error("reload failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "reload failed", Details: err.Error()})
		return
	}

	s.store.Swap(snap)
	s.log.Info("reference data reloaded", "parts", snap.PartCount(), "exclusions", snap.ExclusionCount())

	c.JSON(http.StatusOK, ReloadResponse{
		Parts:      snap.PartCount(),
		Exclusions: snap.ExclusionCount(),
		LoadedAt:   snap.LoadedAt.Format(time.RFC3339),
	})
}

func (s *Server) handleGetPart(c *gin.Context) {
	id := c.Param("id")
	part, ok := s.store.Snapshot().Part(id)
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "part not found"})
		return
	}
	c.JSON(http.StatusOK, PartResponse{Part: part})
}

func (s *Server) handleSearchParts(c *gin.Context) {
	term := c.Query("search")
	if term == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing search parameter"})
		return
	}
	parts := s.store.Snapshot().SearchParts(term)
	c.JSON(http.StatusOK, PartSearchResponse{Parts: parts, Count: len(parts)})
}

func (s *Server) handleCodes(c *gin.Context) {
	c.JSON(http.StatusOK, CodesResponse{Codes: s.store.Snapshot().Codes()})
}
