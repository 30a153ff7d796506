// Package server exposes the REST API: session-cookie auth, document
// upload and listing, the AI operations, chat, and artifact download.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docuforge/docuforge/internal/common"
	"github.com/docuforge/docuforge/internal/orchestrator"
	"github.com/docuforge/docuforge/internal/repository"
)

// Server holds the state for the REST API server.
type Server struct {
	cfg       *common.Config
	orch      *orchestrator.Orchestrator
	db        *repository.DB
	users     repository.UserRepository
	documents repository.DocumentRepository
	jobs      repository.JobRepository
	chat      repository.ChatRepository
	usage     repository.UsageRepository
	sessions  *sessionStore
	router    *gin.Engine
	logger    *slog.Logger
}

type Deps struct {
	Config       *common.Config
	Orchestrator *orchestrator.Orchestrator
	DB           *repository.DB
	Users        repository.UserRepository
	Documents    repository.DocumentRepository
	Jobs         repository.JobRepository
	Chat         repository.ChatRepository
	Usage        repository.UsageRepository
	Logger       *slog.Logger
}

func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	r := gin.Default()
	r.MaxMultipartMemory = d.Config.Upload.MaxFileSize

	s := &Server{
		cfg:       d.Config,
		orch:      d.Orchestrator,
		db:        d.DB,
		users:     d.Users,
		documents: d.Documents,
		jobs:      d.Jobs,
		chat:      d.Chat,
		usage:     d.Usage,
		sessions:  newSessionStore(d.Config.Server.SessionTTL),
		router:    r,
		logger:    d.Logger,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router for tests and custom http.Server wiring.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server on the configured address.
func (s *Server) Run() error {
	return s.router.Run(s.cfg.Server.Addr)
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	auth := s.router.Group("/api/auth")
	auth.POST("/signup", s.handleSignup)
	auth.POST("/login", s.handleLogin)
	auth.POST("/logout", s.handleLogout)

	api := s.router.Group("/api", s.requireAuth)
	api.POST("/upload", s.handleUpload)
	api.GET("/documents", s.handleListDocuments)
	api.GET("/documents/:uuid", s.handleGetDocument)
	api.GET("/documents/:uuid/jobs", s.handleListJobs)
	api.GET("/jobs/:uuid", s.handleGetJob)
	api.GET("/stats", s.handleStats)

	doc := api.Group("/document")
	doc.POST("/qa", s.handleQA)
	doc.POST("/edit", s.handleEdit)
	doc.POST("/summarize", s.handleSummarize)
	doc.POST("/convert", s.handleConvert)
	doc.POST("/analyze", s.handleAnalyze)

	api.GET("/chat", s.handleChatHistory)
	api.POST("/chat", s.handleChatMessage)

	api.GET("/download/:uuid", s.handleDownload)
}

func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.HealthCheck(c.Request.Context(), s.cfg.Database); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requireAuth resolves the session cookie and stashes the user id in
// the request context.
func (s *Server) requireAuth(c *gin.Context) {
	token, err := c.Cookie(s.cfg.Server.SessionCookie)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	userID, ok := s.sessions.lookup(token)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return
	}
	c.Set("user_id", userID)
	c.Next()
}

func currentUserID(c *gin.Context) int64 {
	v, _ := c.Get("user_id")
	id, _ := v.(int64)
	return id
}

// handleError maps repository sentinels to HTTP statuses.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
