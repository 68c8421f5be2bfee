package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/existflow/taskmaster/internal/app"
	"github.com/existflow/taskmaster/internal/logger"
)

// Options configure the HTTP API
type Options struct {
	// TokenHash is a bcrypt hash of the bearer token. Empty disables auth.
	TokenHash string
	// Now is the clock for date-based views; nil uses time.Now
	Now func() time.Time
}

// Server exposes a session as a JSON API
type Server struct {
	session   *app.Session
	tokenHash string
	now       func() time.Time
	echo      *echo.Echo
}

// New creates a server over session
func New(session *app.Session, opts Options) *Server {
	s := &Server{
		session:   session,
		tokenHash: opts.TokenHash,
		now:       opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			logger.Info("HTTP Request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
				logger.F("duration", time.Since(start).String()))

			return nil
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	// Health check
	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	if s.tokenHash != "" {
		api.Use(s.authMiddleware)
	}

	api.GET("/me", s.handleMe)
	api.GET("/stats", s.handleStats)

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.GET("/tasks/:id", s.handleGetTask)
	api.PATCH("/tasks/:id", s.handleUpdateTask)
	api.POST("/tasks/:id/toggle", s.handleToggleTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)

	api.GET("/categories", s.handleListCategories)
	api.POST("/categories", s.handleCreateCategory)
	api.PATCH("/categories/:id", s.handleUpdateCategory)
	api.DELETE("/categories/:id", s.handleDeleteCategory)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	logger.Info("Server listening", logger.F("addr", addr), logger.F("auth", s.tokenHash != ""))
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type meResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Initial string `json:"initial"`
}

func (s *Server) handleMe(c echo.Context) error {
	u := s.session.User()
	return c.JSON(http.StatusOK, meResponse{Name: u.Name, Email: u.Email, Initial: u.Initial()})
}
