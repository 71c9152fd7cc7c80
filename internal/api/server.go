// Package api serves the task store and progression over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lifeadmin/internal/app"
)

// Server is the lifeadmin HTTP API.
type Server struct {
	svc    *app.Service
	router *gin.Engine
	loc    *time.Location
}

// NewServer creates the router and registers every route.
func NewServer(svc *app.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	s := &Server{
		svc:    svc,
		router: router,
		loc:    time.Local,
	}

	api := router.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)

		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)
		api.POST("/tasks/:id/hide", s.handleHideTask)
		api.POST("/tasks/:id/unhide", s.handleUnhideTask)

		api.GET("/calendar", s.handleCalendar)

		api.GET("/progress", s.handleProgress)
		api.GET("/progress/history", s.handleHistory)
		api.POST("/progress/start", s.handleStart)
		api.POST("/progress/reset", s.handleReset)
		api.POST("/progress/override", s.handleOverride)
		api.PUT("/progress/theme", s.handleSetTheme)

		api.GET("/challenges", s.handleChallenges)
		api.GET("/themes", s.handleThemes)
		api.GET("/ranks", s.handleRanks)
	}

	return s
}

// Handler exposes the router for tests and custom servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	}
}
