// Package server exposes the generation pipeline over HTTP: a JSON API for
// the web UI plus health and example endpoints.
package server

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"moodgen/internal/config"
	"moodgen/internal/pipeline"
)

type Server struct {
	echo      *echo.Echo
	config    config.Config
	pipe      *pipeline.Pipeline
	startTime time.Time
}

func NewServer(cfg config.Config, pipe *pipeline.Pipeline) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		config:    cfg,
		pipe:      pipe,
		startTime: time.Now(),
	}
	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	log.Printf("Starting server on %s", s.config.ListenAddr)
	return s.echo.Start(s.config.ListenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
