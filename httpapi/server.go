// Copyright 2026 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/praxisworks/ragchat/bots"
	"github.com/praxisworks/ragchat/chat"
	"github.com/praxisworks/ragchat/ingestion"
	"github.com/praxisworks/ragchat/session"
)

// Server is the HTTP surface over the bot registry, ingestion pipeline, and
// chat engine.
type Server struct {
	registry *bots.Registry
	pipeline *ingestion.Pipeline
	engine   *chat.Engine
	memory   *session.Store
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer creates an HTTP server over the given components.
func NewServer(registry *bots.Registry, pipeline *ingestion.Pipeline, engine *chat.Engine, memory *session.Store, opts ...Option) (*Server, error) {
	if registry == nil || pipeline == nil || engine == nil || memory == nil {
		return nil, ErrIncompleteServer
	}
	s := &Server{
		registry: registry,
		pipeline: pipeline,
		engine:   engine,
		memory:   memory,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "httpapi")
	return s, nil
}

// Handler builds the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLog(), corsMiddleware())

	router.GET("/", s.handleHealth)

	router.POST("/bots", s.handleCreateBot)
	router.GET("/bots", s.handleListBots)
	router.GET("/bots/:id", s.handleGetBot)
	router.DELETE("/bots/:id", s.handleDeleteBot)
	router.GET("/bots/:id/status", s.handleBotStatus)
	router.POST("/bots/:id/documents", s.handleUploadDocument)

	router.POST("/chat/stream", s.handleChatStream)
	router.GET("/chat/history/:sessionId", s.handleChatHistory)
	router.GET("/chat/latest/:sessionId", s.handleLatestMessage)
	router.DELETE("/chat/history/:sessionId", s.handleClearHistory)

	return router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ragchat api is running"})
}

// requestLog logs each completed request with its status and latency.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// corsMiddleware allows browser clients from any origin, mirroring a
// permissive development CORS policy.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Header("Access-Control-Expose-Headers", "X-Session-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// ErrIncompleteServer is returned when NewServer is missing a component.
var ErrIncompleteServer = errors.New("httpapi: registry, pipeline, engine, and memory are all required")
