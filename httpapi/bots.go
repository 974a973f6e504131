package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praxisworks/ragchat/core"
)

type createBotRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *Server) handleCreateBot(c *gin.Context) {
	var req createBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	bot, err := s.registry.Create(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		if errors.Is(err, core.ErrEmptyBotName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bot name cannot be empty"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bot)
}

func (s *Server) handleListBots(c *gin.Context) {
	list, err := s.registry.List(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleGetBot(c *gin.Context) {
	bot, err := s.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, bot)
}

func (s *Server) handleDeleteBot(c *gin.Context) {
	deleted, err := s.registry.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.internalError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bot deleted"})
}

func (s *Server) handleBotStatus(c *gin.Context) {
	bot, err := s.registry.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
			return
		}
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":              bot.Status,
		"processing_progress": bot.Progress,
		"error_message":       bot.ErrorMessage,
	})
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		s.internalError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.internalError(c, err)
		return
	}

	record, err := s.pipeline.Ingest(c.Request.Context(), c.Param("id"), data, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
		case errors.Is(err, core.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "bot is currently processing another document"})
		case errors.Is(err, core.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "document processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("document %q processed successfully", header.Filename),
		"document": record,
	})
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
