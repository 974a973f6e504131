package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/praxisworks/ragchat/core"
)

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	BotID     string `json:"bot_id"`
}

// handleChatStream serves a chat turn as a server-sent event stream of
// `data:` frames terminated by a `[DONE]` sentinel. The response's
// X-Session-ID header carries the session the turn belongs to.
func (s *Server) handleChatStream(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	stream, err := s.engine.ChatStream(c.Request.Context(), req.BotID, req.SessionID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message cannot be empty"})
		case errors.Is(err, core.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "bot not found"})
		case errors.Is(err, core.ErrRetrieval):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "retrieval failed"})
		default:
			s.internalError(c, err)
		}
		return
	}

	c.Header("X-Session-ID", stream.SessionID())
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	for fragment := range stream.Fragments() {
		fmt.Fprintf(c.Writer, "data: %s\n\n", fragment)
		c.Writer.Flush()
	}
	if err := stream.Err(); err != nil {
		s.logger.Error("stream failed", "session_id", stream.SessionID(), "error", err)
		fmt.Fprint(c.Writer, "data: [ERROR]\n\n")
		c.Writer.Flush()
		return
	}
	fmt.Fprint(c.Writer, "data: [DONE]\n\n")
	c.Writer.Flush()
}

func (s *Server) handleChatHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")
	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"messages":   s.memory.History(sessionID),
	})
}

// handleLatestMessage returns the most recent assistant message, used by
// clients that poll for a finished response instead of consuming the stream.
func (s *Server) handleLatestMessage(c *gin.Context) {
	messages := s.memory.History(c.Param("sessionId"))
	if len(messages) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no messages found"})
		return
	}
	latest := messages[len(messages)-1]
	if latest.Role != core.RoleAssistant {
		c.JSON(http.StatusNotFound, gin.H{"error": "latest message is not from assistant"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": latest.Content})
}

func (s *Server) handleClearHistory(c *gin.Context) {
	s.memory.Clear(c.Param("sessionId"))
	c.JSON(http.StatusOK, gin.H{"message": "chat history cleared"})
}
