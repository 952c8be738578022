// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package server exposes the orchestrator over HTTP.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/orchestrator"
)

type chatRequest struct {
	Text      string `json:"text" binding:"required"`
	SessionID string `json:"session_id"`
}

// Handler serves the chat API
type Handler struct {
	orch *orchestrator.Orchestrator
}

func NewHandler(orch *orchestrator.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Router builds the gin engine with the chat routes
func (h *Handler) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/chat", h.handleChat)

	return router
}

func (h *Handler) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if req.SessionID == "" {
		req.SessionID = "default"
	}

	result := h.orch.Process(c.Request.Context(), req.Text, req.SessionID)
	c.JSON(http.StatusOK, result)
}

// Run starts the HTTP server on the given address
func (h *Handler) Run(addr string) error {
	log.Info().Str("addr", addr).Msg("starting chat server")
	return h.Router().Run(addr)
}
