package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/internalerr"
)

type planRequest struct {
	Pantry  string   `json:"pantry"`
	Exclude []string `json:"exclude"`
	TopK    int      `json:"top_k"`
	Strict  *bool    `json:"strict"`
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePlan(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Pantry) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pantry must not be empty"})
		return
	}

	strict := true
	if req.Strict != nil {
		strict = *req.Strict
	}

	resp, err := s.planner.Plan(c.Request.Context(), cookdex.PlanRequest{
		Query:   req.Pantry,
		Exclude: req.Exclude,
		TopK:    req.TopK,
		Strict:  strict,
	})
	if err != nil {
		s.log.Error("plan failed", "error", err)
		c.JSON(failureStatus(err), gin.H{"error": failureMessage(err)})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}
	if s.agent == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "chat is not configured"})
		return
	}

	reply, err := s.agent.Handle(c.Request.Context(), req.Message)
	if err != nil {
		s.log.Error("chat failed", "error", err)
		c.JSON(failureStatus(err), gin.H{"error": failureMessage(err)})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// failureStatus separates deployment mistakes from upstream trouble.
func failureStatus(err error) int {
	if errors.Is(err, internalerr.ErrMissingCredential) {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

func failureMessage(err error) string {
	if errors.Is(err, internalerr.ErrMissingCredential) {
		return "service is not configured for its document source"
	}
	return "catalog unavailable"
}
