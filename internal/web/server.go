// Package web exposes the planner and agent over HTTP. Transport only:
// every decision of consequence happens in pkg/cookdex.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cookdex/cookdex/internal/logger"
	"github.com/cookdex/cookdex/pkg/cookdex"
	"github.com/cookdex/cookdex/pkg/cookdex/agent"
)

// Planner is the slice of the facade the handlers need.
type Planner interface {
	Plan(ctx context.Context, req cookdex.PlanRequest) (cookdex.PlanResponse, error)
}

// Agent handles free-text chat messages.
type Agent interface {
	Handle(ctx context.Context, message string) (agent.Reply, error)
}

// Server wires routes to the planner.
type Server struct {
	router  *gin.Engine
	planner Planner
	agent   Agent
	log     *logger.Logger
}

// NewServer builds the HTTP server.
func NewServer(planner Planner, chatAgent Agent, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{router: router, planner: planner, agent: chatAgent, log: log}

	router.GET("/health", s.handleHealth)
	router.POST("/plan", s.handlePlan)
	router.POST("/chat", s.handleChat)

	return s
}

// Handler returns the root HTTP handler, for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info("listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
