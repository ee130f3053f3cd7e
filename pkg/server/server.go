// Package server exposes username lookups over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeGROOVE-dev/tglookup/pkg/report"
	"github.com/codeGROOVE-dev/tglookup/pkg/telegram"
)

const shutdownTimeout = 15 * time.Second

// Looker performs a username lookup. *telegram.Client satisfies it.
// A nil result is answered as a lookup where every fetch failed.
type Looker interface {
	Lookup(ctx context.Context, username string) *telegram.Result
}

// Server serves the lookup API.
type Server struct {
	looker    Looker
	assembler *report.Assembler
	logger    *slog.Logger
	handler   http.Handler
}

// New creates a Server.
func New(looker Looker, assembler *report.Assembler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		looker:    looker,
		assembler: assembler,
		logger:    logger,
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(s.requestID(), s.accessLog(), s.recovery())
	r.GET("/api", s.handleAPI)
	r.GET("/healthz", s.handleHealth)
	s.handler = r

	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down gracefully.
// Requests already running when ctx is canceled keep their upstream fetches and finish normally.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	base := context.WithoutCancel(ctx)
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return base },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve on %s: %w", ln.Addr(), err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(base, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// handleAPI always answers 200; every upstream failure is already degraded to defaults.
func (s *Server) handleAPI(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusOK, s.assembler.MissingUsername())
		return
	}

	res := s.looker.Lookup(ctx, username)
	env := s.assembler.Build(start, username, res)
	s.logger.InfoContext(ctx, "lookup complete",
		"request_id", RequestID(ctx),
		"username", username,
		"type", env.Data.Profile.ProfileType,
		"public", env.Data.Contacts.IsPublic,
		"processing_time", env.ProcessingTime,
	)
	c.JSON(http.StatusOK, env)
}

func (*Server) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
