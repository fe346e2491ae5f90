package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"rogue-core/pkg/engine"
)

// Server is the spectator feed's HTTP server: a WebSocket endpoint
// broadcasting Snapshot frames, a health endpoint, and a Prometheus
// metrics endpoint. It owns no game state of its own.
type Server struct {
	addr          string
	httpServer    *http.Server
	hub           *hub
	limiter       *RateLimiter
	metrics       *Metrics
	healthChecker *HealthChecker
	done          chan struct{}
}

// NewServer builds a Server ready to ListenAndServe. addr is recorded (not
// bound yet) so the origin-checking default can reflect the configured
// port.
func NewServer(addr string) *Server {
	s := &Server{
		addr:    addr,
		limiter: NewRateLimiter(),
		metrics: NewMetrics(),
		done:    make(chan struct{}),
	}
	s.hub = newHub(s.metrics)
	s.healthChecker = NewHealthChecker(s)

	mux := http.NewServeMux()
	mux.Handle("/ws", rateLimitMiddleware(s.limiter, http.HandlerFunc(s.serveObserver)))
	mux.HandleFunc("/healthz", s.healthChecker.HealthHandler)
	mux.Handle("/metrics", s.metrics.Handler())

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe starts the HTTP server; it blocks until Shutdown is
// called or the listener fails.
func (s *Server) ListenAndServe() error {
	logrus.WithField("addr", s.addr).Info("spectator feed listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting new spectators and closes the rate limiter's
// background goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.done)
	s.limiter.Close()
	return s.httpServer.Shutdown(ctx)
}

// Broadcast sends snap to every connected spectator. A marshal failure is
// logged and the frame is dropped rather than panicking the caller's turn
// loop.
func (s *Server) Broadcast(snap Snapshot) {
	frame, err := marshalSnapshot(snap)
	if err != nil {
		logrus.WithError(err).Error("failed to marshal spectator snapshot")
		return
	}
	s.hub.broadcast(frame)
}

// SnapshotFrom projects an Engine's current state into a Snapshot, the
// only view of game state this package is allowed to construct (spec §2
// "read-only spectator feed").
func SnapshotFrom(e *engine.Engine, message string) Snapshot {
	p := e.Player
	return Snapshot{
		RunID:        e.RunID,
		Timestamp:    time.Now(),
		Floor:        e.Floor.Level,
		PlayerX:      p.Pos.X,
		PlayerY:      p.Pos.Y,
		HP:           p.HP,
		MaxHP:        p.MaxHP,
		MP:           p.MP,
		MaxMP:        p.MaxMP,
		Level:        p.Level,
		Gold:         p.Gold,
		DeepestFloor: p.DeepestFloor,
		GameOver:     e.GameOver,
		DeathCause:   e.DeathCause,
		Message:      message,
	}
}
