// Package server exposes a read-only spectator feed for an in-progress
// run: the one live Engine broadcasts JSON snapshots over WebSocket to
// any number of connected observers after each turn, alongside
// Prometheus metrics and a health endpoint.
//
// # Architecture
//
// There is exactly one authoritative Engine, owned and mutated by the
// CLI command loop in cmd/dungeoncrawler. This package never mutates
// game state; it only serializes it. That asymmetry is why there is no
// session/auth/JSON-RPC dispatch layer here: a spectator has nothing to
// send but its own disconnect.
//
//	srv := server.NewServer(":8080")
//	go srv.ListenAndServe()
//	defer srv.Shutdown(context.Background())
//	srv.Broadcast(server.SnapshotFrom(engine, "you hit the rat"))
//
// # Endpoints
//
//   - GET /ws: upgrades to a WebSocket and streams Snapshot JSON frames
//   - GET /healthz: liveness/readiness JSON per HealthChecker
//   - GET /metrics: Prometheus exposition format
//
// # Environment Variables
//
//   - WEBSOCKET_ALLOWED_ORIGINS: comma-separated allowed Origin headers
//     for the WebSocket upgrade (default: localhost/127.0.0.1 on the
//     server's own port)
package server
