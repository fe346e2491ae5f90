package server

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// orderHosts sorts hosts by priority for the default allowed-origin list:
// custom hostnames first, then localhost, then bare IPs.
func orderHosts(hosts map[string]string) []string {
	var hostnames, localhosts, ips []string
	for host := range hosts {
		switch {
		case host == "localhost":
			localhosts = append(localhosts, host)
		case net.ParseIP(host) != nil:
			ips = append(ips, host)
		default:
			hostnames = append(hostnames, host)
		}
	}
	sort.Strings(hostnames)
	sort.Strings(localhosts)
	sort.Strings(ips)

	result := make([]string, 0, len(hosts))
	result = append(result, hostnames...)
	result = append(result, localhosts...)
	result = append(result, ips...)
	return result
}

// allowedOrigins returns the WebSocket origins this server accepts upgrade
// requests from, from WEBSOCKET_ALLOWED_ORIGINS or a localhost default on
// the server's own listening port.
func (s *Server) allowedOrigins() []string {
	if origins := os.Getenv("WEBSOCKET_ALLOWED_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}

	hosts := map[string]string{"localhost": "localhost", "127.0.0.1": "127.0.0.1"}
	port := "8080"
	if s.addr != "" {
		if host, p, err := net.SplitHostPort(s.addr); err == nil {
			if host != "" {
				hosts[host] = host
			}
			if p != "" {
				port = p
			}
		}
	}

	var addrs []string
	for _, host := range orderHosts(hosts) {
		addrs = append(addrs, fmt.Sprintf("http://%s:%s", host, port))
		addrs = append(addrs, fmt.Sprintf("https://%s:%s", host, port))
	}
	return addrs
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if strings.TrimSpace(a) == origin {
			return true
		}
	}
	return false
}

func (s *Server) upgrader() *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true // non-browser clients (curl, bots) send no Origin header
			}
			allowed := originAllowed(origin, s.allowedOrigins())
			if !allowed {
				logrus.WithField("origin", origin).Warn("spectator connection rejected: origin not allowed")
			}
			return allowed
		},
	}
}

// observer is one connected spectator's outbound message queue. Writes to
// the underlying connection are serialized through send, since
// gorilla/websocket forbids concurrent writers.
type observer struct {
	conn *websocket.Conn
	send chan []byte
}

// hub fans out Snapshot broadcasts to every connected observer. There is
// no inbound message handling: a spectator connection is read-only, so the
// hub only ever writes.
type hub struct {
	mu        sync.RWMutex
	observers map[*observer]bool
	metrics   *Metrics
}

func newHub(metrics *Metrics) *hub {
	return &hub{observers: make(map[*observer]bool), metrics: metrics}
}

func (h *hub) register(o *observer) {
	h.mu.Lock()
	h.observers[o] = true
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.RecordConnection("connected")
	}
}

func (h *hub) unregister(o *observer) {
	h.mu.Lock()
	if _, ok := h.observers[o]; ok {
		delete(h.observers, o)
		close(o.send)
	}
	h.mu.Unlock()
	if h.metrics != nil {
		h.metrics.RecordConnection("disconnected")
	}
}

// broadcast enqueues frame to every observer's send channel, dropping it
// (rather than blocking) for any observer whose queue is already full.
func (h *hub) broadcast(frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for o := range h.observers {
		select {
		case o.send <- frame:
			if h.metrics != nil {
				h.metrics.RecordSnapshot("sent")
			}
		default:
			if h.metrics != nil {
				h.metrics.RecordSnapshot("dropped")
			}
		}
	}
}

// serveObserver upgrades r to a WebSocket, registers the connection with
// the hub, and pumps queued frames to it until it disconnects.
func (s *Server) serveObserver(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("spectator upgrade failed")
		return
	}

	o := &observer{conn: conn, send: make(chan []byte, 16)}
	s.hub.register(o)

	go s.pumpObserver(o)
}

func (s *Server) pumpObserver(o *observer) {
	defer func() {
		s.hub.unregister(o)
		o.conn.Close()
	}()

	// Discard anything the client sends (ping/pong keepalives aside); a
	// spectator connection carries no commands. This goroutine's real job
	// is detecting disconnects so the hub stops queuing frames for it.
	go func() {
		for {
			if _, _, err := o.conn.NextReader(); err != nil {
				o.conn.Close()
				return
			}
		}
	}()

	for frame := range o.send {
		if err := o.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
}

// marshalSnapshot is split out so Broadcast's error path is
// testable without a live connection.
func marshalSnapshot(snap Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}
