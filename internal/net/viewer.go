// Package net exposes the board on the LAN: a read-only websocket viewer
// plus mDNS advertisement so other machines can find it.
package net

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// viewerConn wraps one client connection with its own write lock; the
// websocket package allows at most one concurrent writer per connection.
type viewerConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *viewerConn) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Viewer is a one-way fan-out: every committed snapshot is pushed, as the
// board-file JSON, to all connected websocket clients. Viewers cannot send
// edits back; collaboration is out of scope.
type Viewer struct {
	log      *slog.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	conns  map[*viewerConn]bool
	latest []byte
}

func NewViewer(logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		log: logger,
		upgrader: websocket.Upgrader{
			// Local tool on a trusted LAN; any origin may watch.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: map[*viewerConn]bool{},
	}
}

// Handler returns the viewer's HTTP routes.
func (v *Viewer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", v.handleWatch)
	return mux
}

// Serve listens on the given port until the listener fails. Run it on its
// own goroutine.
func (v *Viewer) Serve(port int) error {
	addr := fmt.Sprintf(":%d", port)
	v.log.Info("viewer listening", "addr", addr)
	return http.ListenAndServe(addr, v.Handler())
}

func (v *Viewer) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := v.upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.log.Warn("viewer upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	vc := &viewerConn{conn: conn}

	// Catch the late joiner up before registering for broadcasts, so this
	// write can never interleave with a concurrent Broadcast to the same
	// connection; afterwards vc.send's lock serializes everything.
	v.mu.Lock()
	latest := v.latest
	v.mu.Unlock()
	if latest != nil {
		if err := vc.send(latest); err != nil {
			conn.Close()
			return
		}
	}

	v.mu.Lock()
	v.conns[vc] = true
	v.mu.Unlock()
	v.log.Info("viewer connected", "remote", conn.RemoteAddr().String())

	// Drain (and discard) client messages so pings are answered and
	// disconnects are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				v.drop(vc)
				return
			}
		}
	}()
}

func (v *Viewer) drop(vc *viewerConn) {
	v.mu.Lock()
	if v.conns[vc] {
		delete(v.conns, vc)
		vc.conn.Close()
		v.log.Info("viewer disconnected", "remote", vc.conn.RemoteAddr().String())
	}
	v.mu.Unlock()
}

// Broadcast pushes a snapshot to every connected viewer. Safe to call from
// any goroutine; write failures just drop that viewer.
func (v *Viewer) Broadcast(snapshot []byte) {
	v.mu.Lock()
	v.latest = snapshot
	conns := make([]*viewerConn, 0, len(v.conns))
	for c := range v.conns {
		conns = append(conns, c)
	}
	v.mu.Unlock()

	for _, c := range conns {
		if err := c.send(snapshot); err != nil {
			v.drop(c)
		}
	}
}
