package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/score"
)

// LeaderboardUpdate is the only server-to-client message: a complete
// ranked-view snapshot, applied by full replacement on the client.
type LeaderboardUpdate struct {
	Type        string              `json:"type"`
	Leaderboard []score.RankedEntry `json:"leaderboard"`
}

const updateType = "leaderboard_update"

// LeaderboardSource computes the ranked view pushed to viewers.
type LeaderboardSource interface {
	TopRanked(ctx context.Context, limit int) ([]score.RankedEntry, error)
}

// Conn is the subset of *websocket.Conn the hub needs, so tests can
// register fake connections.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Viewer is one connected leaderboard watcher. Writes are serialized per
// connection.
type Viewer struct {
	conn   Conn
	connMu sync.Mutex
}

func (v *Viewer) send(msg *LeaderboardUpdate) error {
	v.connMu.Lock()
	defer v.connMu.Unlock()
	return v.conn.WriteJSON(msg)
}

// Hub owns the set of open viewer connections and fans the ranked view
// out to all of them whenever scores change. One hub per process,
// injected into the ingestion path.
type Hub struct {
	source LeaderboardSource
	limit  int

	mu      sync.RWMutex
	viewers map[*Viewer]struct{}
}

func NewHub(source LeaderboardSource, limit int) *Hub {
	return &Hub{
		source:  source,
		limit:   limit,
		viewers: make(map[*Viewer]struct{}),
	}
}

// Register adds a viewer to the broadcast set and immediately pushes the
// current ranked view so new viewers do not wait for the next score.
func (h *Hub) Register(conn Conn) *Viewer {
	viewer := &Viewer{conn: conn}
	h.mu.Lock()
	h.viewers[viewer] = struct{}{}
	h.mu.Unlock()

	msg, err := h.snapshot()
	if err != nil {
		logger.Error("error computing leaderboard snapshot", zap.Error(err))
		return viewer
	}
	if err := viewer.send(msg); err != nil {
		logger.Warn("error sending snapshot to new viewer", zap.Error(err))
		h.Unregister(viewer)
	}
	return viewer
}

// Unregister removes a viewer and closes its connection. Safe to call
// more than once for the same viewer.
func (h *Hub) Unregister(viewer *Viewer) {
	h.mu.Lock()
	_, open := h.viewers[viewer]
	delete(h.viewers, viewer)
	h.mu.Unlock()

	if open {
		viewer.conn.Close()
	}
}

// NotifyChange recomputes the ranked view exactly once and sends the
// identical message to every open viewer. A failed send closes only the
// failing viewer; the caller never sees a delivery error.
func (h *Hub) NotifyChange() {
	msg, err := h.snapshot()
	if err != nil {
		logger.Error("error computing leaderboard update", zap.Error(err))
		return
	}

	for _, viewer := range h.openViewers() {
		if err := viewer.send(msg); err != nil {
			logger.Warn("error sending leaderboard update, dropping viewer", zap.Error(err))
			h.Unregister(viewer)
		}
	}
}

// Shutdown closes every open viewer connection.
func (h *Hub) Shutdown() {
	for _, viewer := range h.openViewers() {
		h.Unregister(viewer)
	}
}

func (h *Hub) ViewerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

func (h *Hub) snapshot() (*LeaderboardUpdate, error) {
	entries, err := h.source.TopRanked(context.Background(), h.limit)
	if err != nil {
		return nil, err
	}
	return &LeaderboardUpdate{Type: updateType, Leaderboard: entries}, nil
}

func (h *Hub) openViewers() []*Viewer {
	h.mu.RLock()
	defer h.mu.RUnlock()

	all := make([]*Viewer, 0, len(h.viewers))
	for viewer := range h.viewers {
		all = append(all, viewer)
	}
	return all
}
