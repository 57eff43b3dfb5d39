package websocket

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cocobridge/penguinhop/internal/score"
)

type fakeConn struct {
	mu       sync.Mutex
	messages []LeaderboardUpdate
	writeErr error
	closed   bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if msg, ok := v.(*LeaderboardUpdate); ok {
		f.messages = append(f.messages, *msg)
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) sent() []LeaderboardUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]LeaderboardUpdate{}, f.messages...)
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type stubSource struct {
	mu      sync.Mutex
	entries []score.RankedEntry
	err     error
	calls   int
}

func (s *stubSource) TopRanked(ctx context.Context, limit int) ([]score.RankedEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func (s *stubSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSource) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = 0
}

func TestHubRegisterPushesSnapshot(t *testing.T) {
	source := &stubSource{entries: []score.RankedEntry{{UserID: "0xA", BestScore: 500}}}
	hub := NewHub(source, 10)

	conn := &fakeConn{}
	hub.Register(conn)

	messages := conn.sent()
	assert.Len(t, messages, 1)
	assert.Equal(t, "leaderboard_update", messages[0].Type)
	assert.Equal(t, "0xA", messages[0].Leaderboard[0].UserID)
	assert.Equal(t, 1, hub.ViewerCount())
}

func TestHubNotifyChangeFansOutIdenticalPayload(t *testing.T) {
	source := &stubSource{entries: []score.RankedEntry{{UserID: "0xA", BestScore: 500}}}
	hub := NewHub(source, 10)

	conns := []*fakeConn{{}, {}, {}}
	for _, conn := range conns {
		hub.Register(conn)
	}
	source.reset()

	hub.NotifyChange()

	assert.Equal(t, 1, source.callCount(), "ranked view must be computed once per change")
	first := conns[0].sent()
	assert.Len(t, first, 2)
	for _, conn := range conns[1:] {
		messages := conn.sent()
		assert.Len(t, messages, 2)
		assert.Equal(t, first[1], messages[1])
	}
}

func TestHubNotifyChangeIsolatesFailingViewer(t *testing.T) {
	source := &stubSource{entries: []score.RankedEntry{{UserID: "0xA", BestScore: 500}}}
	hub := NewHub(source, 10)

	healthy1 := &fakeConn{}
	healthy2 := &fakeConn{}
	hub.Register(healthy1)
	hub.Register(healthy2)

	failing := &fakeConn{writeErr: errors.New("broken pipe")}
	viewer := &Viewer{conn: failing}
	hub.mu.Lock()
	hub.viewers[viewer] = struct{}{}
	hub.mu.Unlock()

	hub.NotifyChange()

	assert.Len(t, healthy1.sent(), 2)
	assert.Len(t, healthy2.sent(), 2)
	assert.True(t, failing.isClosed())
	assert.Equal(t, 2, hub.ViewerCount())
}

func TestHubNotifyChangeSourceErrorSendsNothing(t *testing.T) {
	source := &stubSource{entries: []score.RankedEntry{{UserID: "0xA", BestScore: 500}}}
	hub := NewHub(source, 10)

	conn := &fakeConn{}
	hub.Register(conn)

	source.mu.Lock()
	source.err = errors.New("db down")
	source.mu.Unlock()

	hub.NotifyChange()

	assert.Len(t, conn.sent(), 1, "only the registration snapshot")
	assert.Equal(t, 1, hub.ViewerCount(), "viewer stays connected on source failure")
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	source := &stubSource{}
	hub := NewHub(source, 10)

	conn := &fakeConn{}
	viewer := hub.Register(conn)

	hub.Unregister(viewer)
	hub.Unregister(viewer)

	assert.True(t, conn.isClosed())
	assert.Equal(t, 0, hub.ViewerCount())
}

func TestHubShutdownClosesAllViewers(t *testing.T) {
	source := &stubSource{}
	hub := NewHub(source, 10)

	conns := []*fakeConn{{}, {}}
	for _, conn := range conns {
		hub.Register(conn)
	}

	hub.Shutdown()

	assert.Equal(t, 0, hub.ViewerCount())
	for _, conn := range conns {
		assert.True(t, conn.isClosed())
	}
}
