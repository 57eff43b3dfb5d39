// Package relay implements the viewer side of the leaderboard channel:
// a push consumer with automatic reconnect that falls back to polling
// the pull endpoint while the push channel is down.
package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/cocobridge/penguinhop/internal/logger"
	"github.com/cocobridge/penguinhop/internal/score"
)

type State int32

const (
	Disconnected State = iota
	Connecting
	Live
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Live:
		return "live"
	default:
		return "disconnected"
	}
}

type Config struct {
	// ServerURL is the portal base URL, e.g. "http://127.0.0.1:8080".
	ServerURL string
	// OnUpdate receives every ranked view as a complete snapshot that
	// replaces the previous one.
	OnUpdate func([]score.RankedEntry)

	PushPath     string        // default /ws
	PullPath     string        // default /api/leaderboard
	RetryDelay   time.Duration // default 5s
	PollInterval time.Duration // default 15s

	HTTPClient *http.Client
	Dialer     *websocket.Dialer
}

type Consumer struct {
	cfg      Config
	state    atomic.Int32
	lastSeen atomic.Int64
}

func NewConsumer(cfg Config) *Consumer {
	if cfg.PushPath == "" {
		cfg.PushPath = "/ws"
	}
	if cfg.PullPath == "" {
		cfg.PullPath = "/api/leaderboard"
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 15 * time.Second
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}
	return &Consumer{cfg: cfg}
}

func (c *Consumer) State() State {
	return State(c.state.Load())
}

// Run drives the consumer until ctx is cancelled: one immediate pull for
// a first snapshot, then a dial/read/retry loop. Reconnection never gives
// up; a lost channel degrades to polling, never to an error.
func (c *Consumer) Run(ctx context.Context) {
	defer c.state.Store(int32(Disconnected))

	c.pull(ctx)

	for ctx.Err() == nil {
		c.state.Store(int32(Connecting))
		if conn, err := c.dial(ctx); err == nil {
			c.state.Store(int32(Live))
			c.readLoop(ctx, conn)
		} else {
			logger.Debug("leaderboard channel dial failed", zap.Error(err))
		}
		c.state.Store(int32(Disconnected))

		if !c.wait(ctx) {
			return
		}
	}
}

func (c *Consumer) dial(ctx context.Context) (*websocket.Conn, error) {
	pushURL, err := channelURL(c.cfg.ServerURL, c.cfg.PushPath)
	if err != nil {
		return nil, err
	}
	conn, resp, err := c.cfg.Dialer.DialContext(ctx, pushURL, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}

func (c *Consumer) readLoop(ctx context.Context, conn *websocket.Conn) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer conn.Close()

	for {
		var msg struct {
			Type        string              `json:"type"`
			Leaderboard []score.RankedEntry `json:"leaderboard"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				logger.Debug("leaderboard channel lost", zap.Error(err))
			}
			return
		}
		if msg.Type == "leaderboard_update" {
			c.apply(msg.Leaderboard)
		}
	}
}

// wait sleeps one retry period, pulling a fresh view first when the
// displayed one has gone stale. Returns false once ctx is cancelled.
func (c *Consumer) wait(ctx context.Context) bool {
	if time.Since(time.Unix(0, c.lastSeen.Load())) >= c.cfg.PollInterval {
		c.pull(ctx)
	}

	timer := time.NewTimer(c.cfg.RetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Consumer) pull(ctx context.Context) {
	pullURL, err := url.JoinPath(c.cfg.ServerURL, c.cfg.PullPath)
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pullURL, nil)
	if err != nil {
		return
	}
	resp, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		logger.Debug("leaderboard pull failed", zap.Error(err))
		return
	}
	defer resp.Body.Close()

	var body struct {
		Status      int                 `json:"status"`
		Leaderboard []score.RankedEntry `json:"leaderboard"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Debug("error decoding leaderboard pull response", zap.Error(err))
		return
	}
	if body.Status != http.StatusOK {
		logger.Debug("leaderboard pull rejected", zap.Int("status", body.Status))
		return
	}
	c.apply(body.Leaderboard)
}

func (c *Consumer) apply(entries []score.RankedEntry) {
	c.lastSeen.Store(time.Now().UnixNano())
	if c.cfg.OnUpdate != nil {
		c.cfg.OnUpdate(entries)
	}
}

func channelURL(base, path string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = path
	return u.String(), nil
}
