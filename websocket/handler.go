package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cocobridge/penguinhop/internal/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler upgrades a viewer connection and registers it with the hub.
func Handler(hub *Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", zap.Error(err))
			return err
		}

		logger.Info("viewer connected", zap.String("remote", c.RealIP()))
		viewer := hub.Register(ws)
		go listenViewer(hub, viewer, ws)
		return nil
	}
}

// listenViewer drains frames until the transport drops. Viewers send no
// application messages; the read loop exists to detect disconnects.
func listenViewer(hub *Hub, viewer *Viewer, conn *websocket.Conn) {
	defer func() {
		logger.Info("viewer disconnected")
		hub.Unregister(viewer)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
