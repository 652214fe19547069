package handler

import (
	"context"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/aleramosAR/Autenticacion-1/internal/realtime"
)

// RealtimeHandler upgrades GET /ws to a websocket and attaches the
// connection to the hub. The route itself is api-gated, so only
// authenticated clients reach the upgrade.
type RealtimeHandler struct {
	hub *realtime.Hub
	log zerolog.Logger
}

func NewRealtimeHandler(hub *realtime.Hub, log zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, log: log}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func (h *RealtimeHandler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := realtime.NewClient(h.hub, conn, h.log)
	h.hub.Register(client)

	// The request context dies when this handler returns; the connection
	// outlives it, so the pumps run on their own context.
	go client.WritePump()
	go client.ReadPump(context.Background())
	return nil
}
