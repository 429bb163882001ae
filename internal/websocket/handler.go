package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches an upgraded connection to the hub as a watcher of one
// briefing instance.
func ServeWs(hub *Hub, c *websocket.Conn, briefingID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, BriefingID: briefingID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump()
}
