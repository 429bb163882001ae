package handler

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
	internalWS "github.com/rafasilcos/arcflowapp-sub007/internal/websocket"
)

// BriefingWsHandler upgrades watcher connections for live progress updates.
type BriefingWsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewBriefingWsHandler(hub *internalWS.Hub, log logger.ILogger) *BriefingWsHandler {
	return &BriefingWsHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *BriefingWsHandler) ServeWs(c *fiber.Ctx) error {
	// Token source priority: query param (browser), then Authorization header.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("BriefingWsHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	briefingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid briefing id"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("BriefingWsHandler", "Watcher session started", map[string]interface{}{"briefing_id": briefingID})
			internalWS.ServeWs(h.hub, conn, briefingID)
			h.logger.Info("BriefingWsHandler", "Watcher session ended", map[string]interface{}{"briefing_id": briefingID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *BriefingWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/briefings/v1/:id/ws", h.ServeWs)
}
