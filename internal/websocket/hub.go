package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rafasilcos/arcflowapp-sub007/internal/pkg/logger"
)

const clusterChannel = "briefing_events"

// ProgressEvent is what watchers of a briefing receive after every flush.
type ProgressEvent struct {
	BriefingId      uuid.UUID `json:"briefing_id"`
	Progresso       int       `json:"progresso"`
	SecoesCompletas []string  `json:"secoes_completas"`
	Status          string    `json:"status"`
}

// Hub fans briefing progress events out to connected watchers. Clients
// subscribe per briefing; Redis pub/sub relays events across instances so a
// watcher connected elsewhere still sees flushes that happened here.
type Hub struct {
	// Watchers map: BriefingID -> connected clients
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.BriefingID] = append(h.clients[client.BriefingID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Watcher registered", map[string]interface{}{"briefing_id": client.BriefingID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.BriefingID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.BriefingID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.BriefingID]) == 0 {
					delete(h.clients, client.BriefingID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PushProgress delivers a progress event to every watcher of the briefing,
// locally and on the other instances via Redis.
func (h *Hub) PushProgress(event ProgressEvent) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "progresso",
		"data": event,
	})

	h.deliver(event.BriefingId, data)

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"briefing_id": event.BriefingId.String(),
			"message":     data,
		})
		h.rdb.Publish(context.Background(), clusterChannel, payload)
	}
}

func (h *Hub) deliver(briefingID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients := h.clients[briefingID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("Hub", "Watcher send buffer full, dropping connection", map[string]interface{}{
				"briefing_id": briefingID,
			})
			close(client.Send)
			h.unregister <- client
		}
	}
}

// subscribeToRedis relays events published by other instances to the local
// watchers of the same briefing.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	sub := h.rdb.Subscribe(ctx, clusterChannel)
	defer sub.Close()

	for msg := range sub.Channel() {
		var payload struct {
			BriefingId string          `json:"briefing_id"`
			Message    json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("Hub", "Malformed cluster event", map[string]interface{}{"error": err.Error()})
			continue
		}
		briefingID, err := uuid.Parse(payload.BriefingId)
		if err != nil {
			continue
		}
		h.deliver(briefingID, payload.Message)
	}
}
