package websocket

import (
	"encoding/json"
	"sync"
)

type BalanceUpdate struct {
	Balance string `json:"balance"`
}

type RosterUpdate struct {
	MatchID     string `json:"match_id"`
	PlayerCount int    `json:"player_count"`
	Capacity    int    `json:"capacity"`
}

type event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) BroadcastBalance(userID string, update BalanceUpdate) {
	h.broadcast(userID, event{Type: "wallet_balance", Data: update})
}

func (h *Hub) BroadcastRoster(userID string, update RosterUpdate) {
	h.broadcast(userID, event{Type: "match_roster", Data: update})
}

func (h *Hub) broadcast(userID string, ev event) {
	payload, _ := json.Marshal(ev)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// slow client, drop the update rather than block the sender
		}
	}
}
