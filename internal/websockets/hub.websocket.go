package websockets

import (
	"sync"

	"inventory/internal/events"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
)

type Hub struct {
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			client.close()
			m.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message, m)
			if message.Type == events.ACTIVITY_LOGGED {
				go m.refreshAuthenticatedClients()
			}
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	m.hub.clients[client.ID] = client

	m.log.Function("registerClient").Info("Client registered", "clientID", client.ID)
}

func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()

	if _, ok := m.hub.clients[client.ID]; !ok {
		return
	}
	delete(m.hub.clients, client.ID)

	m.log.Function("unregisterClient").Info(
		"Client unregistered",
		"clientID", client.ID,
		"userID", client.UserID,
	)
}

func (h *Hub) authenticatedClients() []*Client {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for _, client := range h.clients {
		if client.status() == STATUS_AUTHENTICATED {
			clients = append(clients, client)
		}
	}
	return clients
}

func (h *Hub) broadcastMessage(message Message, m *Manager) {
	log := m.log.Function("broadcastMessage")

	sentCount := 0
	clients := h.authenticatedClients()
	for _, client := range clients {
		if client.deliver(message) {
			sentCount++
		} else {
			log.Warn("Client send channel full, dropping message", "clientID", client.ID)
		}
	}

	log.Debug(
		"Broadcast complete",
		"messageID", message.ID,
		"sentTo", sentCount,
		"authenticatedClients", len(clients),
	)
}
