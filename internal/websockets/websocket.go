package websockets

import (
	"sync"
	"time"

	"inventory/config"
	activityController "inventory/internal/controllers/activity"
	"inventory/internal/database"
	"inventory/internal/events"
	"inventory/internal/services"
	"inventory/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	PING_INTERVAL     = 30 * time.Second
	PONG_TIMEOUT      = 60 * time.Second
	WRITE_TIMEOUT     = 10 * time.Second
	MAX_MESSAGE_SIZE  = 64 * 1024
	SEND_CHANNEL_SIZE = 64

	SYSTEM_CHANNEL = "system"
)

type Message struct {
	ID        string             `json:"id"`
	Type      events.MessageType `json:"type"`
	Channel   string             `json:"channel,omitempty"`
	Action    string             `json:"action,omitempty"`
	UserID    string             `json:"userId,omitempty"`
	Data      map[string]any     `json:"data,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

func newMessage(messageType events.MessageType, channel, action string, data map[string]any) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      messageType,
		Channel:   channel,
		Action:    action,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// Client is one live-feed connection. Filter and status are shared between the read
// pump, the debounce timer and event fan-out, so they sit behind mutex.
type Client struct {
	ID         string
	UserID     uuid.UUID
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
	filter     types.ActivityFilter
	search     *debouncer
	closed     bool
	mutex      sync.Mutex
}

type Manager struct {
	hub      *Hub
	db       database.DB
	config   config.Config
	log      logger.Logger
	eventBus *events.EventBus
	auth     *services.AuthService
	activity activityController.ActivityControllerInterface
}

func New(
	db database.DB,
	eventBus *events.EventBus,
	config config.Config,
	auth *services.AuthService,
	activity activityController.ActivityControllerInterface,
) (*Manager, error) {
	log := logger.New("websockets")

	manager := &Manager{
		hub: &Hub{
			broadcast:  make(chan Message, SEND_CHANNEL_SIZE),
			register:   make(chan *Client),
			unregister: make(chan *Client),
			clients:    make(map[string]*Client),
		},
		db:       db,
		config:   config,
		log:      log,
		eventBus: eventBus,
		auth:     auth,
		activity: activity,
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(manager)

	manager.subscribeToActivityEvents()

	return manager, nil
}

func (m *Manager) newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:         uuid.New().String(),
		UserID:     uuid.Nil,
		Connection: conn,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
		search:     newDebouncer(time.Duration(m.config.ActivitySearchDebounceMs) * time.Millisecond),
	}
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := m.newClient(c)
	if err := client.sendAuthRequest(); err != nil {
		if err := c.Close(); err != nil {
			log.Er("failed to close connection", err)
		}
		return
	}

	m.hub.register <- client
	client.startAuthTimeout()
	defer func() {
		log.Info("Client disconnected", "clientID", client.ID)
		m.hub.unregister <- client
		if err := c.Close(); err != nil {
			log.Debug("connection already closed", "error", err)
		}
	}()

	go client.readPump()
	client.writePump()
}

func (c *Client) status() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.Status
}

// deliver queues message unless the client has been closed or its buffer is full.
func (c *Client) deliver(message Message) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.search.Stop()
	close(c.send)
}

func (c *Client) closeConnection() {
	if c.Connection == nil {
		return
	}
	_ = c.Connection.Close()
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister <- c
		c.closeConnection()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
		log.Er("failed to set read deadline", err, "clientID", c.ID)
	}
	c.Connection.SetPongHandler(func(string) error {
		if err := c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT)); err != nil {
			log.Er("failed to set read deadline in pong handler", err, "clientID", c.ID)
		}
		return nil
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
			) {
				log.Er("Unexpected close error", err, "clientID", c.ID)
			}
			break
		}

		message.ID = uuid.New().String()
		message.Timestamp = time.Now()

		c.routeMessage(message)
	}
}

func (c *Client) routeMessage(message Message) {
	log := c.Manager.log.Function("routeMessage")

	if message.Type == events.AUTH_RESPONSE {
		c.handleAuthResponse(message)
		return
	}

	if c.status() != STATUS_AUTHENTICATED {
		c.handleUnauthenticatedMessage(message)
		return
	}

	switch message.Type {
	case events.PING:
		c.deliver(newMessage(events.PONG, SYSTEM_CHANNEL, "pong", nil))
	case events.ACTIVITY_FILTER:
		c.handleActivityFilter(message)
	default:
		log.Warn("Unknown message type", "clientID", c.ID, "type", message.Type)
		c.deliver(newMessage(events.ERROR, SYSTEM_CHANNEL, "unknown_message", map[string]any{
			"reason": "Unknown message type",
		}))
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		c.closeConnection()
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline", err, "clientID", c.ID)
			}
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("WebSocket write error", err, "clientID", c.ID, "type", message.Type)
				return
			}

		case <-ticker.C:
			if err := c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT)); err != nil {
				log.Er("failed to set write deadline for ping", err, "clientID", c.ID)
			}
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (m *Manager) subscribeToActivityEvents() {
	log := m.log.Function("subscribeToActivityEvents")
	log.Info("Starting activity events subscription")

	m.eventBus.Subscribe(events.ACTIVITY_CHANNEL, func(event events.Event) error {
		if event.Type != events.ACTIVITY_LOGGED {
			return nil
		}

		m.BroadcastMessage(newMessage(events.ACTIVITY_LOGGED, string(events.ACTIVITY_CHANNEL), "logged", event.Data))
		return nil
	})
}

func (m *Manager) BroadcastMessage(message Message) {
	select {
	case m.hub.broadcast <- message:
	default:
		m.log.Function("BroadcastMessage").
			Warn("Broadcast channel is full, dropping message", "messageID", message.ID)
	}
}

// refreshAuthenticatedClients re-runs each client's current filter and pushes the page.
// The hub calls it after relaying activity_logged, so the notice reaches clients first.
func (m *Manager) refreshAuthenticatedClients() {
	for _, client := range m.hub.authenticatedClients() {
		m.pushActivity(client)
	}
}
