package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message is an outbound WebSocket frame: an event for one room.
type Message struct {
	RoomID string      `json:"room_id"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data,omitempty"`
}

// Command is an inbound WebSocket frame: a room command from a client.
// Forwarded marks a roll relayed from another chat; forwarded rolls are
// ignored so a relay cannot move a player twice.
type Command struct {
	Action     string `json:"action"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
	Key        string `json:"key,omitempty"`
	Enabled    bool   `json:"enabled,omitempty"`
	Forwarded  bool   `json:"forwarded,omitempty"`
}

// Client represents a WebSocket client
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	roomID string
}

// Hub maintains the set of active clients per room, dispatches their
// commands to the game service, and broadcasts results back to the room.
type Hub struct {
	service service.GameService
	logger  *zap.Logger

	// Registered clients by room ID
	rooms map[string]map[*Client]bool

	// Inbound messages for broadcast
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub(svc service.GameService, logger *zap.Logger) *Hub {
	return &Hub{
		service:    svc,
		logger:     logger,
		rooms:      make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, 256),
		roomID: roomID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// MoveCommitted implements service.MoveNotifier: a roll resolved after its
// delay, so push the outcome to everyone in the room.
func (h *Hub) MoveCommitted(outcome *service.MoveOutcome) {
	h.BroadcastEvent(outcome.RoomID, "move", outcome)
}

// BroadcastEvent sends an event to all clients in a room.
func (h *Hub) BroadcastEvent(roomID string, event string, data interface{}) {
	message := &Message{
		RoomID: roomID,
		Event:  event,
		Data:   data,
	}

	h.broadcast <- message
}

// registerClient adds a client to a room
func (h *Hub) registerClient(client *Client) {
	if h.rooms[client.roomID] == nil {
		h.rooms[client.roomID] = make(map[*Client]bool)
	}
	h.rooms[client.roomID][client] = true

	h.logger.Debug("client registered",
		zap.String("room", client.roomID),
		zap.Int("clients", len(h.rooms[client.roomID])))
}

// unregisterClient removes a client from a room
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.rooms[client.roomID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty rooms
			if len(clients) == 0 {
				delete(h.rooms, client.roomID)
			}

			h.logger.Debug("client unregistered",
				zap.String("room", client.roomID),
				zap.Int("clients", len(clients)))
		}
	}
}

// broadcastMessage sends a message to all clients in a room
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Warn("failed to marshal broadcast message", zap.Error(err))
		return
	}

	if clients, ok := h.rooms[message.RoomID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// dispatch runs one client command against the game service and broadcasts
// the result. Errors go back to the issuing client only.
func (h *Hub) dispatch(client *Client, raw []byte) {
	var cmd Command
	if err := json.Unmarshal(raw, &cmd); err != nil {
		h.sendError(client, "malformed command")
		return
	}

	ctx := context.Background()
	roomID := client.roomID

	var (
		event  string
		result interface{}
		err    error
	)

	switch cmd.Action {
	case "newgame":
		event = "game_created"
		result, err = h.service.NewGame(ctx, roomID, cmd.PlayerID, cmd.PlayerName)
	case "join":
		event = "player_joined"
		result, err = h.service.Join(ctx, roomID, cmd.PlayerID, cmd.PlayerName)
	case "leave":
		event = "player_left"
		err = h.service.Leave(ctx, roomID, cmd.PlayerID)
		result = cmd.PlayerID
	case "begin":
		event = "game_started"
		result, err = h.service.Begin(ctx, roomID, cmd.PlayerID)
	case "roll":
		// The committed move arrives later as a "move" event.
		event = "roll_staged"
		receipt, rollErr := h.service.Roll(ctx, roomID, cmd.PlayerID, cmd.Forwarded)
		if rollErr == nil && receipt == nil {
			// Forwarded roll, ignored without a reply.
			return
		}
		result, err = receipt, rollErr
	case "skip":
		event = "turn_skipped"
		result, err = h.service.Skip(ctx, roomID)
	case "kill":
		event = "game_killed"
		err = h.service.Kill(ctx, roomID, cmd.PlayerID)
	case "status":
		event = "status"
		result, err = h.service.Status(ctx, roomID)
	case "setting":
		event = "settings_updated"
		result, err = h.service.UpdateSetting(ctx, roomID, cmd.PlayerID, cmd.Key, cmd.Enabled)
	default:
		h.sendError(client, "unknown action: "+cmd.Action)
		return
	}

	if err != nil {
		h.sendError(client, err.Error())
		return
	}

	h.BroadcastEvent(roomID, event, result)
}

// sendError delivers an error event to a single client.
func (h *Hub) sendError(client *Client, text string) {
	data, err := json.Marshal(&Message{
		RoomID: client.roomID,
		Event:  "error",
		Data:   text,
	})
	if err != nil {
		return
	}

	select {
	case client.send <- data:
	default:
	}
}

// readPump pumps commands from the WebSocket connection to the dispatcher
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.Error(err))
			}
			break
		}
		c.hub.dispatch(c, raw)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
