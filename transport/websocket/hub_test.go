package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/boards"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/service"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/session"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()

	catalog, err := boards.NewManager("")
	if err != nil {
		t.Fatalf("Failed to create board catalog: %v", err)
	}
	registry := session.NewRegistry(zap.NewNop())
	svc := service.NewGameService(registry, catalog, session.ImmediateScheduler{}, zap.NewNop(), service.Config{})

	hub := NewHub(svc, zap.NewNop())
	svc.SetNotifier(hub)
	return hub
}

func TestNewHub(t *testing.T) {
	hub := newTestHub(t)

	if hub.rooms == nil {
		t.Error("Hub rooms map is nil")
	}
	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{
		hub:    hub,
		roomID: "test-room",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.rooms["test-room"]; !exists {
		t.Error("Room was not created")
	}
	if !hub.rooms["test-room"][client] {
		t.Error("Client was not registered in room")
	}
	if len(hub.rooms["test-room"]) != 1 {
		t.Errorf("Expected 1 client in room, got %d", len(hub.rooms["test-room"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := newTestHub(t)

	client := &Client{
		hub:    hub,
		roomID: "test-room",
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.rooms["test-room"]; exists {
		t.Error("Room should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsInRoom(t *testing.T) {
	hub := newTestHub(t)
	roomID := "multi-client-room"

	client1 := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	client2 := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.rooms[roomID]) != 2 {
		t.Errorf("Expected 2 clients in room, got %d", len(hub.rooms[roomID]))
	}

	hub.unregisterClient(client1)

	if len(hub.rooms[roomID]) != 1 {
		t.Errorf("Expected 1 client remaining in room, got %d", len(hub.rooms[roomID]))
	}
	if !hub.rooms[roomID][client2] {
		t.Error("client2 should still be registered")
	}
}

func TestHubDispatchBroadcastsToRoom(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()
	roomID := "-100500"

	client := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	hub.register <- client

	cmd, _ := json.Marshal(Command{Action: "newgame", PlayerID: "u1", PlayerName: "Alice"})
	hub.dispatch(client, cmd)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.RoomID != roomID {
			t.Errorf("Expected roomID %s, got %s", roomID, message.RoomID)
		}
		if message.Event != "game_created" {
			t.Errorf("Expected event 'game_created', got %s", message.Event)
		}

	case <-time.After(time.Second):
		t.Error("No message received within timeout")
	}
}

func TestHubDispatchErrorsGoToSender(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()
	roomID := "-100501"

	sender := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	other := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	hub.register <- sender
	hub.register <- other

	// No game exists in the room, so join must fail.
	cmd, _ := json.Marshal(Command{Action: "join", PlayerID: "u1", PlayerName: "Alice"})
	hub.dispatch(sender, cmd)

	select {
	case data := <-sender.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != "error" {
			t.Errorf("Expected event 'error', got %s", message.Event)
		}

	case <-time.After(time.Second):
		t.Error("No error received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Error event leaked to another client")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubRollProducesMoveEvent(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()
	roomID := "-100502"

	client := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	hub.register <- client

	commands := []Command{
		{Action: "newgame", PlayerID: "admin", PlayerName: "Admin"},
		{Action: "join", PlayerID: "admin", PlayerName: "Admin"},
		{Action: "begin", PlayerID: "admin"},
		{Action: "roll", PlayerID: "admin"},
	}
	for _, cmd := range commands {
		raw, _ := json.Marshal(cmd)
		hub.dispatch(client, raw)
	}

	// With the immediate scheduler the roll commits synchronously, so the
	// stream holds the lifecycle events plus "move" and "roll_staged" in
	// scheduler order.
	events := map[string]bool{}
	deadline := time.After(time.Second)
	for len(events) < 5 {
		select {
		case data := <-client.send:
			var message Message
			if err := json.Unmarshal(data, &message); err != nil {
				t.Fatalf("Failed to unmarshal message: %v", err)
			}
			if message.Event == "error" {
				t.Fatalf("Unexpected error event: %v", message.Data)
			}
			events[message.Event] = true
		case <-deadline:
			t.Fatalf("Timed out waiting for events, got %v", events)
		}
	}

	for _, want := range []string{"game_created", "player_joined", "game_started", "roll_staged", "move"} {
		if !events[want] {
			t.Errorf("Missing event %q in %v", want, events)
		}
	}
}

func TestHubForwardedRollIgnored(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()
	roomID := "-100503"

	client := &Client{
		hub:    hub,
		roomID: roomID,
		send:   make(chan []byte, 256),
	}
	hub.register <- client

	setup := []Command{
		{Action: "newgame", PlayerID: "admin", PlayerName: "Admin"},
		{Action: "join", PlayerID: "admin", PlayerName: "Admin"},
		{Action: "begin", PlayerID: "admin"},
	}
	for _, cmd := range setup {
		raw, _ := json.Marshal(cmd)
		hub.dispatch(client, raw)
	}
	for i := 0; i < 3; i++ {
		<-client.send
	}

	raw, _ := json.Marshal(Command{Action: "roll", PlayerID: "admin", Forwarded: true})
	hub.dispatch(client, raw)

	// A forwarded roll produces no events at all, neither a stage nor an
	// error, and moves nobody.
	select {
	case data := <-client.send:
		var message Message
		json.Unmarshal(data, &message)
		t.Fatalf("Unexpected event %q for a forwarded roll: %v", message.Event, message.Data)
	case <-time.After(100 * time.Millisecond):
	}

	raw, _ = json.Marshal(Command{Action: "status", PlayerID: "admin"})
	hub.dispatch(client, raw)

	select {
	case data := <-client.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != "status" {
			t.Fatalf("Expected status event, got %s: %v", message.Event, message.Data)
		}
		payload, _ := json.Marshal(message.Data)
		var info service.StatusInfo
		if err := json.Unmarshal(payload, &info); err != nil {
			t.Fatalf("Failed to decode status payload: %v", err)
		}
		for _, p := range info.Status.Players {
			if p.Position != 0 {
				t.Errorf("Forwarded roll moved player %s to %d", p.ID, p.Position)
			}
		}
	case <-time.After(time.Second):
		t.Fatal("No status event received")
	}
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		if roomID == "" {
			roomID = "default"
		}
		hub.ServeWS(w, r, roomID)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?room=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	// Give some time for registration
	time.Sleep(50 * time.Millisecond)

	if len(hub.rooms["ws-test"]) != 1 {
		t.Errorf("Expected 1 client in room, got %d", len(hub.rooms["ws-test"]))
	}

	conn.Close()

	// Give some time for unregistration
	time.Sleep(10 * time.Millisecond)

	if _, exists := hub.rooms["ws-test"]; exists {
		t.Error("Room should have been cleaned up after WebSocket close")
	}
}

func TestWebSocketCommandRoundTrip(t *testing.T) {
	hub := newTestHub(t)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("room"))
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?room=-200100"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	cmd, _ := json.Marshal(Command{Action: "newgame", PlayerID: "u1", PlayerName: "Alice"})
	if err := conn.WriteMessage(websocket.TextMessage, cmd); err != nil {
		t.Fatalf("Failed to send command: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(raw, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.Event != "game_created" {
		t.Errorf("Expected event 'game_created', got %s", message.Event)
	}
	if message.RoomID != "-200100" {
		t.Errorf("Expected room -200100, got %s", message.RoomID)
	}
}
