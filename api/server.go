package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ceda-EI/snakes-and-ladders-bot/game/engine"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/service"
	"github.com/Ceda-EI/snakes-and-ladders-bot/game/session"
	"github.com/Ceda-EI/snakes-and-ladders-bot/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Game lifecycle
	api.HandleFunc("/rooms/{id}/game", s.handleNewGame).Methods("POST")
	api.HandleFunc("/rooms/{id}/game", s.handleKillGame).Methods("DELETE")
	api.HandleFunc("/rooms/{id}/begin", s.handleBegin).Methods("POST")

	// Roster
	api.HandleFunc("/rooms/{id}/players", s.handleJoin).Methods("POST")
	api.HandleFunc("/rooms/{id}/players/{playerId}", s.handleLeave).Methods("DELETE")

	// Play
	api.HandleFunc("/rooms/{id}/roll", s.handleRoll).Methods("POST")
	api.HandleFunc("/rooms/{id}/skip", s.handleSkip).Methods("POST")

	// State
	api.HandleFunc("/rooms/{id}", s.handleStatus).Methods("GET")
	api.HandleFunc("/rooms/{id}/settings", s.handleUpdateSetting).Methods("PUT")
	api.HandleFunc("/rooms/{id}/greeting", s.handleGreeting).Methods("GET")

	// Boards
	api.HandleFunc("/boards", s.handleListBoards).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	// Health check
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the game's error kinds to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, engine.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrSessionExists),
		errors.Is(err, session.ErrGameInProgress),
		errors.Is(err, session.ErrRollPending),
		errors.Is(err, engine.ErrPlayerExists):
		status = http.StatusConflict
	case errors.Is(err, session.ErrNotAdmin),
		errors.Is(err, service.ErrGroupOnly):
		status = http.StatusForbidden
	}
	respondError(w, status, err.Error())
}

type playerRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name,omitempty"`
}

// Game Lifecycle Handlers

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.NewGame(r.Context(), roomID, req.PlayerID, req.PlayerName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleKillGame(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]
	playerID := r.URL.Query().Get("player")

	if err := s.service.Kill(r.Context(), roomID, playerID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Game killed",
	})
}

func (s *Server) handleBegin(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := s.service.Begin(r.Context(), roomID, req.PlayerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(roomID, "game_started", view)
	}

	respondJSON(w, http.StatusOK, view)
}

// Roster Handlers

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := s.service.Join(r.Context(), roomID, req.PlayerID, req.PlayerName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleLeave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := s.service.Leave(r.Context(), vars["id"], vars["playerId"]); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Player removed",
	})
}

// Play Handlers

func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req struct {
		PlayerID  string `json:"player_id"`
		Forwarded bool   `json:"forwarded"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	receipt, err := s.service.Roll(r.Context(), roomID, req.PlayerID, req.Forwarded)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Forwarded rolls are dropped without staging anything.
	if receipt == nil {
		respondJSON(w, http.StatusAccepted, map[string]string{
			"message": "Forwarded roll ignored",
		})
		return
	}

	// The move applies after the roll delay; clients get the outcome over
	// the WebSocket "move" event.
	respondJSON(w, http.StatusAccepted, receipt)
}

func (s *Server) handleSkip(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	info, err := s.service.Skip(r.Context(), roomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastEvent(roomID, "turn_skipped", info)
	}

	respondJSON(w, http.StatusOK, info)
}

// State Handlers

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	info, err := s.service.Status(r.Context(), roomID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	var req struct {
		PlayerID string `json:"player_id"`
		Key      string `json:"key"`
		Enabled  bool   `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	settings, err := s.service.UpdateSetting(r.Context(), roomID, req.PlayerID, req.Key, req.Enabled)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, settings)
}

func (s *Server) handleGreeting(w http.ResponseWriter, r *http.Request) {
	roomID := mux.Vars(r)["id"]

	respondJSON(w, http.StatusOK, map[string]string{
		"greeting": s.service.Greeting(r.Context(), roomID),
	})
}

// Board Handlers

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.service.ListBoards(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, boards)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room")
	if roomID == "" {
		http.Error(w, "room parameter required", http.StatusBadRequest)
		return
	}

	s.hub.ServeWS(w, r, roomID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
