package api

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/quoridor/game/engine"
	"github.com/wricardo/quoridor/game/service"
	"github.com/wricardo/quoridor/transport/remote"
	"github.com/wricardo/quoridor/transport/websocket"
)

type ownerKey struct{}

// Server is the match server: it speaks the remote protocol on top of a
// GameService.
type Server struct {
	service  service.GameService
	hub      *websocket.Hub
	accounts map[string]string
	router   *mux.Router
}

// NewServer creates a new match server. accounts maps player ids to their
// secrets; when it is empty any credentials are accepted.
func NewServer(gameService service.GameService, hub *websocket.Hub, accounts map[string]string) *Server {
	s := &Server{
		service:  gameService,
		hub:      hub,
		accounts: accounts,
		router:   mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")

	authed := s.router.NewRoute().Subrouter()
	authed.Use(s.authenticate)

	// Games
	authed.HandleFunc("/jeux", s.handleCreateGame).Methods("POST")
	authed.HandleFunc("/jeux", s.handleListGames).Methods("GET")
	authed.HandleFunc("/jeux/{id}", s.handleGetGame).Methods("GET")
	authed.HandleFunc("/jeux/{id}", s.handlePlayMove).Methods("PUT")
	authed.HandleFunc("/jeux/{id}", s.handleDeleteGame).Methods("DELETE")

	// Openings
	authed.HandleFunc("/ouvertures", s.handleListOpenings).Methods("GET")

	// WebSocket
	authed.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// authenticate checks HTTP basic credentials and stores the player id in
// the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player, secret, ok := r.BasicAuth()
		if !ok || player == "" || !s.authorized(player, secret) {
			w.Header().Set("WWW-Authenticate", `Basic realm="quoridor"`)
			respondError(w, http.StatusUnauthorized, "invalid credentials", "")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, player)))
	})
}

func (s *Server) authorized(player, secret string) bool {
	if len(s.accounts) == 0 {
		return true
	}
	want, ok := s.accounts[player]
	return ok && subtle.ConstantTimeCompare([]byte(want), []byte(secret)) == 1
}

func owner(r *http.Request) string {
	o, _ := r.Context().Value(ownerKey{}).(string)
	return o
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, remote.ErrorResponse{Message: message, Code: code})
}

// respondServiceError maps service and rule errors onto the status codes
// of the protocol.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, service.ErrOpeningNotFound):
		respondError(w, http.StatusNotFound, err.Error(), "")
	case engine.IsRuleError(err):
		respondError(w, http.StatusNotAcceptable, err.Error(), engine.Code(err))
	default:
		log.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, err.Error(), "")
	}
}

// Game Handlers

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.CreateGame(r.Context(), owner(r), r.URL.Query().Get("ouverture"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, remote.GameResponse{ID: info.ID, State: info.State})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games, err := s.service.ListGames(r.Context(), owner(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	list := remote.GameList{Games: make([]remote.GameResponse, 0, len(games))}
	for _, g := range games {
		list.Games = append(list.Games, remote.GameResponse{ID: g.ID, State: g.State})
	}
	respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetGame(r.Context(), owner(r), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, remote.GameResponse{ID: info.ID, State: info.State})
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	if err := s.service.DeleteGame(r.Context(), owner(r), gameID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Game %s deleted", gameID),
	})
}

func (s *Server) handlePlayMove(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["id"]

	var req remote.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", "")
		return
	}

	result, err := s.service.PlayMove(r.Context(), owner(r), gameID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if s.hub != nil {
		s.hub.BroadcastState(gameID, result.State, result.Winner)
	}

	log.Info().Str("game", gameID).Str("player", owner(r)).Msgf("%s accepted", req)
	respondJSON(w, http.StatusOK, moveResponse(result))
}

// moveResponse converts a service result into the protocol reply.
func moveResponse(result *service.MoveResult) remote.MoveResponse {
	resp := remote.MoveResponse{Status: remote.StatusInProgress}
	if result.Finished {
		resp.Status = remote.StatusFinished
		resp.Winner = result.Winner
		return resp
	}
	if result.Reply != nil {
		resp.Kind = result.Reply.Kind
		target := result.Reply.Target
		resp.Position = &target
	}
	return resp
}

// Opening Handlers

func (s *Server) handleListOpenings(w http.ResponseWriter, r *http.Request) {
	openings, err := s.service.ListOpenings(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, openings)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("partie")
	if gameID == "" {
		respondError(w, http.StatusBadRequest, "partie parameter required", "")
		return
	}

	if _, err := s.service.GetGame(r.Context(), owner(r), gameID); err != nil {
		respondServiceError(w, err)
		return
	}

	s.hub.ServeWS(w, r, gameID)
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
