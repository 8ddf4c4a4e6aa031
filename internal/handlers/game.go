// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/deathroll/internal/game"
)

type createGameRequest struct {
	HostID game.PlayerID `json:"host_id"`
}

type createGameResponse struct {
	GameID game.GameID   `json:"game_id"`
	HostID game.PlayerID `json:"host_id"`
}

type joinGameRequest struct {
	PlayerID game.PlayerID `json:"player_id"`
}

// CreateGame handles POST /game. A missing host_id is generated server-side
// so a bare client can still host.
func (s *GameServer) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	hostID := req.HostID
	if hostID.IsZero() {
		hostID = game.NewPlayerID()
	}

	g := game.New(hostID)
	if err := s.Repo.Save(r.Context(), g); err != nil {
		s.writeError(w, err)
		return
	}

	s.Logger.WithFields(logrus.Fields{
		"game_id": g.ID,
		"host_id": hostID,
	}).Info("game created")

	writeJSON(w, http.StatusCreated, createGameResponse{GameID: g.ID, HostID: hostID})
}

// GetGame handles GET /game/{id}.
func (s *GameServer) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
		return
	}

	g, err := s.Repo.Load(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// JoinGame handles POST /game/{id}/join. Dispatch depends on who asks: a new
// player joins a waiting game, the waiting host re-submitting is a no-op
// success, an existing member of a started game reconnects, and anyone else
// is forbidden.
func (s *GameServer) JoinGame(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid game id"})
		return
	}

	var req joinGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	playerID := req.PlayerID
	if playerID.IsZero() {
		playerID = game.NewPlayerID()
	}

	unlock := s.locks.lock(gameID)
	defer unlock()

	g, err := s.Repo.Load(r.Context(), gameID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	wasWaiting := g.Status.Kind == game.StatusWaitingForPlayers

	switch g.Status.Kind {
	case game.StatusWaitingForPlayers:
		if !g.HasPlayer(playerID) {
			if err := g.Join(playerID); err != nil {
				s.writeError(w, err)
				return
			}
		}
		// The waiting host re-submitting its own join changes nothing.
	default:
		if !g.HasPlayer(playerID) {
			s.Logger.WithFields(logrus.Fields{
				"game_id":  gameID,
				"intruder": playerID,
			}).Warn("unauthorized join attempt on active game")
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
			return
		}
		if err := g.Reconnect(playerID); err != nil {
			s.writeError(w, err)
			return
		}
	}

	if err := s.Repo.Save(r.Context(), g); err != nil {
		s.writeError(w, err)
		return
	}

	s.Logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player_id": playerID,
	}).Info("player joined or reconnected")

	if wasWaiting && g.Status.Kind == game.StatusInProgress {
		s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeGameStarted, Payload: GameStartedPayload{Game: g}})
		s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeGameState, Payload: g})
	}

	writeJSON(w, http.StatusOK, g)
}

// decodeBody parses an optional JSON request body. An empty body leaves the
// destination at its zero value.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func parseGameIDParam(r *http.Request) (game.GameID, error) {
	return game.ParseGameID(chi.URLParam(r, "id"))
}
