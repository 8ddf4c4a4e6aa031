// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/sirupsen/logrus"

	"github.com/jason-s-yu/deathroll/internal/game"
	"github.com/jason-s-yu/deathroll/internal/store"
)

// writeTimeout bounds a single websocket write so one dead peer cannot stall
// its write pump forever.
const writeTimeout = 5 * time.Second

// GameWS handles GET /ws/game/{id}?player_id=... and runs the whole
// connection lifecycle: admission, registration, the concurrent write pump
// and read loop, and disconnect cleanup.
func (s *GameServer) GameWS(w http.ResponseWriter, r *http.Request) {
	gameID, err := parseGameIDParam(r)
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}
	playerID, err := game.ParsePlayerID(r.URL.Query().Get("player_id"))
	if err != nil {
		http.Error(w, "invalid player_id", http.StatusBadRequest)
		return
	}

	// Admission: membership in the persisted game is the one and only
	// authorization check.
	g, err := s.Repo.Load(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, store.ErrGameNotFound) {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}
		s.Logger.WithError(err).WithField("game_id", gameID).Error("admission load failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !g.HasPlayer(playerID) {
		http.Error(w, "you are not a player in this game", http.StatusForbidden)
		return
	}

	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // Adjust for production security.
	})
	if err != nil {
		s.Logger.Warnf("websocket accept error for game %s: %v", gameID, err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "internal error")

	s.Logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player_id": playerID,
		"remote":    r.RemoteAddr,
	}).Info("websocket connected")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Register with the session registry and start the write pump before
	// anything can broadcast to this player. The pump runs until the channel
	// closes on unregistration, so a slow peer only ever stalls itself.
	out := s.Sessions.Register(gameID, playerID)
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for msg := range out {
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := c.Write(wctx, websocket.MessageText, msg)
			wcancel()
			if err != nil {
				return
			}
		}
	}()

	s.broadcastMessage(gameID, ServerMessage{Type: ServerTypePlayerJoined, Payload: PlayerJoinedPayload{PlayerID: playerID}})
	// Only the newly connected player gets the snapshot; everyone else
	// already has it.
	s.sendToPlayer(gameID, playerID, ServerMessage{Type: ServerTypeGameState, Payload: g})

	s.readLoop(ctx, c, gameID, playerID)

	// Teardown. Unregister first so the pause broadcast below cannot queue
	// onto this connection's channel; the close it triggers also ends the
	// write pump.
	s.Sessions.Unregister(gameID, playerID, out)

	// The request context dies with this handler, so run the disconnect
	// transition on a fresh one; the repository bounds its own calls.
	s.handleDisconnect(context.Background(), gameID, playerID)

	<-writeDone
	c.Close(websocket.StatusNormalClosure, "")

	s.Logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player_id": playerID,
	}).Info("websocket disconnected")
}

// readLoop reads inbound frames until the transport closes and dispatches
// each parseable command. Malformed frames are logged and ignored; only
// transport failures end the loop.
func (s *GameServer) readLoop(ctx context.Context, c *websocket.Conn, gameID game.GameID, playerID game.PlayerID) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				s.Logger.Infof("websocket closed normally for player %s in game %s", playerID, gameID)
			} else {
				s.Logger.Warnf("websocket read error for player %s in game %s: %v", playerID, gameID, err)
			}
			return
		}
		if msgType != websocket.MessageText {
			s.Logger.Warnf("ignoring non-text frame from player %s in game %s", playerID, gameID)
			continue
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.Logger.Warnf("ignoring malformed frame from player %s in game %s: %v", playerID, gameID, err)
			continue
		}

		switch msg.Type {
		case ClientTypeConnect:
			// The connection is already bound to a player at admission.
		case ClientTypeRoll:
			s.handleRollCommand(ctx, gameID, playerID)
		default:
			s.Logger.Warnf("ignoring unknown message type %q from player %s in game %s", msg.Type, playerID, gameID)
		}
	}
}

// handleRollCommand runs a roll end to end: load, apply, persist, broadcast.
// Rule violations and store failures go back to the actor privately; a
// failed roll never terminates the connection.
func (s *GameServer) handleRollCommand(ctx context.Context, gameID game.GameID, playerID game.PlayerID) {
	unlock := s.locks.lock(gameID)

	g, err := s.Repo.Load(ctx, gameID)
	if err != nil {
		unlock()
		s.reportRollFailure(gameID, playerID, err)
		return
	}

	events, err := g.Roll(playerID, s.Roller)
	if err != nil {
		unlock()
		s.reportRollFailure(gameID, playerID, err)
		return
	}

	if err := s.Repo.Save(ctx, g); err != nil {
		unlock()
		s.reportRollFailure(gameID, playerID, err)
		return
	}
	unlock()

	// Events first, the snapshot last; clients rely on seeing the roll (and
	// the game-over, if any) before the state that resulted from it.
	for _, ev := range events {
		switch ev := ev.(type) {
		case game.Rolled:
			s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeRollResult, Payload: RollResultPayload{
				PlayerID:    ev.PlayerID,
				RolledValue: ev.Value,
			}})
		case game.GameOver:
			s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeGameOver, Payload: GameOverPayload{
				WinnerID: ev.WinnerID,
				LoserID:  ev.LoserID,
			}})
		}
	}
	s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeGameState, Payload: g})
}

// reportRollFailure privately tells the acting player why their roll was
// rejected. Infrastructure detail stays in the logs.
func (s *GameServer) reportRollFailure(gameID game.GameID, playerID game.PlayerID, err error) {
	var rule game.RuleError
	msg := "internal server error"
	switch {
	case errors.As(err, &rule):
		msg = rule.Error()
	case errors.Is(err, store.ErrGameNotFound):
		msg = "game not found"
	default:
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"game_id":   gameID,
			"player_id": playerID,
		}).Error("roll command failed")
	}
	s.sendToPlayer(gameID, playerID, ServerMessage{Type: ServerTypeError, Payload: ErrorPayload{Message: msg}})
}

// handleDisconnect pauses an in-progress game after one of its players
// dropped, then broadcasts the new snapshot to whoever is still connected.
// Idempotent: any status other than InProgress is left untouched.
func (s *GameServer) handleDisconnect(ctx context.Context, gameID game.GameID, playerID game.PlayerID) {
	unlock := s.locks.lock(gameID)

	g, err := s.Repo.Load(ctx, gameID)
	if err != nil {
		unlock()
		if !errors.Is(err, store.ErrGameNotFound) {
			s.Logger.WithError(err).WithField("game_id", gameID).Error("disconnect load failed")
		}
		return
	}
	if g.Status.Kind != game.StatusInProgress {
		unlock()
		return
	}
	if err := g.Pause(playerID); err != nil {
		unlock()
		return
	}
	if err := s.Repo.Save(ctx, g); err != nil {
		unlock()
		s.Logger.WithError(err).WithField("game_id", gameID).Error("failed to persist pause")
		return
	}
	unlock()

	s.Logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player_id": playerID,
	}).Warn("game paused after disconnect")

	s.broadcastMessage(gameID, ServerMessage{Type: ServerTypeGameState, Payload: g})
}

// broadcastMessage marshals the frame once and fans it out to every
// registered player of the game.
func (s *GameServer) broadcastMessage(gameID game.GameID, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.Logger.Errorf("failed to marshal %s message for game %s: %v", msg.Type, gameID, err)
		return
	}
	s.Sessions.Broadcast(gameID, data)
}

// sendToPlayer delivers a frame to one player only.
func (s *GameServer) sendToPlayer(gameID game.GameID, playerID game.PlayerID, msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		s.Logger.Errorf("failed to marshal %s message for player %s: %v", msg.Type, playerID, err)
		return
	}
	s.Sessions.SendToPlayer(gameID, playerID, data)
}
