// internal/handlers/game_test.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/deathroll/internal/game"
	"github.com/jason-s-yu/deathroll/internal/session"
	"github.com/jason-s-yu/deathroll/internal/store"
)

// fixedRoller always returns the same value.
type fixedRoller int

func (f fixedRoller) RollInRange(_ int) int { return int(f) }

func newTestServer(t *testing.T, roller game.Roller) *GameServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewGameServer(store.NewMemory(), session.NewRegistry(), roller, logger)
}

func newTestRouter(s *GameServer) http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeGame(t *testing.T, w *httptest.ResponseRecorder) *game.Game {
	t.Helper()
	var g game.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	return &g
}

func TestCreateGame(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	hostID := game.NewPlayerID()
	w := doJSON(t, r, http.MethodPost, "/game", map[string]any{"host_id": hostID})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp createGameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, hostID, resp.HostID)
	assert.False(t, resp.GameID.IsZero())

	// The game is persisted immediately.
	g, err := s.Repo.Load(context.Background(), resp.GameID)
	require.NoError(t, err)
	assert.Equal(t, game.StatusWaitingForPlayers, g.Status.Kind)
	assert.Equal(t, []game.PlayerID{hostID}, g.Players)
}

func TestCreateGameGeneratesHostID(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/game", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp createGameResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.HostID.IsZero())
}

func TestGetGame(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	g := game.New(game.NewPlayerID())
	require.NoError(t, s.Repo.Save(context.Background(), g))

	w := doJSON(t, r, http.MethodGet, "/game/"+g.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, *g, *decodeGame(t, w))

	w = doJSON(t, r, http.MethodGet, "/game/"+game.NewGameID().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/game/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinGameStartsMatch(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	host := game.NewPlayerID()
	g := game.New(host)
	require.NoError(t, s.Repo.Save(context.Background(), g))

	guest := game.NewPlayerID()
	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": guest})
	require.Equal(t, http.StatusOK, w.Code)

	joined := decodeGame(t, w)
	assert.Equal(t, game.StatusInProgress, joined.Status.Kind)
	assert.Equal(t, []game.PlayerID{host, guest}, joined.Players)
	assert.Equal(t, 0, joined.TurnIndex)
}

func TestJoinGameHostRejoinIsIdempotent(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	host := game.NewPlayerID()
	g := game.New(host)
	require.NoError(t, s.Repo.Save(context.Background(), g))

	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": host})
	require.Equal(t, http.StatusOK, w.Code)

	rejoined := decodeGame(t, w)
	assert.Equal(t, game.StatusWaitingForPlayers, rejoined.Status.Kind)
	assert.Equal(t, []game.PlayerID{host}, rejoined.Players)
}

func TestJoinGameRejectsIntruder(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	g := game.New(game.NewPlayerID())
	require.NoError(t, g.Join(game.NewPlayerID()))
	require.NoError(t, s.Repo.Save(context.Background(), g))

	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": game.NewPlayerID()})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJoinGameMemberReconnects(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	host := game.NewPlayerID()
	guest := game.NewPlayerID()
	g := game.New(host)
	require.NoError(t, g.Join(guest))
	require.NoError(t, g.Pause(host))
	require.NoError(t, s.Repo.Save(context.Background(), g))

	// The disconnected player resumes the game.
	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": host})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.StatusInProgress, decodeGame(t, w).Status.Kind)
}

func TestJoinGameWrongMemberOnPausedGame(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	host := game.NewPlayerID()
	guest := game.NewPlayerID()
	g := game.New(host)
	require.NoError(t, g.Join(guest))
	require.NoError(t, g.Pause(host))
	require.NoError(t, s.Repo.Save(context.Background(), g))

	// The other member cannot resume a game paused for the host.
	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": guest})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinGameNotFound(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	w := doJSON(t, r, http.MethodPost, "/game/"+game.NewGameID().String()+"/join", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestJoinGameBroadcastsGameStarted(t *testing.T) {
	s := newTestServer(t, fixedRoller(500))
	r := newTestRouter(s)

	host := game.NewPlayerID()
	g := game.New(host)
	require.NoError(t, s.Repo.Save(context.Background(), g))

	// The host is already connected when the guest joins over REST.
	hostCh := s.Sessions.Register(g.ID, host)

	guest := game.NewPlayerID()
	w := doJSON(t, r, http.MethodPost, "/game/"+g.ID.String()+"/join", map[string]any{"player_id": guest})
	require.Equal(t, http.StatusOK, w.Code)

	first := decodeFrame(t, <-hostCh)
	second := decodeFrame(t, <-hostCh)
	assert.Equal(t, ServerTypeGameStarted, first.Type)
	assert.Equal(t, ServerTypeGameState, second.Type)
}
