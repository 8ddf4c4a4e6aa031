// internal/handlers/errors.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jason-s-yu/deathroll/internal/game"
	"github.com/jason-s-yu/deathroll/internal/store"
)

// statusForError maps an error to its HTTP status and user-visible message.
// Rule errors surface verbatim; infrastructure errors are always generalized
// before they reach a client.
func statusForError(err error) (int, string) {
	var rule game.RuleError
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		return http.StatusNotFound, "game not found"
	case errors.As(err, &rule):
		return http.StatusBadRequest, rule.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (s *GameServer) writeError(w http.ResponseWriter, err error) {
	code, msg := statusForError(err)
	if code == http.StatusInternalServerError {
		s.Logger.WithError(err).Error("request failed")
	}
	writeJSON(w, code, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	// An encode failure here means the response is already lost; there is
	// nothing useful left to send the client.
	_ = json.NewEncoder(w).Encode(body)
}
