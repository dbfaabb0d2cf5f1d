package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/botivate-in/protrackgo/internal/middleware"
	"github.com/botivate-in/protrackgo/internal/state"
)

// Per-user UI state endpoints. Keys are free-form (draft form ids,
// filter names); values are opaque JSON the client round-trips.

func (r *Router) getState(w http.ResponseWriter, req *http.Request) {
	username := middleware.UsernameFromContext(req.Context())
	if username == "" {
		respondError(w, http.StatusUnauthorized, "No user in token")
		return
	}

	value, err := r.state.Load(username, pathVar(req, "key"))
	if errors.Is(err, state.ErrNotFound) {
		respondError(w, http.StatusNotFound, "No saved state for this key")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load state")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(value)
}

func (r *Router) putState(w http.ResponseWriter, req *http.Request) {
	username := middleware.UsernameFromContext(req.Context())
	if username == "" {
		respondError(w, http.StatusUnauthorized, "No user in token")
		return
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, 64<<10))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	if err := r.state.Save(username, pathVar(req, "key"), json.RawMessage(body)); err != nil {
		respondError(w, http.StatusBadRequest, "State must be valid JSON")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Saved"})
}

func (r *Router) deleteState(w http.ResponseWriter, req *http.Request) {
	username := middleware.UsernameFromContext(req.Context())
	if username == "" {
		respondError(w, http.StatusUnauthorized, "No user in token")
		return
	}

	if err := r.state.Clear(username, pathVar(req, "key")); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to clear state")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Cleared"})
}
