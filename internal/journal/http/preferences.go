package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/service"
	"github.com/hearbackapp/hearback/pkg/httpx"
)

type PreferencesHandler struct {
	PreferencesService *service.PreferencesService
}

type preferencesPayload struct {
	Speed string `json:"speed"`
	Voice string `json:"voice"`
}

// HandleUpdate overwrites the authenticated user's preferences wholesale.
func (h *PreferencesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req preferencesPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	err := h.PreferencesService.Update(ctx, user, domain.Preferences{
		Speed: req.Speed,
		Voice: req.Voice,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleGet returns the stored preferences. Never set is a 404, not a
// default-valued object.
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	prefs, err := h.PreferencesService.Get(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPreferencesNotSet):
			writeError(w, http.StatusNotFound, "Preferences not set")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			writeUnexpected(ctx, w, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, preferencesPayload{
		Speed: prefs.Speed,
		Voice: prefs.Voice,
	})
}
