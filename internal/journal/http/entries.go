package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/hearbackapp/hearback/internal/journal/domain"
	"github.com/hearbackapp/hearback/internal/journal/service"
	"github.com/hearbackapp/hearback/pkg/httpx"
)

type EntriesHandler struct {
	EntryService *service.EntryService
}

type uploadTextRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type entryIDResponse struct {
	ID int64 `json:"id"`
}

type entryResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Progress  int64     `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

type entrySummaryResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type listEntriesResponse struct {
	Entries []entrySummaryResponse `json:"entries"`
}

type progressRequest struct {
	Progress int64 `json:"progress"`
}

// HandleUploadText persists a new text entry for the authenticated user.
func (h *EntriesHandler) HandleUploadText(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	var req uploadTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	entry, err := h.EntryService.Create(ctx, user, req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContentTooShort),
			errors.Is(err, service.ErrContentTooLong),
			errors.Is(err, service.ErrTitleTooLong):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeUnexpected(ctx, w, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, entryIDResponse{ID: entry.ID})
}

// HandleGet returns one owned entry. A foreign or absent entry is a 404
// either way.
func (h *EntriesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	entryID, err := parseEntryID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	entry, err := h.EntryService.GetByID(ctx, user, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, entryResponse{
		ID:        entry.ID,
		Title:     entry.Title,
		Content:   entry.Content,
		Progress:  entry.Progress,
		CreatedAt: entry.CreatedAt,
	})
}

// HandleList returns the authenticated user's entries, oldest first.
func (h *EntriesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	summaries, err := h.EntryService.ListForOwner(ctx, user)
	if err != nil {
		writeUnexpected(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toListResponse(summaries))
}

// HandleProgress atomically updates the reading position of an owned entry.
func (h *EntriesHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	entryID, err := parseEntryID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	id, err := h.EntryService.UpdateProgress(ctx, user, entryID, req.Progress)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, entryIDResponse{ID: id})
}

// HandleDelete removes an owned entry. Deleting someone else's entry is a
// 404, never a 204.
func (h *EntriesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := currentUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Missing token")
		return
	}

	entryID, err := parseEntryID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Entry not found")
		return
	}

	if err := h.EntryService.Delete(ctx, user, entryID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			writeError(w, http.StatusNotFound, "Entry not found")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseEntryID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func toListResponse(summaries []domain.EntrySummary) listEntriesResponse {
	out := listEntriesResponse{Entries: make([]entrySummaryResponse, 0, len(summaries))}
	for _, s := range summaries {
		out.Entries = append(out.Entries, entrySummaryResponse{
			ID:        s.ID,
			Title:     s.Title,
			CreatedAt: s.CreatedAt,
		})
	}
	return out
}
