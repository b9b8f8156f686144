package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hearbackapp/hearback/internal/journal/tts"
	"github.com/hearbackapp/hearback/pkg/httpx"
	"github.com/hearbackapp/hearback/pkg/slogx"
)

// SynthesisHandler proxies speech requests to the external engine. It does
// not require a session; rate limiting is the only gate.
type SynthesisHandler struct {
	Engine tts.Engine
}

type speakRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Speed string `json:"speed"`
}

type boundaryResponse struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type speakResponse struct {
	Audio      string             `json:"audio"`
	Boundaries []boundaryResponse `json:"boundaries"`
}

// HandleSpeak synthesizes the request text. Clients that accept JSON get
// the audio base64-encoded alongside the word boundaries; everyone else
// gets the raw mp3 stream, served from a spool file so range requests work.
func (h *SynthesisHandler) HandleSpeak(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req speakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Text cannot be empty")
		return
	}

	rate := req.Speed
	if rate == "" {
		rate = tts.DefaultRate
	}

	result, err := h.Engine.Synthesize(ctx, tts.Request{
		Text:  req.Text,
		Voice: req.Voice,
		Rate:  rate,
	})
	if err != nil {
		if errors.Is(err, tts.ErrEmptyText) {
			writeError(w, http.StatusUnprocessableEntity, "Text cannot be empty")
			return
		}
		writeUnexpected(ctx, w, err)
		return
	}

	if wantsJSON(r) {
		resp := speakResponse{
			Audio:      base64.StdEncoding.EncodeToString(result.Audio),
			Boundaries: make([]boundaryResponse, 0, len(result.Boundaries)),
		}
		for _, b := range result.Boundaries {
			resp.Boundaries = append(resp.Boundaries, boundaryResponse(b))
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
		return
	}

	path, err := tts.SpoolAudio(result.Audio)
	if err != nil {
		writeUnexpected(ctx, w, err)
		return
	}
	defer tts.DiscardLater(path, log)

	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
