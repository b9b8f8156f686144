package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiSynthesize = "/v1/synthesize"

// The engine reports word timings as offset/duration in 100-nanosecond
// ticks; we convert to seconds before handing them to callers.
const ticksPerSecond = 10_000_000

// HTTPEngine is an Engine backed by the standalone TTS HTTP service. It
// holds no per-request state, so one instance serves all handlers.
type HTTPEngine struct {
	httpClient *http.Client
	baseURL    string
}

// NewHTTPEngine creates a client for the engine at baseURL (protocol and
// port included, e.g. "http://localhost:8200"). The timeout applies to the
// whole synthesis round-trip.
func NewHTTPEngine(baseURL string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// wireResponse is the engine's response shape: base64 audio (json []byte)
// plus raw tick-based word boundaries.
type wireResponse struct {
	Audio      []byte         `json:"audio"`
	Boundaries []wireBoundary `json:"boundaries"`
}

type wireBoundary struct {
	Text     string `json:"text"`
	Offset   int64  `json:"offset"`
	Duration int64  `json:"duration"`
}

type wireError struct {
	Detail string `json:"detail"`
}

// Synthesize sends a synthesis request and reassembles the engine's answer
// into audio bytes and second-based boundaries.
func (e *HTTPEngine) Synthesize(ctx context.Context, req Request) (*Result, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}
	if req.Rate == "" {
		req.Rate = DefaultRate
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("tts: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		e.baseURL+apiSynthesize,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("tts: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("tts: engine at %s unreachable: %w", e.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var we wireError
		if err := json.NewDecoder(resp.Body).Decode(&we); err == nil && we.Detail != "" {
			return nil, fmt.Errorf("tts: engine error: %s", we.Detail)
		}
		return nil, fmt.Errorf("tts: engine returned status %s", resp.Status)
	}

	var wire wireResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("tts: decode engine response: %w", err)
	}
	if len(wire.Audio) == 0 {
		return nil, fmt.Errorf("tts: engine returned empty audio")
	}

	result := &Result{
		Audio:      wire.Audio,
		Boundaries: make([]Boundary, 0, len(wire.Boundaries)),
	}
	for _, b := range wire.Boundaries {
		result.Boundaries = append(result.Boundaries, Boundary{
			Text:  b.Text,
			Start: float64(b.Offset) / ticksPerSecond,
			End:   float64(b.Offset+b.Duration) / ticksPerSecond,
		})
	}

	return result, nil
}
