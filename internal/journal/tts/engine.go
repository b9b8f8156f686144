// Package tts talks to the external text-to-speech engine. The engine is a
// capability, not something this service implements: given text and a voice
// identifier it produces an audio byte stream plus word-timing boundaries.
package tts

import (
	"context"
	"errors"
)

// DefaultRate is used when the caller doesn't supply a playback speed.
const DefaultRate = "+0%"

var ErrEmptyText = errors.New("tts: text cannot be empty")

// Request describes one synthesis job. Voice and Rate are optional; an
// absent voice selects the engine default.
type Request struct {
	Text  string `json:"text"`
	Voice string `json:"voice,omitempty"`
	Rate  string `json:"rate,omitempty"`
}

// Boundary is a word-timing span: when a substring of the synthesized
// speech begins and ends, in seconds from the start of the audio.
type Boundary struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Result is the assembled engine output: the full audio stream and the
// ordered boundary list.
type Result struct {
	Audio      []byte
	Boundaries []Boundary
}

// Engine synthesizes speech. Implementations must be safe for concurrent
// use by multiple request handlers.
type Engine interface {
	Synthesize(ctx context.Context, req Request) (*Result, error)
}
