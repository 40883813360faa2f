package tts

import (
	"context"
	"log/slog"
	"strings"
)

const (
	// SecondsPerWord is the speaking rate used for duration estimates.
	SecondsPerWord = 0.5
	// StatusReady marks a finished result.
	StatusReady = "ready"
	// StubEngineName identifies the stub engine in a Registry.
	StubEngineName = "stub"
)

// StubEngine answers synthesis requests with an estimate and no audio.
// It accepts any voice id.
type StubEngine struct {
	logger *slog.Logger
}

// NewStubEngine creates the placeholder engine.
func NewStubEngine(logger *slog.Logger) *StubEngine {
	return &StubEngine{logger: logger}
}

// Name returns the engine identifier.
func (s *StubEngine) Name() string {
	return StubEngineName
}

// Synthesize echoes the request with an estimated duration. It never fails.
func (s *StubEngine) Synthesize(_ context.Context, req SynthesizeRequest) (*SpeechResult, error) {
	words := CountWords(req.Text)

	s.logger.Debug("stub synthesis",
		"voice", req.Voice,
		"words", words,
		"text_length", len(req.Text),
	)

	return &SpeechResult{
		Text:     req.Text,
		Voice:    req.Voice,
		AudioURL: nil,
		Duration: float64(words) * SecondsPerWord,
		Status:   StatusReady,
	}, nil
}

// CountWords returns the number of maximal runs of non-whitespace characters.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// EstimateDuration returns the estimated speaking time of text in seconds.
func EstimateDuration(text string) float64 {
	return float64(CountWords(text)) * SecondsPerWord
}
