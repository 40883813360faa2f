package tts

import (
	"context"
)

// SynthesizeRequest contains parameters for TTS synthesis.
type SynthesizeRequest struct {
	Text  string
	Voice string
}

// SpeechResult describes generated speech.
type SpeechResult struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	// AudioURL points at the generated audio; nil when no audio was produced.
	AudioURL *string `json:"audio_url"`
	// Duration is the estimated playback length in seconds.
	Duration float64 `json:"duration"`
	Status   string  `json:"status"`
}

// Engine is the interface for text-to-speech synthesis.
type Engine interface {
	// Synthesize converts text to speech.
	Synthesize(ctx context.Context, req SynthesizeRequest) (*SpeechResult, error)
	// Name returns the engine identifier.
	Name() string
}
