package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dgnsrekt/greatloveaudio/internal/book"
	"github.com/dgnsrekt/greatloveaudio/internal/events"
	"github.com/dgnsrekt/greatloveaudio/internal/tts"
)

// RootMessage is returned by GET /.
const RootMessage = "GreatLoveAudio API is running!"

// MessageResponse represents the response body for GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the response body for /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// UploadResponse represents the response body for /upload-book.
type UploadResponse struct {
	Success    bool         `json:"success"`
	Filename   string       `json:"filename"`
	Content    book.Content `json:"content"`
	TotalPages int          `json:"total_pages"`
}

// SpeechResponse represents the response body for /generate-speech.
type SpeechResponse struct {
	Success   bool              `json:"success"`
	AudioData *tts.SpeechResult `json:"audio_data"`
	Voice     string            `json:"voice"`
}

// VoicesResponse represents the response body for /available-voices.
type VoicesResponse struct {
	Voices []tts.Voice `json:"voices"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, ErrorResponse{Detail: detail})
}

// handleRoot handles GET / requests.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, MessageResponse{Message: RootMessage})
}

// handleHealthz handles GET /healthz requests.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleUploadBook handles POST /upload-book requests.
func (s *Server) handleUploadBook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.logger.Warn("upload exceeds size limit", "limit", tooLarge.Limit)
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, http.ErrMissingFile):
			s.writeError(w, http.StatusUnprocessableEntity, "field required: file")
		default:
			s.logger.Warn("failed to read upload", "error", err)
			s.writeError(w, http.StatusUnprocessableEntity, "invalid upload: "+err.Error())
		}
		return
	}
	defer file.Close()
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	filename := header.Filename

	format, err := book.DetectFormat(filename)
	if err != nil {
		s.logger.Warn("rejected upload", "filename", filename, "error", err)
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := s.store.Save(filename, file)
	if err != nil {
		s.logger.Error("failed to save upload", "filename", filename, "error", err)
		s.writeError(w, http.StatusInternalServerError, "error processing file: "+err.Error())
		return
	}

	content, err := s.parser.Parse(path)
	if err != nil {
		s.logger.Error("failed to parse book", "filename", filename, "path", path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "error processing file: "+err.Error())
		return
	}

	totalPages := content.TotalPages()

	s.logger.Info("book parsed",
		"filename", filename,
		"format", format,
		"total_pages", totalPages,
		"size", header.Size,
	)

	event := events.NewBookParsedEvent(filename, string(format), totalPages, path)
	if err := s.events.PublishBookParsed(r.Context(), event); err != nil {
		s.logger.Warn("failed to publish book event", "event_id", event.EventID, "error", err)
	}

	s.writeJSON(w, http.StatusOK, UploadResponse{
		Success:    true,
		Filename:   filename,
		Content:    content,
		TotalPages: totalPages,
	})
}

// handleGenerateSpeech handles POST /generate-speech requests. Parameters
// come from the query string or a URL-encoded form body. An optional
// "engine" parameter selects a registered engine other than the default.
func (s *Server) handleGenerateSpeech(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, "invalid form: "+err.Error())
		return
	}

	if !r.Form.Has("text") {
		s.writeError(w, http.StatusUnprocessableEntity, "field required: text")
		return
	}
	text := r.Form.Get("text")

	// The default applies only when voice is absent; an explicit empty value is echoed.
	voice := s.cfg.DefaultVoice
	if r.Form.Has("voice") {
		voice = r.Form.Get("voice")
	}

	if !s.voices.Validate(voice) {
		s.logger.Warn("unknown voice requested", "voice", voice)
	}

	engine, err := s.engines.Resolve(r.Form.Get("engine"))
	if err != nil {
		s.logger.Error("no speech engine available", "error", err)
		s.writeError(w, http.StatusInternalServerError, "error generating speech: "+err.Error())
		return
	}

	result, err := engine.Synthesize(r.Context(), tts.SynthesizeRequest{Text: text, Voice: voice})
	if err != nil {
		s.logger.Error("speech generation failed", "engine", engine.Name(), "voice", voice, "error", err)
		s.writeError(w, http.StatusInternalServerError, "error generating speech: "+err.Error())
		return
	}

	s.logger.Info("speech generated",
		"engine", engine.Name(),
		"voice", voice,
		"text_length", len(text),
		"duration", result.Duration,
	)

	s.writeJSON(w, http.StatusOK, SpeechResponse{
		Success:   true,
		AudioData: result,
		Voice:     voice,
	})
}

// handleAvailableVoices handles GET /available-voices requests.
func (s *Server) handleAvailableVoices(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, VoicesResponse{Voices: s.voices.List()})
}

// handleVoice handles GET /available-voices/{id} requests.
func (s *Server) handleVoice(w http.ResponseWriter, r *http.Request) {
	voice, err := s.voices.Lookup(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, voice)
}
