// Package client talks to the GreatLoveAudio HTTP API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgnsrekt/greatloveaudio/internal/book"
	"github.com/dgnsrekt/greatloveaudio/internal/tts"
)

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
}

// UploadResult is the response to a book upload.
type UploadResult struct {
	Success    bool         `json:"success"`
	Filename   string       `json:"filename"`
	Content    book.Content `json:"content"`
	TotalPages int          `json:"total_pages"`
}

// SpeechResult is the response to a speech request.
type SpeechResult struct {
	Success   bool             `json:"success"`
	AudioData tts.SpeechResult `json:"audio_data"`
	Voice     string           `json:"voice"`
}

// Client calls the GreatLoveAudio API.
type Client struct {
	baseURL    string
	logger     *slog.Logger
	httpClient *http.Client
}

// New creates a new API client.
func New(cfg *Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.APIURL, "/"),
		logger:  logger,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// UploadBook uploads the file at path as multipart field "file".
func (c *Client) UploadBook(ctx context.Context, path string) (*UploadResult, error) {
	if !book.IsSupported(path) {
		c.logger.Warn("server will likely reject this file",
			"path", path,
			"supported", book.SupportedExtensions(),
		)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open book: %w", err)
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload-book", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.logger.Debug("uploading book", "path", path)

	var result UploadResult
	if err := c.do(req, &result); err != nil {
		pr.Close()
		return nil, err
	}

	c.logger.Info("book uploaded", "filename", result.Filename, "total_pages", result.TotalPages)
	return &result, nil
}

// GenerateSpeech requests speech for text. An empty voice lets the server
// choose its default.
func (c *Client) GenerateSpeech(ctx context.Context, text, voice string) (*SpeechResult, error) {
	q := url.Values{}
	q.Set("text", text)
	if voice != "" {
		q.Set("voice", voice)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-speech?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result SpeechResult
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AvailableVoices lists the server's voice catalog.
func (c *Client) AvailableVoices(ctx context.Context) ([]tts.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/available-voices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var resp struct {
		Voices []tts.Voice `json:"voices"`
	}
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return resp.Voices, nil
}

// Voice fetches a single voice by id.
func (c *Client) Voice(ctx context.Context, id string) (*tts.Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/available-voices/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var voice tts.Voice
	if err := c.do(req, &voice); err != nil {
		return nil, err
	}
	return &voice, nil
}

// do sends req and decodes a JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: strings.TrimSpace(string(body))}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &detail) == nil && detail.Detail != "" {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}
