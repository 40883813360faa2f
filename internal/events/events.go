// Package events publishes notifications about processed books.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookParsedEvent is emitted after an upload has been stored and parsed.
type BookParsedEvent struct {
	EventID    string    `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	Filename   string    `json:"filename"`
	Format     string    `json:"format"`
	TotalPages int       `json:"total_pages"`
	Path       string    `json:"path"`
}

// NewBookParsedEvent creates an event with a fresh id and the current UTC time.
func NewBookParsedEvent(filename, format string, totalPages int, path string) *BookParsedEvent {
	return &BookParsedEvent{
		EventID:    uuid.New().String(),
		Timestamp:  time.Now().UTC(),
		Filename:   filename,
		Format:     format,
		TotalPages: totalPages,
		Path:       path,
	}
}

// Publisher delivers book events to interested consumers.
type Publisher interface {
	PublishBookParsed(ctx context.Context, event *BookParsedEvent) error
	Close() error
}

// NopPublisher discards every event.
type NopPublisher struct{}

// PublishBookParsed does nothing.
func (NopPublisher) PublishBookParsed(context.Context, *BookParsedEvent) error { return nil }

// Close does nothing.
func (NopPublisher) Close() error { return nil }
