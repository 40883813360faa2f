package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	clientName = "greatloveaudio"
	// flushTimeout bounds the wait for the server to acknowledge a publish.
	flushTimeout = 2 * time.Second
)

// ErrNilEvent is returned when publishing a nil event.
var ErrNilEvent = errors.New("nil event")

// NATSPublisher publishes events as JSON on a NATS subject.
type NATSPublisher struct {
	conn    *nats.Conn
	subject string
	logger  *slog.Logger
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url, subject string, logger *slog.Logger) (*NATSPublisher, error) {
	if subject == "" {
		return nil, errors.New("empty NATS subject")
	}

	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	logger.Info("connected to NATS", "url", conn.ConnectedUrl(), "subject", subject)

	return &NATSPublisher{
		conn:    conn,
		subject: subject,
		logger:  logger,
	}, nil
}

// Subject returns the subject events are published on.
func (p *NATSPublisher) Subject() string {
	return p.subject
}

// PublishBookParsed marshals the event and publishes it, then flushes so the
// server has seen it before returning. The flush is bounded by flushTimeout
// or by ctx's own deadline, whichever comes first.
func (p *NATSPublisher) PublishBookParsed(ctx context.Context, event *BookParsedEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal book event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish book event: %w", err)
	}

	flushCtx, cancel := context.WithTimeout(ctx, flushTimeout)
	defer cancel()

	if err := p.conn.FlushWithContext(flushCtx); err != nil {
		return fmt.Errorf("failed to flush book event: %w", err)
	}

	p.logger.Debug("published book event",
		"event_id", event.EventID,
		"subject", p.subject,
		"filename", event.Filename,
	)

	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}
