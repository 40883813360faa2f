package events_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgnsrekt/greatloveaudio/internal/events"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startTestServer starts an in-process NATS server on a random port.
func startTestServer(t *testing.T) *server.Server {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1
	natsServer := test.RunServer(&opts)
	t.Cleanup(natsServer.Shutdown)

	return natsServer
}

func TestNewBookParsedEvent(t *testing.T) {
	before := time.Now().UTC()
	event := events.NewBookParsedEvent("book.epub", "epub", 12, "uploads/book.epub")

	assert.Len(t, event.EventID, 36)
	assert.False(t, event.Timestamp.Before(before))
	assert.Equal(t, "book.epub", event.Filename)
	assert.Equal(t, "epub", event.Format)
	assert.Equal(t, 12, event.TotalPages)
	assert.Equal(t, "uploads/book.epub", event.Path)

	other := events.NewBookParsedEvent("book.epub", "epub", 12, "uploads/book.epub")
	assert.NotEqual(t, event.EventID, other.EventID)
}

func TestNATSPublisher_PublishBookParsed(t *testing.T) {
	natsServer := startTestServer(t)

	sub, err := nats.Connect(natsServer.ClientURL())
	require.NoError(t, err)
	defer sub.Close()

	subscription, err := sub.SubscribeSync("books.parsed")
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	publisher, err := events.NewNATSPublisher(natsServer.ClientURL(), "books.parsed", quietLogger())
	require.NoError(t, err)
	defer publisher.Close()
	assert.Equal(t, "books.parsed", publisher.Subject())

	sent := events.NewBookParsedEvent("book.txt", "txt", 1, "uploads/book.txt")
	require.NoError(t, publisher.PublishBookParsed(context.Background(), sent))

	msg, err := subscription.NextMsg(2 * time.Second)
	require.NoError(t, err)

	var got events.BookParsedEvent
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, sent.EventID, got.EventID)
	assert.Equal(t, "book.txt", got.Filename)
	assert.Equal(t, "txt", got.Format)
	assert.Equal(t, 1, got.TotalPages)
	assert.True(t, sent.Timestamp.Equal(got.Timestamp))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(msg.Data, &raw))
	for _, key := range []string{"event_id", "timestamp", "filename", "format", "total_pages", "path"} {
		assert.Contains(t, raw, key)
	}
}

func TestNATSPublisher_PublishWithoutDeadline(t *testing.T) {
	natsServer := startTestServer(t)

	publisher, err := events.NewNATSPublisher(natsServer.ClientURL(), "books.parsed", quietLogger())
	require.NoError(t, err)
	defer publisher.Close()

	// Request contexts carry no deadline.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	event := events.NewBookParsedEvent("book.fb2", "fb2", 3, "uploads/book.fb2")
	assert.NoError(t, publisher.PublishBookParsed(ctx, event))
}

func TestNATSPublisher_NilEvent(t *testing.T) {
	natsServer := startTestServer(t)

	publisher, err := events.NewNATSPublisher(natsServer.ClientURL(), "books.parsed", quietLogger())
	require.NoError(t, err)
	defer publisher.Close()

	assert.ErrorIs(t, publisher.PublishBookParsed(context.Background(), nil), events.ErrNilEvent)
}

func TestNewNATSPublisher_Errors(t *testing.T) {
	_, err := events.NewNATSPublisher("nats://127.0.0.1:1", "books.parsed", quietLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to NATS")

	_, err = events.NewNATSPublisher("nats://127.0.0.1:1", "", quietLogger())
	require.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	var p events.Publisher = events.NopPublisher{}
	assert.NoError(t, p.PublishBookParsed(context.Background(), events.NewBookParsedEvent("a.txt", "txt", 1, "a.txt")))
	assert.NoError(t, p.Close())
}
