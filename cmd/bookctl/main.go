// Command bookctl uploads books and requests speech from a running
// GreatLoveAudio server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dgnsrekt/greatloveaudio/internal/client"
	"github.com/dgnsrekt/greatloveaudio/internal/logging"
)

const usage = `usage: bookctl <command> [arguments]

commands:
  upload FILE              upload and parse a book
  speak [-voice ID] TEXT   generate speech for text
  voices                   list available voices
  voice ID                 show a single voice
`

var errUsage = errors.New("invalid usage")

func main() {
	cfg, err := client.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := logging.NewWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := client.New(cfg, logger)

	if err := run(ctx, c, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	var result any
	var err error

	switch cmd, rest := args[0], args[1:]; cmd {
	case "upload":
		if len(rest) != 1 {
			return errUsage
		}
		result, err = c.UploadBook(ctx, rest[0])

	case "speak":
		fs := flag.NewFlagSet("speak", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		voice := fs.String("voice", "", "voice id")
		if err := fs.Parse(rest); err != nil || fs.NArg() == 0 {
			return errUsage
		}
		result, err = c.GenerateSpeech(ctx, strings.Join(fs.Args(), " "), *voice)

	case "voices":
		result, err = c.AvailableVoices(ctx)

	case "voice":
		if len(rest) != 1 {
			return errUsage
		}
		result, err = c.Voice(ctx, rest[0])

	default:
		return errUsage
	}

	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
