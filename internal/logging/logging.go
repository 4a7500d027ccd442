// Package logging configures the client-side developer log. The TUI owns
// stdout, so diagnostics go to a log file; the UI only ever shows the
// coarse user-facing messages recorded in the store.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New opens the log file at path and returns a logger writing to it,
// along with a close func. When the file cannot be opened the logger
// discards output; a broken log destination must not take the app down.
func New(path string) (zerolog.Logger, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discard(), func() {}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discard(), func() {}
	}
	logger := zerolog.New(file).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return logger, func() { _ = file.Close() }
}

func discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
