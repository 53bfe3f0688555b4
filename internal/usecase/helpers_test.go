package usecase

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger(t *testing.T) *slog.Logger {
	t.Helper()

	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
