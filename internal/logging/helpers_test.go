package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersNilLoggerNoPanic(t *testing.T) {
	Info(nil, "x")
	Warn(nil, "x")
	Error(nil, "x", errors.New("boom"))
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	Error(logger, "save failed", errors.New("disk full"), slog.String(FieldPath, "data/config.json"))

	out := buf.String()
	if !strings.Contains(out, "error=\"disk full\"") {
		t.Fatalf("expected error field, got %q", out)
	}
	if !strings.Contains(out, "path=data/config.json") {
		t.Fatalf("expected path field, got %q", out)
	}
}
