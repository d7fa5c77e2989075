package shadertoy

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should discard everything")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("texture created", "width", 64)
	if !strings.Contains(buf.String(), "texture created") {
		t.Errorf("log output %q missing message", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("should vanish")
	if buf.Len() != 0 {
		t.Errorf("SetLogger(nil) did not restore the silent logger: %q", buf.String())
	}
}
