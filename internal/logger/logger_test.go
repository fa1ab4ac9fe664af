package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func withCapturedLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := L
	L = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { L = prev })
	return &buf
}

func TestEventCarriesComponentAndEvent(t *testing.T) {
	buf := withCapturedLogger(t)

	Info(Background(), "tg", "update.received", slog.Int64("user_id", 7))

	line := buf.String()
	for _, want := range []string{"component=tg", "event=update.received", "user_id=7"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %q: %s", want, line)
		}
	}
}

func TestEventCarriesRIDFromContext(t *testing.T) {
	buf := withCapturedLogger(t)

	ctx := WithRID(Background(), "12:34:56")
	Warn(ctx, "bot", "callback.denied")

	if !strings.Contains(buf.String(), "rid=12:34:56") {
		t.Errorf("rid not carried: %s", buf.String())
	}
}

func TestComponentEmptyNameFallsBack(t *testing.T) {
	withCapturedLogger(t)

	if got := Component("  "); got != L {
		t.Fatal("blank component should return the base logger")
	}
}
