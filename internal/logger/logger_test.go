package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func capture(t *testing.T, l Level) *bytes.Buffer {
	t.Helper()
	prevNoColor := color.NoColor
	color.NoColor = true
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(l)
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		SetOutput(nil)
		SetLevel(LevelWarn)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, LevelWarn)

	Debug("hidden %d", 1)
	Info("hidden %d", 2)
	Warn("shown %d", 3)
	Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("messages below warn leaked: %q", out)
	}
	if !strings.Contains(out, "[WARN] shown 3") || !strings.Contains(out, "[ERROR] shown 4") {
		t.Fatalf("expected warn and error lines, got %q", out)
	}
}

func TestDebugLevelPrintsEverything(t *testing.T) {
	buf := capture(t, LevelDebug)

	Debug("a")
	Info("b")
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("lines=%d, want 2", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		"":        LevelWarn,
		"error":   LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
