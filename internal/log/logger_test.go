package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.WarnLevel,
		"":        zerolog.WarnLevel,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetLevelFiltersEvents(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel("warn")
	t.Cleanup(func() { SetLevel("warn") })

	Info().Msg("hidden")
	Warn().Str("file", "tasks.txt").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info event should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "tasks.txt") {
		t.Errorf("expected warn event with field, got %s", out)
	}

	buf.Reset()
	SetLevel("debug")
	Debug().Msg("visible now")
	if !strings.Contains(buf.String(), "visible now") {
		t.Errorf("expected debug event, got %s", buf.String())
	}
}
