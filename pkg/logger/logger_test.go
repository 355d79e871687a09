package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "warn", Output: &buf})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info entry must be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn entry missing, got %q", out)
	}
}

func TestNew_EmitsJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Output: &buf})

	log.Info().Str("demand_id", "demand_1").Msg("demand created")

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"demand_id":"demand_1"`, `"time":`, `"caller":`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in entry, got %q", want, out)
		}
	}
}

func TestLevel_Parsing(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := level(tc.in); got != tc.want {
			t.Fatalf("level(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
