package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name      string
		verbosity int
		wantLevel zerolog.Level
	}{
		{"default info level", 0, zerolog.InfoLevel},
		{"debug level", 1, zerolog.DebugLevel},
		{"trace level", 2, zerolog.TraceLevel},
		{"high verbosity stays trace", 5, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// xdg reads the environment once at init, so reload after
			// pointing the state home at a scratch dir. Registered
			// before Setenv so the restore runs after the env rollback.
			t.Cleanup(xdg.Reload)
			t.Setenv("XDG_STATE_HOME", t.TempDir())
			xdg.Reload()

			Setup(tt.verbosity)

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Setup(%d) set level to %v, want %v",
					tt.verbosity, zerolog.GlobalLevel(), tt.wantLevel)
			}
		})
	}
}

func TestLogFilePath(t *testing.T) {
	got := logFilePath()
	if !filepath.IsAbs(got) {
		t.Errorf("logFilePath() returned relative path: %s", got)
	}
	if !strings.Contains(filepath.ToSlash(got), "ferry/ferry.log") {
		t.Errorf("logFilePath() = %s, want to contain ferry/ferry.log", got)
	}
}

func TestGetLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()

	// Callers hold the returned logger in a variable before chaining
	// level methods, which take a pointer receiver.
	logger := GetLogger("autostart")
	logger.Info().Str("exe", "/usr/local/bin/ferry").Msg("autostart installed")
	logger.Warn().Msg("lingering is off")

	out := buf.String()
	if !strings.Contains(out, `"component":"autostart"`) {
		t.Errorf("output missing component field: %s", out)
	}
	if !strings.Contains(out, "autostart installed") {
		t.Errorf("output missing info message: %s", out)
	}
	if !strings.Contains(out, "lingering is off") {
		t.Errorf("output missing warn message: %s", out)
	}
}
