package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("info", "json", &buf)
	log.Info().Str("session_id", "abc").Msg("session started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json output, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "session started" || entry["session_id"] != "abc" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("unexpected level %v", entry["level"])
	}
}

func TestSetupLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("warn", "json", &buf)
	log.Info().Msg("hidden")
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
	log.Warn().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected warn output, got %q", buf.String())
	}
}

func TestSetupUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("loud", "json", &buf)
	log.Debug().Msg("hidden")
	log.Info().Msg("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected info level, got %q", buf.String())
	}
}

func TestSetupPretty(t *testing.T) {
	var buf bytes.Buffer
	log := Setup("debug", "pretty", &buf)
	log.Debug().Int("progress", 3).Msg("question skipped")
	out := buf.String()
	if strings.HasPrefix(out, "{") {
		t.Fatalf("expected console output, got json %q", out)
	}
	if !strings.Contains(out, "question skipped") || !strings.Contains(out, "progress=3") {
		t.Fatalf("unexpected console output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no color for non-terminal writer, got %q", out)
	}
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mentalmaths.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("line\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "line\n" {
		t.Fatalf("unexpected file contents %q: %v", data, err)
	}
}

func TestValidFormat(t *testing.T) {
	if !ValidFormat("json") || !ValidFormat("pretty") || ValidFormat("xml") {
		t.Fatalf("unexpected format validation")
	}
}
