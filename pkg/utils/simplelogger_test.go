package utils

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriterLogger_FormatAndDebugFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWriterLogger(&buf)
	defer Close()

	SetDebug(false)
	Debug("hidden", "k", 1)
	Info("analysis started", "run_id", "abc", "link", "https://example.com")
	Warn("odd", "dangling")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("DEBUG line must be dropped when debug is off:\n%s", out)
	}
	if !strings.Contains(out, "INFO: analysis started run_id=abc link=https://example.com") {
		t.Errorf("unexpected INFO line:\n%s", out)
	}
	if !strings.Contains(out, "WARN: odd\n") {
		t.Errorf("odd keyvals must be skipped:\n%s", out)
	}

	SetDebug(true)
	defer SetDebug(false)
	Debug("visible")
	if !strings.Contains(buf.String(), "DEBUG: visible") {
		t.Errorf("DEBUG line expected when debug is on:\n%s", buf.String())
	}
}

func TestLogger_NoOutputIsSilent(t *testing.T) {
	Close()
	// Не должно паниковать без инициализации
	Error("nobody listens")
}
