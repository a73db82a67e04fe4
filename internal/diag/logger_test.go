package diag

import (
	"testing"

	"github.com/lesfleursdelanuitdev/ibdprep/internal/config"
)

func TestNewLogger_BuildsFromEveryLevelAndFormat(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		for _, format := range []string{"text", "json"} {
			l, err := NewLogger(config.LoggingConfig{Level: level, Format: format, Output: "discard"})
			if err != nil {
				t.Fatalf("NewLogger(level=%s,format=%s) returned error: %v", level, format, err)
			}
			if l == nil {
				t.Fatalf("NewLogger(level=%s,format=%s) returned nil", level, format)
			}
			l.Infow("test message", "k", "v")
			if err := l.Sync(); err != nil {
				t.Logf("Sync() returned %v (expected for some discard writers)", err)
			}
		}
	}
}

func TestNewLogger_DefaultsToStderrWhenOutputBlank(t *testing.T) {
	l, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text"})
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if l == nil {
		t.Fatal("expected a non-nil logger")
	}
}

func TestNewLogger_InvalidOutputPathIsAnError(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "info", Format: "text", Output: "/nonexistent/dir/out.log"})
	if err == nil {
		t.Fatal("expected an error opening an unwritable output path")
	}
}

func TestNewDiscardLogger_NeverReturnsNil(t *testing.T) {
	if NewDiscardLogger() == nil {
		t.Fatal("expected a non-nil discard logger")
	}
}
