package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_MatchesClassicFieldWidths(t *testing.T) {
	cfg := Default()
	if cfg.Widths.RecordLength() != 10+10+10+1+2+10+1 {
		t.Errorf("RecordLength() = %d, want %d", cfg.Widths.RecordLength(), 10+10+10+1+2+10+1)
	}
	if cfg.Storage.Mode != "memory" {
		t.Errorf("Storage.Mode = %q, want memory", cfg.Storage.Mode)
	}
	if !cfg.Output.Color || !cfg.Output.Progress {
		t.Error("expected color and progress to default to true")
	}
}

func TestLoad_BlankPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if cfg.Widths.ID != Default().Widths.ID {
		t.Errorf("Load(\"\") did not match Default()")
	}
}

func TestLoad_OverridesDefaultsFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "widths:\n  id: 7\n  father: 7\n  mother: 7\nxlinked_loci:\n  - AMXY\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed writing test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Widths.ID != 7 || cfg.Widths.Father != 7 || cfg.Widths.Mother != 7 {
		t.Errorf("Widths = %+v, want ID/Father/Mother = 7", cfg.Widths)
	}
	if !cfg.IsXLinked("AMXY") {
		t.Error("expected AMXY to be flagged X-linked")
	}
	if cfg.IsXLinked("D1S80") {
		t.Error("expected D1S80 to not be flagged X-linked")
	}
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestFieldWidths_RecordLength(t *testing.T) {
	w := FieldWidths{FamID: 3, ID: 10, Father: 10, Mother: 10, Sex: 1, Twin: 2, Household: 10}
	if got, want := w.RecordLength(), 3+10+10+10+1+2+10+1; got != want {
		t.Errorf("RecordLength() = %d, want %d", got, want)
	}
}
