package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://localhost:5000" || cfg.Canvas.HitRadius != 30 {
		t.Errorf("defaults = %+v %+v", cfg.Server, cfg.Canvas)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults do not validate: %v", err)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	body := `{"server":{"baseURL":"http://cnc:9000"},"machine":{"speed":250},"animation":{"stepIntervalMs":400}}`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.BaseURL != "http://cnc:9000" {
		t.Errorf("baseURL = %q", cfg.Server.BaseURL)
	}
	if cfg.Machine.Speed != 250 || cfg.Machine.SetupTime != 0.5 {
		t.Errorf("machine = %+v", cfg.Machine)
	}
	if cfg.StepInterval() != 400*time.Millisecond || cfg.DrawDuration() != 600*time.Millisecond {
		t.Errorf("timings = %v / %v", cfg.StepInterval(), cfg.DrawDuration())
	}
	if cfg.Canvas.CellWidth != 6 || cfg.Log.MaxAgeDays != 7 {
		t.Errorf("missing sections not defaulted: %+v %+v", cfg.Canvas, cfg.Log)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Log.File = filepath.Join(dir, "cutpath.log")
	if err := Save(cfg, dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Log.File != cfg.Log.File {
		t.Errorf("log file = %q", got.Log.File)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "localhost"
	if err := cfg.Validate(); err == nil {
		t.Error("relative base URL should fail validation")
	}
	cfg = DefaultConfig()
	cfg.Canvas.CellWidth = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative cell width should fail validation")
	}
}
