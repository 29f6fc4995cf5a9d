package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recera/cutpath/pkg/api"
	"github.com/recera/cutpath/pkg/editor"
)

func TestGlobalFlags_ServerOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutpath.json")
	if err := os.WriteFile(path, []byte(`{"server":{"baseURL":"http://file:1"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	g := &globalFlags{configPath: path}
	cfg, err := g.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "http://file:1" {
		t.Errorf("baseURL = %q", cfg.Server.BaseURL)
	}

	g.server = "http://flag:2"
	cfg, err = g.load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.BaseURL != "http://flag:2" {
		t.Errorf("baseURL = %q, want the flag value", cfg.Server.BaseURL)
	}
}

func TestGlobalFlags_InvalidServer(t *testing.T) {
	g := &globalFlags{configPath: filepath.Join(t.TempDir(), "missing.json"), server: "not a url"}
	if _, err := g.load(); err == nil {
		t.Error("expected a validation error")
	}
}

func TestValidKind(t *testing.T) {
	for _, k := range exampleKinds {
		if !validKind(k) {
			t.Errorf("%q should be valid", k)
		}
	}
	if validKind("hexagon") {
		t.Error("hexagon should be invalid")
	}
}

func TestMachineParams_FlagOverrides(t *testing.T) {
	base := api.Params{Speed: 120, SetupTime: 1}

	got := machineParams(base, 250, 0, true, false)
	if got.Speed != 250 || got.SetupTime != 1 {
		t.Errorf("speed only = %+v", got)
	}

	got = machineParams(base, -5, 0, true, true)
	if got.Speed != editor.DefaultSpeed || got.SetupTime != editor.DefaultSetupTime {
		t.Errorf("non-positive flags = %+v, want the defaults", got)
	}

	got = machineParams(base, -5, 0, false, false)
	if got != base {
		t.Errorf("unset flags = %+v, want %+v", got, base)
	}
}
