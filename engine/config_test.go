package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "strafe.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "Strafe" || cfg.Window.Width != 1280 || cfg.Window.Height != 720 {
		t.Fatalf("unexpected window defaults: %+v", cfg.Window)
	}
	if cfg.Assets.BasePath != "assets" {
		t.Fatalf("asset base = %q", cfg.Assets.BasePath)
	}
	if cfg.FrameRate != 60 {
		t.Fatalf("frame rate = %d", cfg.FrameRate)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strafe.toml")
	blob := `
log_level = "debug"
frame_rate = 144

[window]
title = "Custom"
width = 640
height = 480

[assets]
base_path = "data"
hot_reload = true
`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Window.Title != "Custom" || cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Fatalf("window = %+v", cfg.Window)
	}
	if !cfg.Assets.HotReload || cfg.Assets.BasePath != "data" {
		t.Fatalf("assets = %+v", cfg.Assets)
	}
	if cfg.FrameRate != 144 {
		t.Fatalf("frame rate = %d", cfg.FrameRate)
	}
	// Unset keys keep their defaults.
	if cfg.Window.PosX != 100 {
		t.Fatalf("pos x = %d", cfg.Window.PosX)
	}
}

func TestLoadConfigEnvOverridesAssetBase(t *testing.T) {
	t.Setenv("STRAFE_ASSETS", "/srv/strafe/assets")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "strafe.toml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Assets.BasePath != "/srv/strafe/assets" {
		t.Fatalf("asset base = %q", cfg.Assets.BasePath)
	}
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strafe.toml")
	if err := os.WriteFile(path, []byte("== not toml =="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}
