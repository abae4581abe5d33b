package rampart

import (
	"path/filepath"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	if cfg.Title == "" {
		t.Error("empty default title")
	}
	if cfg.LogicalWidth != 640 || cfg.LogicalHeight != 480 {
		t.Errorf("logical defaults = %dx%d", cfg.LogicalWidth, cfg.LogicalHeight)
	}
	if cfg.WindowWidth != 640 || cfg.WindowHeight != 480 {
		t.Errorf("window defaults = %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
}

func TestConfigWindowDefaultsToLogical(t *testing.T) {
	cfg := Config{LogicalWidth: 320, LogicalHeight: 240}.withDefaults()
	if cfg.WindowWidth != 320 || cfg.WindowHeight != 240 {
		t.Errorf("window = %dx%d, want logical size", cfg.WindowWidth, cfg.WindowHeight)
	}
}

func TestConfigSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	in := Config{
		Title:          "demo",
		LogicalWidth:   320,
		LogicalHeight:  240,
		WindowWidth:    1280,
		WindowHeight:   960,
		IntegerScaling: true,
		Resizable:      true,
	}
	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	out, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if out != in {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
