package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadBlockwayCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
rules:
  mine_chain: false
  max_belt_passes: 50
gameplay:
  undo_limit: 3
  auto_advance: true
display:
  floor_dots: false
  show_hud: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadBlockway(path)
	if err != nil {
		t.Fatalf("LoadBlockway() failed: %v", err)
	}
	if cfg.Rules.MineChain {
		t.Error("mine_chain should be false")
	}
	if cfg.Rules.MaxBeltPasses != 50 {
		t.Errorf("max_belt_passes = %d, want 50", cfg.Rules.MaxBeltPasses)
	}
	if cfg.Gameplay.UndoLimit != 3 {
		t.Errorf("undo_limit = %d, want 3", cfg.Gameplay.UndoLimit)
	}
	if !cfg.Gameplay.AutoAdvance {
		t.Error("auto_advance should be true")
	}
	if cfg.Display.FloorDots {
		t.Error("floor_dots should be false")
	}
}

func TestLoadBlockwayMissingCustomPath(t *testing.T) {
	if _, err := LoadBlockway("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected an error for a missing custom path")
	}
}

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var cfg BlockwayConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultBlockwayConfig() {
		t.Errorf("embedded default %+v differs from hardcoded %+v", cfg, DefaultBlockwayConfig())
	}
}
