package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pokerdice/internal/dice"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokerdice.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg PokerDiceConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultPokerDiceConfig() {
		t.Errorf("embedded defaults = %+v\nexpected %+v", cfg, DefaultPokerDiceConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadDefaultWithoutFiles(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxDice != 5 {
		t.Errorf("MaxDice = %d, expected 5", cfg.Game.MaxDice)
	}
}

func TestLoadCustomPathKeepsUnsetDefaults(t *testing.T) {
	path := writeConfig(t, "game:\n  max_dice: 3\npolicy:\n  start_from: detect_surface\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxDice != 3 {
		t.Errorf("MaxDice = %d, expected 3", cfg.Game.MaxDice)
	}
	if cfg.Game.ImpulseMultiplier != 2.5 {
		t.Errorf("ImpulseMultiplier = %f, expected default 2.5", cfg.Game.ImpulseMultiplier)
	}
	if !cfg.Policy.HoldPlayOnTrackingLoss {
		t.Error("HoldPlayOnTrackingLoss should keep its default")
	}

	opts := cfg.DiceOptions(7)
	if opts.Policy.StartFrom != dice.PhaseDetectSurface {
		t.Errorf("StartFrom = %v, expected detect_surface", opts.Policy.StartFrom)
	}
	if opts.Seed != 7 || opts.MaxDice != 3 {
		t.Errorf("DiceOptions() = %+v", opts)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	if _, err := Load(writeConfig(t, "game: [not, a, map")); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}

	_, err := Load(writeConfig(t, "game:\n  max_dice: 0\n"))
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() with max_dice 0 error = %v, expected ErrInvalid", err)
	}
}

func TestLoadUserConfigParseError(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, ".pokerdice", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	path := filepath.Join(dir, "pokerdice.yaml")
	if err := os.WriteFile(path, []byte("game:\n  max_dice: [5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	_, err := Load("")
	if err == nil {
		t.Fatal("Load() should report a malformed user config")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Load() error = %v, expected it to name %s", err, path)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("POKERDICE_MAX_DICE", "2")
	t.Setenv("POKERDICE_HOLD_PLAY", "false")
	t.Setenv("POKERDICE_TABLE_RADIUS", "1.5")

	cfg, err := Load(writeConfig(t, "game:\n  max_dice: 4\n"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Game.MaxDice != 2 {
		t.Errorf("MaxDice = %d, expected env override 2", cfg.Game.MaxDice)
	}
	if cfg.Policy.HoldPlayOnTrackingLoss {
		t.Error("HoldPlayOnTrackingLoss should be overridden to false")
	}
	if cfg.Engine.TableRadius != 1.5 {
		t.Errorf("TableRadius = %f, expected 1.5", cfg.Engine.TableRadius)
	}
	if cfg.Engine.SettleTicks != 20 {
		t.Errorf("SettleTicks = %d, expected untouched default 20", cfg.Engine.SettleTicks)
	}
}

func TestEnvOverrideBadValue(t *testing.T) {
	t.Setenv("POKERDICE_MAX_DICE", "many")

	cfg := DefaultPokerDiceConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("ApplyEnv() should reject a non-numeric max dice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PokerDiceConfig)
	}{
		{"too many dice", func(c *PokerDiceConfig) { c.Game.MaxDice = 11 }},
		{"zero multiplier", func(c *PokerDiceConfig) { c.Game.ImpulseMultiplier = 0 }},
		{"unknown start phase", func(c *PokerDiceConfig) { c.Policy.StartFrom = "whenever" }},
		{"start from play", func(c *PokerDiceConfig) { c.Policy.StartFrom = "swipe_to_play" }},
		{"zero settle ticks", func(c *PokerDiceConfig) { c.Engine.SettleTicks = 0 }},
		{"negative surface delay", func(c *PokerDiceConfig) { c.Engine.SurfaceDelayTicks = -1 }},
		{"zero radius", func(c *PokerDiceConfig) { c.Engine.TableRadius = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPokerDiceConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestScriptedEngineMapping(t *testing.T) {
	cfg := DefaultPokerDiceConfig()
	cfg.Engine.SettleTicks = 9
	cfg.Engine.Flight = 0.25

	ec := cfg.ScriptedEngine()
	if ec.SettleTicks != 9 || ec.Flight != 0.25 || ec.SurfaceDelay != 30 {
		t.Errorf("ScriptedEngine() = %+v", ec)
	}
}
