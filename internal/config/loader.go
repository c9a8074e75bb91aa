package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const configFile = "pokerdice.yaml"

// Load loads the table configuration.
// Search order: customPath -> ~/.pokerdice/configs/pokerdice.yaml ->
// ./configs/pokerdice.yaml -> embedded default. The first file that exists
// is used and must parse. POKERDICE_* environment
// variables override whatever file was used, then the result is validated.
func Load(customPath string) (PokerDiceConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (PokerDiceConfig, error) {
	// Unset keys keep their defaults.
	cfg := DefaultPokerDiceConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(configFile), filepath.Join("configs", configFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultPokerDiceConfig()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		return candidate, nil
	}

	if err := yaml.Unmarshal(defaultPokerDiceYAML, &cfg); err != nil {
		return DefaultPokerDiceConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from POKERDICE_* environment variables.
// Unset variables leave the field untouched.
func ApplyEnv(cfg *PokerDiceConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pokerdice", "configs", filename)
}
