package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the preset for a game.
// Search order: customPath -> ~/.arcade/configs/<game>.yaml -> ./configs/<game>.yaml
// -> embedded default -> hardcoded default.
func Load(gameID, customPath string) (GameConfig, error) {
	var cfg GameConfig

	// A custom path must exist and parse
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	filename := gameID + ".yaml"

	// Broken files further down the search path are skipped
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if c, ok := readPreset(userCfgPath); ok {
			return c, nil
		}
	}
	if c, ok := readPreset(filepath.Join("configs", filename)); ok {
		return c, nil
	}

	if data, err := embeddedYAML(gameID); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	if c, ok := DefaultGameConfig(gameID); ok {
		return c, nil
	}
	return cfg, fmt.Errorf("%w: %s", ErrUnknownGame, gameID)
}

func readPreset(path string) (GameConfig, bool) {
	var cfg GameConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	if cfg.Validate() != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Save writes a preset as YAML, creating parent directories.
func Save(path string, cfg GameConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// UserPresetPath returns where a user override for gameID lives, or empty if
// the home directory is unknown.
func UserPresetPath(gameID string) string {
	return userConfigPath(gameID + ".yaml")
}
