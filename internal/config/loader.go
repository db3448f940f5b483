package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigDirName is the per-user directory holding configs, scores and keys.
const ConfigDirName = ".matchmoji"

// LoadMemory loads the memory game configuration.
// Search order: customPath -> ~/.matchmoji/configs/memory.yaml -> ./configs/memory.yaml -> embedded default
func LoadMemory(customPath string) (MemoryConfig, error) {
	var cfg MemoryConfig

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return withGameplayDefaults(cfg), nil
	}

	if userCfgPath := userConfigPath("memory.yaml"); userCfgPath != "" {
		if loaded, ok := tryLoad(userCfgPath); ok {
			return loaded, nil
		}
	}

	if loaded, ok := tryLoad(filepath.Join("configs", "memory.yaml")); ok {
		return loaded, nil
	}

	return LoadEmbeddedMemory(), nil
}

// LoadEmbeddedMemory returns the built-in configuration without consulting
// the filesystem.
func LoadEmbeddedMemory() MemoryConfig {
	var cfg MemoryConfig
	if err := yaml.Unmarshal(defaultMemoryYAML, &cfg); err != nil || len(cfg.Levels) == 0 {
		return DefaultMemoryConfig()
	}
	return withGameplayDefaults(cfg)
}

// tryLoad reads and parses an optional config file. Missing, unreadable or
// level-less files are skipped so the next search location is tried.
func tryLoad(path string) (MemoryConfig, bool) {
	var cfg MemoryConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil || len(cfg.Levels) == 0 {
		return cfg, false
	}
	return withGameplayDefaults(cfg), true
}

// withGameplayDefaults fills gameplay fields a partial config left at zero.
func withGameplayDefaults(cfg MemoryConfig) MemoryConfig {
	def := DefaultMemoryConfig().Gameplay
	if cfg.Gameplay.RevealMS <= 0 {
		cfg.Gameplay.RevealMS = def.RevealMS
	}
	if cfg.Gameplay.PointsPerMatch <= 0 {
		cfg.Gameplay.PointsPerMatch = def.PointsPerMatch
	}
	if cfg.Gameplay.TimeBonus < 0 {
		cfg.Gameplay.TimeBonus = 0
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName, "configs", filename)
}

// ApplyMemoryPreset scales level durations and the reveal delay for a preset.
// Fixed leaves the configuration untouched.
func ApplyMemoryPreset(cfg *MemoryConfig, preset DifficultyPreset) {
	durScale, revealScale := presetScale(preset)

	for i := range cfg.Levels {
		if cfg.Levels[i].Duration <= 0 {
			continue // Left for validation to reject
		}
		scaled := int(math.Round(float64(cfg.Levels[i].Duration) * durScale))
		cfg.Levels[i].Duration = max(scaled, 1)
	}
	cfg.Gameplay.RevealMS = max(int(math.Round(float64(cfg.Gameplay.RevealMS)*revealScale)), 1)
}
