// Package config provides YAML-based game configuration loading and
// difficulty presets for matchmoji.
package config

// MemoryConfig contains all configuration for the memory game.
type MemoryConfig struct {
	Gameplay MemoryGameplay `yaml:"gameplay"`
	Levels   []LevelConfig  `yaml:"levels"`
}

// MemoryGameplay defines rules shared by every level.
type MemoryGameplay struct {
	RevealMS       int `yaml:"reveal_ms"`        // How long a mismatched pair stays face up
	PointsPerMatch int `yaml:"points_per_match"` // Score per matched pair
	TimeBonus      int `yaml:"time_bonus"`       // Score per second left on a win
}

// LevelConfig is the on-disk form of one playable round.
type LevelConfig struct {
	Name     string   `yaml:"name"`
	Size     int      `yaml:"size"`     // Board side length
	Duration int      `yaml:"duration"` // Countdown in seconds
	Emojis   []string `yaml:"emojis"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficultyPreset validates a preset name. Empty means normal.
func ParseDifficultyPreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, true
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// presetScale returns the duration and reveal-delay multipliers for a preset.
func presetScale(preset DifficultyPreset) (duration, reveal float64) {
	switch preset {
	case DifficultyEasy:
		return 1.5, 1.5
	case DifficultyHard:
		return 0.75, 0.6
	default:
		return 1.0, 1.0
	}
}
