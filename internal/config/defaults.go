package config

import (
	_ "embed"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// DefaultMemoryConfig returns the hard-coded configuration used when the
// embedded YAML cannot be parsed.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Gameplay: MemoryGameplay{
			RevealMS:       900,
			PointsPerMatch: 10,
			TimeBonus:      5,
		},
		Levels: []LevelConfig{
			{
				Name:     "easy",
				Size:     4,
				Duration: 60,
				Emojis:   []string{"🐶", "🐱", "🐭", "🐹", "🐰", "🦊", "🐻", "🐼", "🐨", "🐯"},
			},
			{
				Name:     "medium",
				Size:     6,
				Duration: 120,
				Emojis: []string{
					"🍎", "🍐", "🍊", "🍋", "🍌", "🍉", "🍇", "🍓", "🍒", "🍑",
					"🥭", "🍍", "🥥", "🥝", "🍅", "🍆", "🥑", "🥦", "🥕", "🌽",
				},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "memory":
		return defaultMemoryYAML
	default:
		return nil
	}
}
