package memory

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/registry"
)

// GameIDPrefix prefixes every level's registry ID.
const GameIDPrefix = "memory_"

var (
	levelsMu sync.RWMutex
	levels   []Level
	gameplay config.MemoryGameplay
)

func init() {
	if err := ConfigureDefaults(config.DifficultyNormal); err != nil {
		panic(err)
	}
}

// Configure loads the level set from configPath (or the default search path
// when empty), applies the difficulty preset, and registers one game per
// level, replacing any previously registered levels.
//
// With an explicit configPath a failure leaves the active set unchanged.
// When a file on the search path is unusable, the built-in levels are
// installed with the preset applied and the error is still returned.
func Configure(configPath string, preset config.DifficultyPreset) error {
	cfg, err := config.LoadMemory(configPath)
	if err != nil {
		return fmt.Errorf("memory: loading levels: %w", err)
	}
	config.ApplyMemoryPreset(&cfg, preset)
	if err := install(cfg); err != nil {
		if configPath != "" {
			return err
		}
		if fallbackErr := ConfigureDefaults(preset); fallbackErr != nil {
			return errors.Join(err, fallbackErr)
		}
		return err
	}
	return nil
}

// ConfigureDefaults installs the built-in levels with the preset applied.
func ConfigureDefaults(preset config.DifficultyPreset) error {
	cfg := config.LoadEmbeddedMemory()
	config.ApplyMemoryPreset(&cfg, preset)
	return install(cfg)
}

// install validates cfg and swaps it in as the active level set.
func install(cfg config.MemoryConfig) error {
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("%w: no levels configured", ErrInvalidLevel)
	}

	loaded := make([]Level, 0, len(cfg.Levels))
	seen := make(map[string]bool, len(cfg.Levels))
	for _, lc := range cfg.Levels {
		lvl := LevelFromConfig(lc)
		if err := lvl.Validate(); err != nil {
			return fmt.Errorf("level %q: %w", lc.Name, err)
		}
		if seen[lvl.ID()] {
			return fmt.Errorf("%w: duplicate level %q", ErrInvalidLevel, lvl.Name)
		}
		seen[lvl.ID()] = true
		loaded = append(loaded, lvl)
	}

	levelsMu.Lock()
	defer levelsMu.Unlock()

	for _, old := range levels {
		registry.Unregister(old.ID())
	}
	levels = loaded
	gameplay = cfg.Gameplay

	for _, lvl := range loaded {
		gp := cfg.Gameplay
		registry.Register(lvl.ID(), func() registry.Game {
			return New(lvl, gp)
		})
	}
	return nil
}

// Levels returns a copy of the active level set in configured order.
func Levels() []Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()

	out := make([]Level, len(levels))
	for i, lvl := range levels {
		out[i] = lvl.clone()
	}
	return out
}

// Gameplay returns the active gameplay rules.
func Gameplay() config.MemoryGameplay {
	levelsMu.RLock()
	defer levelsMu.RUnlock()
	return gameplay
}

// FindLevel resolves a reference to an active level. A reference may be the
// level name (case-insensitive), its game ID, or a 1-based position.
func FindLevel(ref string) (Level, error) {
	all := Levels()
	ref = strings.TrimSpace(ref)

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(all) {
			return all[n-1], nil
		}
		return Level{}, fmt.Errorf("%w: index %d out of range 1-%d", ErrUnknownLevel, n, len(all))
	}

	idx := slices.IndexFunc(all, func(l Level) bool {
		return strings.EqualFold(l.Name, ref) || l.ID() == ref
	})
	if idx < 0 {
		return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, ref)
	}
	return all[idx], nil
}
