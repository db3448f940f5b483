package memory

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oscarklm/matchmoji/internal/config"
)

var (
	// ErrInvalidLevel is returned when a level cannot produce a playable board.
	ErrInvalidLevel = errors.New("memory: invalid level")
	// ErrUnknownLevel is returned when a level lookup matches nothing.
	ErrUnknownLevel = errors.New("memory: unknown level")
)

// Level describes one playable round. It is loaded once and never mutated
// by a running game.
type Level struct {
	Name     string   `json:"name" yaml:"name"`
	Duration int      `json:"duration" yaml:"duration"` // Countdown in seconds
	Emojis   []string `json:"emojis" yaml:"emojis"`     // Candidate card faces
	Size     int      `json:"size" yaml:"size"`         // Board side length
}

// LevelFromConfig converts the YAML form of a level.
func LevelFromConfig(lc config.LevelConfig) Level {
	return Level{
		Name:     strings.TrimSpace(lc.Name),
		Duration: lc.Duration,
		Emojis:   trimAll(lc.Emojis),
		Size:     lc.Size,
	}
}

// CardCount returns the number of cards dealt for this level.
func (l Level) CardCount() int {
	return l.Size * l.Size
}

// Pairs returns the number of distinct emojis on the board.
func (l Level) Pairs() int {
	return l.CardCount() / 2
}

// ID returns the registry/score identifier for this level.
func (l Level) ID() string {
	return GameIDPrefix + strings.ToLower(strings.Join(strings.Fields(l.Name), "-"))
}

// Title returns a display name such as "Memory: Easy (4x4)".
func (l Level) Title() string {
	name := l.Name
	if r, size := utf8.DecodeRuneInString(name); size > 0 {
		name = string(unicode.ToUpper(r)) + name[size:]
	}
	return fmt.Sprintf("Memory: %s (%dx%d)", name, l.Size, l.Size)
}

// Validate checks that the level can be dealt and played.
func (l Level) Validate() error {
	switch {
	case l.Name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidLevel)
	case l.Size <= 0:
		return fmt.Errorf("%w: size must be positive, got %d", ErrInvalidLevel, l.Size)
	case l.CardCount()%2 != 0:
		return fmt.Errorf("%w: %dx%d board has an odd number of cards", ErrInvalidLevel, l.Size, l.Size)
	case l.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidLevel, l.Duration)
	}

	if n := len(distinct(l.Emojis)); n < l.Pairs() {
		return fmt.Errorf("%w: %q needs %d distinct emojis, has %d", ErrInvalidLevel, l.Name, l.Pairs(), n)
	}
	return nil
}

func (l Level) clone() Level {
	l.Emojis = slices.Clone(l.Emojis)
	return l
}

// trimAll strips surrounding whitespace from each emoji so the faces dealt
// on cards are byte-for-byte entries of the level's set.
func trimAll(emojis []string) []string {
	out := make([]string, len(emojis))
	for i, e := range emojis {
		out[i] = strings.TrimSpace(e)
	}
	return out
}

// distinct returns the non-empty entries of emojis with duplicates removed,
// keeping first-seen order.
func distinct(emojis []string) []string {
	seen := make(map[string]bool, len(emojis))
	out := make([]string, 0, len(emojis))
	for _, e := range emojis {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
