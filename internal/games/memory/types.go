// Package memory implements an emoji pair-matching game: cards are dealt
// face down and the player turns two at a time, racing a countdown.
package memory

import (
	"fmt"
	"slices"
)

// Card is a single placed piece on the board.
// ID is unique within one deal and equals the card's board position.
type Card struct {
	ID    int    `json:"id"`
	Emoji string `json:"emoji"`
}

// PlayState is the coarse lifecycle phase of a round.
// Rounds move waiting -> playing -> won or lost and never go back.
type PlayState int

const (
	StateWaiting PlayState = iota
	StatePlaying
	StateWon
	StateLost
)

var playStateNames = [...]string{
	StateWaiting: "waiting",
	StatePlaying: "playing",
	StateWon:     "won",
	StateLost:    "lost",
}

func (s PlayState) String() string {
	if s < 0 || int(s) >= len(playStateNames) {
		return fmt.Sprintf("PlayState(%d)", int(s))
	}
	return playStateNames[s]
}

// IsFinal reports whether the round has ended.
func (s PlayState) IsFinal() bool {
	return s == StateWon || s == StateLost
}

// ParsePlayState converts a state name back to its PlayState.
func ParsePlayState(name string) (PlayState, error) {
	for i, n := range playStateNames {
		if n == name {
			return PlayState(i), nil
		}
	}
	return 0, fmt.Errorf("memory: unknown play state %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s PlayState) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(playStateNames) {
		return nil, fmt.Errorf("memory: invalid play state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *PlayState) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// GameSettings is the full observable state of one round: the level being
// played plus everything that changed since the deal. Values returned by
// Game.Settings are copies and never alias the running game.
type GameSettings struct {
	State     PlayState `json:"state"`
	Level     Level     `json:"level"`
	Matches   []string  `json:"matches"`
	Emojis    []string  `json:"emojis"`
	Cards     []Card    `json:"cards"`
	Countdown int       `json:"countdown"`
	PlayerWon bool      `json:"player_won"`
}

func (gs GameSettings) clone() GameSettings {
	gs.Level = gs.Level.clone()
	gs.Matches = slices.Clone(gs.Matches)
	gs.Emojis = slices.Clone(gs.Emojis)
	gs.Cards = slices.Clone(gs.Cards)
	return gs
}
