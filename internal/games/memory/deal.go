package memory

import (
	"github.com/oscarklm/matchmoji/internal/shuffle"
)

// Deal lays out a board for the level: Pairs() emojis are drawn from the
// level's set, each placed twice, and the cards are shuffled. Card IDs are
// assigned in board order. It also returns the emojis that were drawn.
// The level must be valid.
func Deal(level Level, src shuffle.Source) ([]Card, []string) {
	pool := shuffle.ShuffleWith(src, distinct(level.Emojis))[:level.Pairs()]

	deck := make([]string, 0, 2*len(pool))
	deck = append(deck, pool...)
	deck = append(deck, pool...)
	deck = shuffle.ShuffleWith(src, deck)

	cards := make([]Card, len(deck))
	for i, emoji := range deck {
		cards[i] = Card{ID: i, Emoji: emoji}
	}
	return cards, pool
}
