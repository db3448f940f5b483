package memory

import (
	"math/rand"
	"time"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/core"
)

// Game implements one level of the memory game.
type Game struct {
	level    Level
	gameplay config.MemoryGameplay

	rng      *rand.Rand
	tick     uint64
	tickRate int

	// Screen dimensions
	screenW int
	screenH int

	s session

	paused   bool
	tooSmall bool
}

// session is the mutable part of a round. It is rebuilt on every Reset so
// nothing leaks from one round into the next.
type session struct {
	state   PlayState
	cards   []Card
	emojis  []string // Emojis dealt on this board
	matched []bool   // Indexed by card ID
	faceUp  []bool   // Turned but not yet matched
	matches []string // Matched emojis in the order they were found

	selected    []int // Face-up unmatched cards, at most two
	revealTicks int   // Ticks left before a mismatched pair turns back
	countdown   int   // Ticks left on the clock
	moves       int
	cursor      int
}

// New creates a game for the given level.
func New(level Level, gameplay config.MemoryGameplay) *Game {
	return &Game{
		level:    level.clone(),
		gameplay: gameplay,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.level.ID()
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.level.Title()
}

// Level returns the level this game plays.
func (g *Game) Level() Level {
	return g.level.clone()
}

// Reset deals a fresh board and returns to the waiting state.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.tick = 0
	g.tickRate = cfg.TicksPerSecond()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false

	cards, emojis := Deal(g.level, g.rng)
	g.s = session{
		state:     StateWaiting,
		cards:     cards,
		emojis:    emojis,
		matched:   make([]bool, len(cards)),
		faceUp:    make([]bool, len(cards)),
		countdown: g.level.Duration * g.tickRate,
	}

	g.checkScreenSize()
}

// Resize updates the screen dimensions without dealing a new board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen can hold the board and HUD.
func (g *Game) checkScreenSize() {
	w, h := boardSize(g.level.Size)
	g.tooSmall = g.screenW < w+2 || g.screenH < h+hudHeight+footerHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.s.state == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused || g.s.state.IsFinal() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	if g.s.revealTicks > 0 {
		g.s.revealTicks--
		if g.s.revealTicks == 0 {
			g.hideSelected()
		}
	} else if in.Has(core.ActionFlip) || in.Has(core.ActionConfirm) {
		if g.s.state == StateWaiting {
			g.s.state = StatePlaying
		}
		g.flip(g.s.cursor)
	}

	if g.s.state == StatePlaying {
		g.s.countdown--
		if g.s.countdown <= 0 {
			g.s.countdown = 0
			g.s.state = StateLost
		}
	}

	return core.StepResult{State: g.State()}
}

// moveCursor moves the board cursor, wrapping at the edges.
func (g *Game) moveCursor(in core.InputFrame) {
	size := g.level.Size
	row, col := g.s.cursor/size, g.s.cursor%size

	switch {
	case in.Has(core.ActionUp):
		row--
	case in.Has(core.ActionDown):
		row++
	case in.Has(core.ActionLeft):
		col--
	case in.Has(core.ActionRight):
		col++
	default:
		return
	}

	g.s.cursor = core.Wrap(row, size)*size + core.Wrap(col, size)
}

// flip turns over the card at idx. Matched and already-turned cards, and
// flips while two cards are showing, are ignored.
func (g *Game) flip(idx int) {
	if idx < 0 || idx >= len(g.s.cards) {
		return
	}
	if g.s.matched[idx] || g.s.faceUp[idx] || len(g.s.selected) >= 2 {
		return
	}

	g.s.faceUp[idx] = true
	g.s.selected = append(g.s.selected, idx)
	if len(g.s.selected) < 2 {
		return
	}

	g.s.moves++
	a, b := g.s.selected[0], g.s.selected[1]
	if g.s.cards[a].Emoji != g.s.cards[b].Emoji {
		g.s.revealTicks = max(g.gameplay.RevealMS*g.tickRate/1000, 1)
		return
	}

	g.s.matched[a], g.s.matched[b] = true, true
	g.s.faceUp[a], g.s.faceUp[b] = false, false
	g.s.selected = g.s.selected[:0]
	g.s.matches = append(g.s.matches, g.s.cards[a].Emoji)

	if len(g.s.matches) == len(g.s.emojis) {
		g.s.state = StateWon
	}
}

// hideSelected turns a mismatched pair back over.
func (g *Game) hideSelected() {
	for _, idx := range g.s.selected {
		g.s.faceUp[idx] = false
	}
	g.s.selected = g.s.selected[:0]
}

// secondsLeft rounds the remaining ticks up to whole seconds.
func (g *Game) secondsLeft() int {
	if g.tickRate <= 0 {
		return 0
	}
	return (g.s.countdown + g.tickRate - 1) / g.tickRate
}

// Score returns matched pairs times the per-match points, plus a bonus for
// every second left on a win.
func (g *Game) Score() int {
	score := len(g.s.matches) * g.gameplay.PointsPerMatch
	if g.s.state == StateWon {
		score += g.secondsLeft() * g.gameplay.TimeBonus
	}
	return score
}

// Moves returns the number of pairs turned so far.
func (g *Game) Moves() int {
	return g.s.moves
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.s.state.IsFinal(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Settings returns a copy of the round's full observable state.
func (g *Game) Settings() GameSettings {
	gs := GameSettings{
		State:     g.s.state,
		Level:     g.level,
		Matches:   g.s.matches,
		Emojis:    g.s.emojis,
		Cards:     g.s.cards,
		Countdown: g.secondsLeft(),
		PlayerWon: g.s.state == StateWon,
	}
	gs = gs.clone()
	if gs.Matches == nil {
		gs.Matches = []string{}
	}
	return gs
}

// Outcome summarizes a finished round for persistence.
type Outcome struct {
	Level       string
	State       PlayState
	Matches     int
	Pairs       int
	Moves       int
	SecondsLeft int
	Score       int
}

// Outcome returns the round summary. ok is false until the round has ended.
func (g *Game) Outcome() (Outcome, bool) {
	if !g.s.state.IsFinal() {
		return Outcome{}, false
	}
	return Outcome{
		Level:       g.level.Name,
		State:       g.s.state,
		Matches:     len(g.s.matches),
		Pairs:       len(g.s.emojis),
		Moves:       g.s.moves,
		SecondsLeft: g.secondsLeft(),
		Score:       g.Score(),
	}, true
}
