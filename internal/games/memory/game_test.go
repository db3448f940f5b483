package memory

import (
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/core"
)

var testGameplay = config.MemoryGameplay{
	RevealMS:       100,
	PointsPerMatch: 10,
	TimeBonus:      5,
}

func testLevel() Level {
	return Level{Name: "t", Duration: 3, Emojis: []string{"🐶", "🐱"}, Size: 2}
}

// newTestGame returns a reset 2x2 game running at 10 ticks per second.
func newTestGame(t *testing.T, gp config.MemoryGameplay) *Game {
	t.Helper()
	g := New(testLevel(), gp)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

// flipAt moves the cursor to idx and flips in one tick.
func flipAt(g *Game, idx int) {
	g.s.cursor = idx
	step(g, core.ActionFlip)
}

// pairOf returns the indices of the two cards showing emoji.
func pairOf(t *testing.T, g *Game, emoji string) (int, int) {
	t.Helper()
	var idx []int
	for i, c := range g.s.cards {
		if c.Emoji == emoji {
			idx = append(idx, i)
		}
	}
	if len(idx) != 2 {
		t.Fatalf("emoji %s appears %d times, expected 2", emoji, len(idx))
	}
	return idx[0], idx[1]
}

func TestResetStartsWaiting(t *testing.T) {
	g := newTestGame(t, testGameplay)

	gs := g.Settings()
	if gs.State != StateWaiting {
		t.Errorf("State = %v, expected waiting", gs.State)
	}
	if len(gs.Cards) != 4 {
		t.Errorf("len(Cards) = %d, expected 4", len(gs.Cards))
	}
	if gs.Countdown != 3 {
		t.Errorf("Countdown = %d, expected 3", gs.Countdown)
	}
	if gs.Matches == nil || len(gs.Matches) != 0 {
		t.Errorf("Matches = %#v, expected empty non-nil", gs.Matches)
	}
	if gs.PlayerWon {
		t.Error("PlayerWon should be false on a fresh board")
	}
}

func TestClockWaitsForFirstFlip(t *testing.T) {
	g := newTestGame(t, testGameplay)

	for range 50 {
		step(g)
	}
	if g.s.state != StateWaiting {
		t.Fatalf("State = %v, expected waiting without input", g.s.state)
	}
	if g.s.countdown != 30 {
		t.Errorf("countdown = %d ticks, expected 30 while waiting", g.s.countdown)
	}

	flipAt(g, 0)
	if g.s.state != StatePlaying {
		t.Errorf("State = %v, expected playing after first flip", g.s.state)
	}
	if g.s.countdown != 29 {
		t.Errorf("countdown = %d ticks, expected 29", g.s.countdown)
	}
}

func TestMatchAndWin(t *testing.T) {
	g := newTestGame(t, testGameplay)
	emojis := g.Settings().Emojis

	a1, a2 := pairOf(t, g, emojis[0])
	flipAt(g, a1)
	flipAt(g, a2)

	if !g.s.matched[a1] || !g.s.matched[a2] {
		t.Fatal("matching pair should be marked matched")
	}
	if got := g.Settings().Matches; !slices.Equal(got, []string{emojis[0]}) {
		t.Errorf("Matches = %v, expected [%s]", got, emojis[0])
	}
	if g.s.state != StatePlaying {
		t.Fatalf("State = %v, expected playing with a pair left", g.s.state)
	}

	b1, b2 := pairOf(t, g, emojis[1])
	flipAt(g, b1)
	flipAt(g, b2)

	gs := g.Settings()
	if gs.State != StateWon || !gs.PlayerWon {
		t.Fatalf("State = %v PlayerWon = %v, expected won", gs.State, gs.PlayerWon)
	}
	if g.Moves() != 2 {
		t.Errorf("Moves() = %d, expected 2", g.Moves())
	}
	// Three ticks counted down before the winning flip: 27 ticks is 3s.
	if gs.Countdown != 3 {
		t.Errorf("Countdown = %d, expected 3", gs.Countdown)
	}
	if g.Score() != 2*10+3*5 {
		t.Errorf("Score() = %d, expected %d", g.Score(), 2*10+3*5)
	}
	if !g.State().GameOver {
		t.Error("GameOver should be true after winning")
	}
}

func TestMismatchTurnsBack(t *testing.T) {
	g := newTestGame(t, config.MemoryGameplay{RevealMS: 300, PointsPerMatch: 10})
	emojis := g.Settings().Emojis

	a, _ := pairOf(t, g, emojis[0])
	b, _ := pairOf(t, g, emojis[1])
	flipAt(g, a)
	flipAt(g, b)

	if !g.s.faceUp[a] || !g.s.faceUp[b] {
		t.Fatal("mismatched pair should stay face up while revealed")
	}
	if g.s.revealTicks != 3 {
		t.Fatalf("revealTicks = %d, expected 3", g.s.revealTicks)
	}
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", g.Moves())
	}

	// Flips during the reveal are ignored.
	_, other := pairOf(t, g, emojis[0])
	flipAt(g, other)
	if g.s.faceUp[other] {
		t.Error("flip during reveal should be ignored")
	}

	step(g)
	step(g)
	if g.s.faceUp[a] || g.s.faceUp[b] {
		t.Error("mismatched pair should be face down after the reveal")
	}
	if len(g.s.selected) != 0 {
		t.Errorf("selected = %v, expected empty", g.s.selected)
	}
	if len(g.Settings().Matches) != 0 {
		t.Error("mismatch must not record a match")
	}
}

func TestFlipIgnoresTurnedCards(t *testing.T) {
	g := newTestGame(t, testGameplay)
	emojis := g.Settings().Emojis

	a1, a2 := pairOf(t, g, emojis[0])
	flipAt(g, a1)
	flipAt(g, a1)
	if len(g.s.selected) != 1 || g.Moves() != 0 {
		t.Fatalf("flipping the same card twice: selected=%v moves=%d", g.s.selected, g.Moves())
	}

	flipAt(g, a2)
	flipAt(g, a1)
	if len(g.s.selected) != 0 {
		t.Errorf("flipping a matched card should do nothing, selected=%v", g.s.selected)
	}
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", g.Moves())
	}
}

func TestCountdownLoses(t *testing.T) {
	lvl := testLevel()
	lvl.Duration = 1
	g := New(lvl, testGameplay)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 1})

	flipAt(g, 0)
	for i := range 8 {
		step(g)
		if g.s.state != StatePlaying {
			t.Fatalf("lost early at tick %d", i+2)
		}
	}
	step(g)

	gs := g.Settings()
	if gs.State != StateLost || gs.PlayerWon {
		t.Fatalf("State = %v PlayerWon = %v, expected lost", gs.State, gs.PlayerWon)
	}
	if gs.Countdown != 0 {
		t.Errorf("Countdown = %d, expected 0", gs.Countdown)
	}

	out, ok := g.Outcome()
	if !ok {
		t.Fatal("Outcome() should be available after losing")
	}
	if out.State != StateLost || out.Pairs != 2 || out.Score != 0 {
		t.Errorf("Outcome() = %+v", out)
	}

	// Final states ignore further input.
	flipAt(g, 1)
	if g.s.faceUp[1] {
		t.Error("flip after losing should be ignored")
	}
}

func TestPauseFreezesClock(t *testing.T) {
	g := newTestGame(t, testGameplay)

	step(g, core.ActionPause)
	if g.paused {
		t.Fatal("pause should be ignored while waiting")
	}

	flipAt(g, 0)
	step(g, core.ActionPause)
	before := g.s.countdown
	for range 20 {
		step(g, core.ActionFlip)
	}
	if !g.State().Paused {
		t.Fatal("State().Paused should be true")
	}
	if g.s.countdown != before {
		t.Errorf("countdown moved while paused: %d -> %d", before, g.s.countdown)
	}
	if len(g.s.selected) != 1 {
		t.Errorf("flips while paused should be ignored, selected=%v", g.s.selected)
	}

	step(g, core.ActionPause)
	if g.s.countdown != before-1 {
		t.Errorf("countdown = %d, expected %d after resuming", g.s.countdown, before-1)
	}
}

func TestCursorWraps(t *testing.T) {
	g := newTestGame(t, testGameplay)

	tests := []struct {
		action core.Action
		from   int
		to     int
	}{
		{core.ActionLeft, 0, 1},
		{core.ActionRight, 1, 0},
		{core.ActionUp, 0, 2},
		{core.ActionDown, 3, 1},
		{core.ActionRight, 2, 3},
	}

	for _, tc := range tests {
		g.s.cursor = tc.from
		step(g, tc.action)
		if g.s.cursor != tc.to {
			t.Errorf("%v from %d: cursor = %d, expected %d", tc.action, tc.from, g.s.cursor, tc.to)
		}
	}
}

func TestSettingsIsACopy(t *testing.T) {
	g := newTestGame(t, testGameplay)
	emojis := g.Settings().Emojis
	a1, a2 := pairOf(t, g, emojis[0])
	flipAt(g, a1)
	flipAt(g, a2)

	gs := g.Settings()
	gs.Cards[0].Emoji = "X"
	gs.Emojis[0] = "X"
	gs.Matches[0] = "X"
	gs.Level.Emojis[0] = "X"

	again := g.Settings()
	if again.Cards[0].Emoji == "X" || again.Emojis[0] == "X" || again.Matches[0] == "X" || again.Level.Emojis[0] == "X" {
		t.Error("mutating Settings() leaked into the game")
	}
}

func TestSameSeedSameBoard(t *testing.T) {
	a := newTestGame(t, testGameplay)
	b := newTestGame(t, testGameplay)
	if !slices.Equal(a.Settings().Cards, b.Settings().Cards) {
		t.Error("same seed should deal the same board")
	}
}

func TestSettingsJSON(t *testing.T) {
	g := newTestGame(t, testGameplay)

	data, err := json.Marshal(g.Settings())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(data), `"state":"waiting"`) {
		t.Errorf("state should marshal by name: %s", data)
	}
	if !strings.Contains(string(data), `"player_won":false`) {
		t.Errorf("missing player_won: %s", data)
	}

	var back GameSettings
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.State != StateWaiting || len(back.Cards) != 4 {
		t.Errorf("round trip = %+v", back)
	}
}

func TestPlayStateParse(t *testing.T) {
	for _, s := range []PlayState{StateWaiting, StatePlaying, StateWon, StateLost} {
		got, err := ParsePlayState(s.String())
		if err != nil || got != s {
			t.Errorf("ParsePlayState(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParsePlayState("draw"); err == nil {
		t.Error("ParsePlayState should reject unknown names")
	}
	if StateWaiting.IsFinal() || StatePlaying.IsFinal() || !StateWon.IsFinal() || !StateLost.IsFinal() {
		t.Error("IsFinal mismatch")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testGameplay)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "Memory: T (2x2)") {
		t.Error("render should show the level title")
	}
	if !strings.Contains(out, ">▒▒<") {
		t.Error("render should mark the cursor card")
	}
	if !strings.Contains(out, "[▒▒]") {
		t.Error("render should show face-down cards")
	}

	flipAt(g, 1)
	g.s.cursor = 0
	g.Render(screen)
	if !strings.Contains(screen.String(), "["+g.s.cards[1].Emoji+"]") {
		t.Error("render should show the turned card's emoji")
	}
}

func TestTooSmall(t *testing.T) {
	g := New(testLevel(), testGameplay)
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 10, Seed: 1})

	if !g.State().Paused {
		t.Error("a too-small screen should pause the game")
	}
	flipAt(g, 0)
	if g.s.state != StateWaiting {
		t.Error("input should be ignored while the screen is too small")
	}

	screen := core.NewScreen(10, 5)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Error("render should explain the screen is too small")
	}
}

func TestResizeKeepsBoard(t *testing.T) {
	g := newTestGame(t, testGameplay)
	flipAt(g, 0)
	before := g.Settings().Cards

	g.Resize(10, 5)
	if !g.State().Paused {
		t.Error("shrinking below the board should pause")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("growing back should unpause")
	}

	if !slices.Equal(g.Settings().Cards, before) || !g.s.faceUp[0] {
		t.Error("Resize should not redeal the board")
	}
}
