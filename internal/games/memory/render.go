package memory

import (
	"fmt"

	"github.com/oscarklm/matchmoji/internal/core"
)

const (
	cellWidth    = 5 // "[🐶]" plus one column of spacing
	cellHeight   = 2 // One row of card, one blank
	hudHeight    = 3
	footerHeight = 2

	faceDown = "▒▒"
)

// boardSize returns the columns and rows a size x size board occupies.
func boardSize(size int) (w, h int) {
	return size*cellWidth - 1, size*cellHeight - 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.level.Size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderBoard(dst, boardX, boardY)
	g.renderOverlays(dst, boardY, boardH)

	dst.DrawTextColor((g.screenW-core.TextWidth(Controls()))/2, g.screenH-1, Controls(), core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")

	w, h := boardSize(g.level.Size)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w+2, h+hudHeight+footerHeight))
}

// renderHUD draws the title, progress and clock.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.level.Title()
	dst.DrawTextColor(boardX+(boardW-core.TextWidth(title))/2, 0, title, core.ColorBrightYellow)

	progress := fmt.Sprintf("Matches: %d/%d", len(g.s.matches), len(g.s.emojis))
	dst.DrawText(boardX, 1, progress)

	secs := g.secondsLeft()
	clock := fmt.Sprintf("Time: %ds", secs)
	clockColor := core.ColorDefault
	if secs <= 10 {
		clockColor = core.ColorRed
	}
	dst.DrawTextColor(max(boardX+boardW-len(clock), boardX), 1, clock, clockColor)

	moves := fmt.Sprintf("Moves: %d", g.s.moves)
	dst.DrawText(boardX+(boardW-len(moves))/2, 2, moves)
}

// renderBoard draws every card in its grid position.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	size := g.level.Size
	for i, card := range g.s.cards {
		x := boardX + (i%size)*cellWidth
		y := boardY + (i/size)*cellHeight

		face := faceDown
		faceColor := core.ColorGray
		bracketColor := core.ColorGray
		switch {
		case g.s.matched[i]:
			face, faceColor, bracketColor = card.Emoji, core.ColorDefault, core.ColorGreen
		case g.s.faceUp[i]:
			face, faceColor, bracketColor = card.Emoji, core.ColorDefault, core.ColorYellow
		}

		left, right := '[', ']'
		if i == g.s.cursor && !g.s.state.IsFinal() {
			left, right = '>', '<'
			bracketColor = core.ColorBrightCyan
		}

		dst.SetColor(x, y, left, bracketColor)
		dst.DrawTextColor(x+1, y, face, faceColor)
		dst.SetColor(x+3, y, right, bracketColor)
	}
}

// renderOverlays draws state banners over or under the board.
func (g *Game) renderOverlays(dst *core.Screen, boardY, boardH int) {
	centerY := boardY + boardH/2

	switch {
	case g.s.state == StateWon:
		g.drawOverlay(dst, centerY, []string{
			"ALL PAIRS FOUND!",
			fmt.Sprintf("Score: %d", g.Score()),
			"R to play again",
		}, core.ColorBrightGreen)
	case g.s.state == StateLost:
		g.drawOverlay(dst, centerY, []string{
			"TIME'S UP",
			fmt.Sprintf("Matched %d of %d", len(g.s.matches), len(g.s.emojis)),
			"R to try again",
		}, core.ColorBrightRed)
	case g.paused:
		g.drawOverlay(dst, centerY, []string{"PAUSED", "P to resume"}, core.ColorYellow)
	case g.s.state == StateWaiting:
		dst.DrawTextCentered(boardY+boardH+1, "Flip a card to start the clock")
	}
}

// drawOverlay draws a boxed message centered on the screen.
func (g *Game) drawOverlay(dst *core.Screen, centerY int, lines []string, c core.Color) {
	inner := 0
	for _, line := range lines {
		inner = max(inner, core.TextWidth(line))
	}

	box := core.NewRect(core.Clamp((g.screenW-inner)/2-2, 0, g.screenW), centerY-len(lines)/2-1, inner+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, c)

	for i, line := range lines {
		x := box.X + 2 + (inner-core.TextWidth(line))/2
		dst.DrawTextColor(x, box.Y+1+i, line, c)
	}
}

// Controls returns the control hint shown under the board.
func Controls() string {
	return "Arrows/WASD: Move  Space: Flip  P: Pause  R: Restart  Q: Quit"
}
