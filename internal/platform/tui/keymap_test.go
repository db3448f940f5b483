package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oscarklm/matchmoji/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"k", core.ActionUp, false},
		{"down", core.ActionDown, false},
		{"j", core.ActionDown, false},
		{"left", core.ActionLeft, false},
		{"a", core.ActionLeft, false},
		{"right", core.ActionRight, false},
		{"l", core.ActionRight, false},
		{" ", core.ActionFlip, false},
		{"enter", core.ActionConfirm, false},
		{"esc", core.ActionBack, false},
		{"p", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"x", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.key, action, quit, tt.action, tt.quit)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(keyMsg(" "), &frame) {
		t.Error("space should not quit")
	}
	if km.MapKeyToFrame(keyMsg("left"), &frame) {
		t.Error("left should not quit")
	}
	if !frame.Has(core.ActionFlip) || !frame.Has(core.ActionLeft) {
		t.Error("frame should hold both actions")
	}
	if !km.MapKeyToFrame(keyMsg("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action MenuAction
	}{
		{"up", MenuActionUp},
		{"k", MenuActionUp},
		{"down", MenuActionDown},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{" ", MenuActionSelect},
		{"esc", MenuActionBack},
		{"tab", MenuActionScoreboard},
		{"q", MenuActionQuit},
		{"z", MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tt.key)); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.key, got, tt.action)
		}
	}
}

func TestRenderScreenSkipsContinuation(t *testing.T) {
	s := core.NewScreen(6, 1)
	s.DrawText(0, 0, "[🐶]")

	out := RenderScreen(s)
	if !strings.Contains(out, "[🐶]") {
		t.Errorf("RenderScreen = %q, expected the glyph between brackets", out)
	}
	if strings.ContainsRune(out, 0) {
		t.Error("RenderScreen leaked a continuation cell")
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q, want unchanged", got)
	}
}
