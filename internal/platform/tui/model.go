package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/oscarklm/matchmoji/internal/config"
	"github.com/oscarklm/matchmoji/internal/core"
	"github.com/oscarklm/matchmoji/internal/games/memory"
	"github.com/oscarklm/matchmoji/internal/registry"
	"github.com/oscarklm/matchmoji/internal/storage"
)

// resizer is implemented by games that can follow a terminal resize
// without starting over.
type resizer interface {
	Resize(w, h int)
}

// outcomeReporter is implemented by games that summarize a finished round.
type outcomeReporter interface {
	Outcome() (memory.Outcome, bool)
}

// Model is the Bubble Tea model for running a single game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState

	player string // Recorded with each round; empty for local play
	runID  string // uuid of the current round

	quitOnBack bool // Standalone programs exit on back; sessions return to the menu
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the result has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		runID:      uuid.NewString(),
	}
}

// WithPlayer returns a copy of the model that records rounds under player.
func (m Model) WithPlayer(player string) Model {
	m.player = player
	return m
}

// WithLogger returns a copy of the model that reports save failures to logger.
func (m Model) WithLogger(logger *log.Logger) Model {
	m.logger = logger
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runID = uuid.NewString()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveResult()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult records the score and, for games that report one, the round.
// Saving is best-effort; the game continues regardless.
func (m Model) saveResult() {
	if m.store == nil {
		return
	}

	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
			m.warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}

	reporter, ok := m.game.(outcomeReporter)
	if !ok {
		return
	}
	out, ok := reporter.Outcome()
	if !ok {
		return
	}

	_, err := m.store.SaveRound(storage.Round{
		RunID:       m.runID,
		GameID:      m.game.ID(),
		Level:       out.Level,
		Outcome:     out.State.String(),
		Matches:     out.Matches,
		Pairs:       out.Pairs,
		Moves:       out.Moves,
		SecondsLeft: out.SecondsLeft,
		Score:       out.Score,
		Player:      m.player,
	})
	if err != nil {
		m.warn("could not save round", "game", m.game.ID(), "run", m.runID, "error", err)
	}
}

func (m Model) warn(msg string, keyvals ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, keyvals...)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, config.ConfigDirName, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.warn("could not save screenshot", "path", path, "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, cfg)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
