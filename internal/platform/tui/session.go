package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

// SessionConfig describes what a SessionModel plays.
type SessionConfig struct {
	GameID string
	Title  string
	Tuning config.PlatformerConfig
	// AskName shows the name prompt first. A confirmed name is stored as the
	// profile name when Options.Store is set.
	AskName bool
}

type sessionScreen int

const (
	screenPrompt sessionScreen = iota
	screenMenu
	screenGame
	screenScoreboard
)

// SessionModel manages the full flow in one program:
// name prompt -> menu -> game or scoreboard -> menu.
// Local play and SSH sessions both use it.
type SessionModel struct {
	cfg     SessionConfig
	opts    Options // Reloads cleared; the session waits on reloads itself
	reloads <-chan config.Reload
	runtime core.RuntimeConfig

	screen     sessionScreen
	prompt     PromptModel
	menu       MenuModel
	game       *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session starting at the prompt or the menu.
func NewSessionModel(cfg SessionConfig, runtime core.RuntimeConfig, opts Options) SessionModel {
	m := SessionModel{
		cfg:     cfg,
		opts:    opts,
		reloads: opts.Reloads,
		runtime: runtime,
	}
	m.opts.Reloads = nil
	if cfg.AskName {
		m.screen = screenPrompt
		m.prompt = NewPromptModel(opts.PlayerName, runtime.ScreenW, runtime.ScreenH)
		m.prompt.embedded = true
	} else {
		m.openMenu()
	}
	return m
}

func (m *SessionModel) openMenu() {
	m.screen = screenMenu
	m.game = nil
	m.scoreboard = nil
	m.menu = NewMenuModel(m.cfg.Title, m.opts.PlayerName, m.cfg.Tuning, m.runtime)
	m.menu.embedded = true
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	wait := waitForReload(m.reloads)
	if m.screen == screenPrompt {
		return tea.Batch(m.prompt.Init(), wait)
	}
	return tea.Batch(m.menu.Init(), wait)
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.runtime.ScreenW = wsm.Width
		m.runtime.ScreenH = wsm.Height
	}
	if reload, ok := msg.(ConfigReloadMsg); ok {
		return m.handleReload(reload)
	}

	switch m.screen {
	case screenPrompt:
		return m.updatePrompt(msg)
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// handleReload refreshes the menu's tuning and hands the config to a running
// game for its next run.
func (m SessionModel) handleReload(msg ConfigReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.reloads)
	if msg.Err == nil {
		m.cfg.Tuning = msg.Config
		if m.screen == screenMenu {
			cursor := m.menu.cursor
			m.openMenu()
			m.menu.cursor = cursor
		}
	}
	if m.screen == screenGame {
		gm, _ := m.game.handleReload(msg)
		g, _ := gm.(Model)
		m.game = &g
	}
	return m, next
}

func (m SessionModel) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.prompt.Update(msg)
	m.prompt, _ = next.(PromptModel)

	switch {
	case m.prompt.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.prompt.Done():
		m.opts.PlayerName = m.prompt.Name()
		if m.opts.Store != nil {
			if err := m.opts.Store.SetPlayerName(m.opts.PlayerName); err != nil {
				m.opts.logger().Warn("could not save player name", "error", err)
			}
		}
		m.openMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu, _ = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		sb := NewScoreboardModel(m.opts.Store, m.opts.Leaderboard, m.runtime.ScreenW, m.runtime.ScreenH)
		m.scoreboard = &sb
		m.screen = screenScoreboard
		return m, sb.Init()

	case m.menu.Selected() != nil:
		game, err := registry.Create(m.cfg.GameID)
		if err != nil {
			m.opts.logger().Error("cannot start game", "game", m.cfg.GameID, "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		m.runtime = m.menu.Config()
		m.runtime.Seed = 0 // fresh seed per run
		gm := NewModel(game, m.runtime, m.opts)
		m.game = &gm
		m.screen = screenGame
		return m, gm.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	gm, _ := next.(Model)
	m.game = &gm

	switch {
	case gm.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case gm.BackToMenu():
		m.openMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	sb, _ := next.(ScoreboardModel)
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.openMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPrompt:
		return m.prompt.View()
	case screenGame:
		return m.game.View()
	case screenScoreboard:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// PlayerName returns the name runs are recorded under.
func (m SessionModel) PlayerName() string {
	return m.opts.PlayerName
}

// RunSession runs the full menu flow in the current terminal.
func RunSession(cfg SessionConfig, runtime core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(NewSessionModel(cfg, runtime, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
