package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-platformer/internal/audio"
	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// submitTimeout bounds the end-of-run leaderboard request.
const submitTimeout = 5 * time.Second

// Options are the services a game screen uses. Every field is optional.
type Options struct {
	Store       *storage.Store
	Leaderboard *leaderboard.Client
	Sound       *audio.SoundManager
	Reloads     <-chan config.Reload
	Logger      *log.Logger
	Renderer    *lipgloss.Renderer
	PlayerName  string
	// KeyDelay is how long a first key press counts as held while the
	// terminal waits to auto-repeat. Zero uses core.DefaultInitialHoldWindow.
	KeyDelay time.Duration
	// ScreenshotDir defaults to ~/.platformer/screenshots.
	ScreenshotDir string
	NoScreenshots bool
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// configurable games accept a new tuning config for their next run.
type configurable interface {
	SetConfig(cfg config.PlatformerConfig)
}

// SubmitResultMsg reports how the leaderboard submission went.
type SubmitResultMsg struct {
	Entry leaderboard.Entry
	Err   error
}

// ConfigReloadMsg carries a config change from the file watcher.
type ConfigReloadMsg config.Reload

// Model is the Bubble Tea model for one game screen.
type Model struct {
	game     registry.Game
	opts     Options
	log      *log.Logger
	screen   *core.Screen
	renderer *ScreenRenderer
	config   core.RuntimeConfig

	keyMapper *KeyMapper
	keys      *core.KeyState
	pending   core.InputFrame // one-shot actions until the next tick
	now       func() time.Time

	gameState  core.GameState
	runSaved   bool
	scoreboard *ScoreboardModel
	tickParked bool   // a tick arrived while the scoreboard was open
	status     string // transient footer message

	quitting   bool
	backToMenu bool
	standalone bool // no menu to return to; back quits the program
}

// NewModel creates the game screen for game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}

	return Model{
		game:      game,
		opts:      opts,
		log:       opts.logger(),
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		renderer:  NewScreenRenderer(opts.Renderer),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		keys:      core.NewKeyState(opts.KeyDelay, core.DefaultHoldWindow),
		pending:   core.NewInputFrame(),
		now:       time.Now,
	}
}

// Init starts the first run and the frame loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.log.Info("run started", "player", m.opts.PlayerName, "difficulty", m.config.Difficulty, "seed", m.config.Seed)

	return tea.Batch(tickCmd(m.config.TickRate), waitForReload(m.opts.Reloads))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SubmitResultMsg:
		if msg.Err != nil {
			m.log.Warn("leaderboard submission failed", "error", msg.Err)
			m.status = "Leaderboard unavailable"
		} else {
			m.log.Info("run submitted", "name", msg.Entry.Name, "time", msg.Entry.Time, "score", msg.Entry.Score)
			m.status = "Submitted to leaderboard"
		}
		return m, nil

	case ConfigReloadMsg:
		return m.handleReload(msg)
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}

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

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if !m.opts.NoScreenshots {
			m.saveScreenshot()
		}
		return m, nil
	case "tab":
		if m.gameState.GameOver {
			sb := NewScoreboardModel(m.opts.Store, m.opts.Leaderboard, m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
			return m, sb.Init()
		}
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case IsHeld(action):
		m.keys.Press(action, m.now())
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if m.standalone {
				return m, tea.Quit
			}
		}
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.pending.Set(core.ActionRestart)
		}
	case action != core.ActionNone:
		m.pending.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen. A run in progress restarts so the world
// matches the new viewport.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if !m.gameState.GameOver {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.pending.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	in := m.keys.Frame(m.now())
	if m.pending.Has(core.ActionPause) {
		in.Set(core.ActionPause)
	}
	m.pending.Clear()

	wasOver := m.gameState.GameOver
	result := m.game.Step(in)
	m.gameState = result.State
	if m.opts.Sound != nil {
		m.opts.Sound.HandleEvents(result.Events)
	}

	var cmd tea.Cmd
	if m.gameState.GameOver && !wasOver && !m.runSaved {
		cmd = m.finishRun()
	}

	return m, tea.Batch(tickCmd(m.config.TickRate), cmd)
}

func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.runSaved = false
	m.status = ""
	m.pending.Clear()
	if m.opts.Sound != nil {
		m.opts.Sound.StopMusic()
	}
	m.log.Info("run restarted", "seed", m.config.Seed)
}

// finishRun stores the run locally and returns the leaderboard submission.
// It runs once per run.
func (m *Model) finishRun() tea.Cmd {
	m.runSaved = true
	st := m.gameState
	name := m.opts.PlayerName
	if name == "" {
		name = GuestName
	}

	m.log.Info("game over", "player", name, "time", st.Elapsed.Seconds(), "score", st.Score, "difficulty", st.Difficulty)
	if m.opts.Sound != nil {
		m.opts.Sound.StopMusic()
	}

	if m.opts.Store != nil {
		run := storage.Run{Name: name, Time: st.Elapsed.Seconds(), Score: st.Score, Difficulty: st.Difficulty}
		if _, err := m.opts.Store.SaveRun(run); err != nil {
			m.log.Warn("could not save run", "error", err)
		}
	}

	if m.opts.Leaderboard == nil {
		return nil
	}
	return submitCmd(m.opts.Leaderboard, leaderboard.NewEntry(name, st.Elapsed, st.Score, m.now()))
}

func submitCmd(client *leaderboard.Client, entry leaderboard.Entry) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		created, err := client.Submit(ctx, entry)
		return SubmitResultMsg{Entry: created, Err: err}
	}
}

// waitForReload waits for the next config change. A nil channel yields no
// command.
func waitForReload(ch <-chan config.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigReloadMsg(r)
	}
}

// handleReload hands a changed config to the game. It takes effect on the
// next run.
func (m Model) handleReload(msg ConfigReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Reloads)
	if msg.Err != nil {
		m.log.Warn("config reload failed", "error", msg.Err)
		m.status = "Config error, keeping previous settings"
		return m, next
	}
	if g, ok := m.game.(configurable); ok {
		g.SetConfig(msg.Config)
		m.log.Info("config reloaded")
		m.status = "Config reloaded, applies on restart"
	}
	return m, next
}

// updateScoreboard forwards to the scoreboard opened after a run. The frame
// loop parks on the first tick while it is open and resumes when it closes.
func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.tickParked = true
		return m, nil
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
	}

	next, cmd := m.scoreboard.Update(msg)
	sb, _ := next.(ScoreboardModel)
	m.scoreboard = &sb

	switch {
	case sb.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case sb.IsGoingBack():
		m.scoreboard = nil
		if !m.tickParked {
			// the pending tick is still on its way
			return m, nil
		}
		m.tickParked = false
		return m, tickCmd(m.config.TickRate)
	}
	return m, cmd
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.log.Warn("screenshot: no home directory", "error", err)
			return
		}
		dir = filepath.Join(home, ".platformer", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot: cannot create directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), m.now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "error", err)
		return
	}
	m.status = "Saved " + name
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	if m.gameState.GameOver {
		hint := "Tab: scores  B: menu  Q: quit"
		if m.standalone {
			hint = "Tab: scores  R: restart  Q: quit"
		}
		if m.status != "" {
			hint = m.status + "  |  " + hint
		}
		m.screen.DrawTextCentered(m.screen.Height()-1, hint)
	}
	return m.renderer.Render(m.screen)
}

// State returns the game state seen at the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in the current terminal until the user quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	m := NewModel(game, cfg, opts)
	m.standalone = true
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
