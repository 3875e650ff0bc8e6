package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/registry"
)

const sessionStubID = "tui-session-stub"

var sessionStub = &stubGame{overAfter: 2}

func init() {
	registry.Register(sessionStubID, func() registry.Game {
		sessionStub.steps = 0
		return sessionStub
	})
}

func newTestSession(t *testing.T, askName bool, opts Options) SessionModel {
	t.Helper()
	cfg := SessionConfig{
		GameID:  sessionStubID,
		Title:   "Stub",
		Tuning:  config.DefaultPlatformerConfig(),
		AskName: askName,
	}
	return NewSessionModel(cfg, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}, opts)
}

func send(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		m = sm
	}
	return m
}

func TestSessionFlow(t *testing.T) {
	store := openTestStore(t)
	m := newTestSession(t, true, Options{Store: store})
	if m.screen != screenPrompt {
		t.Fatalf("screen = %v, want prompt", m.screen)
	}

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	m = send(t, m, runeKey('a'), runeKey('d'), runeKey('a'), enter)
	if m.screen != screenMenu || m.PlayerName() != "ada" {
		t.Fatalf("screen = %v, player = %q", m.screen, m.PlayerName())
	}
	if name, _ := store.PlayerName(); name != "ada" {
		t.Errorf("stored name = %q, want ada", name)
	}

	m = send(t, m, enter)
	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}

	m = send(t, m, TickMsg{}, TickMsg{}, TickMsg{}, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu after back", m.screen)
	}

	runs, _ := store.TopRuns(10)
	if len(runs) != 1 || runs[0].Name != "ada" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newTestSession(t, false, Options{PlayerName: "ada"})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %v, want scoreboard", m.screen)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %v, want menu", m.screen)
	}
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newTestSession(t, false, Options{})
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || next.(SessionModel).View() != "" {
		t.Error("q in the menu should end the session")
	}
}

func TestSessionConfigReload(t *testing.T) {
	m := newTestSession(t, false, Options{})

	cfg := config.DefaultPlatformerConfig()
	cfg.Difficulty.Presets["easy"] = config.PresetConfig{Hearts: 9, BaseSpeed: 1}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown}, ConfigReloadMsg{Config: cfg})

	if m.menu.cursor != 2 {
		t.Errorf("cursor = %d, reload should keep it", m.menu.cursor)
	}
	if m.menu.items[0].Detail != "9 hearts, speed 1.0 and rising" {
		t.Errorf("easy detail = %q", m.menu.items[0].Detail)
	}

	// Broken configs leave the menu alone
	m = send(t, m, ConfigReloadMsg{Err: errors.New("bad yaml")})
	if m.menu.items[0].Detail != "9 hearts, speed 1.0 and rising" {
		t.Errorf("easy detail = %q", m.menu.items[0].Detail)
	}
}
