package tui

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

func updateScoreboard(t *testing.T, m ScoreboardModel, msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sb, ok := next.(ScoreboardModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sb, cmd
}

func TestScoreboardLocal(t *testing.T) {
	store := openTestStore(t)
	for _, r := range []storage.Run{
		{Name: "slow", Time: 4.5, Score: 900, Difficulty: "easy"},
		{Name: "fast", Time: 31.25, Score: 120, Difficulty: "hard"},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(store, nil, 100, 30)
	view := m.View()

	for _, want := range []string{"BEST RUNS", "31.25s", "hard", "Runs: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Index(view, "fast") > strings.Index(view, "slow") {
		t.Error("runs not ranked by survival time")
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestScoreboardOnlineWithoutServer(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 80, 24)
	m, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Tab() != TabOnline {
		t.Fatalf("tab = %v, want Online", m.Tab())
	}
	if cmd != nil {
		t.Error("fetch started without a client")
	}
	if !strings.Contains(m.View(), "No leaderboard server configured") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestScoreboardOnline(t *testing.T) {
	lb := leaderboard.NewStore()
	srv := httptest.NewServer(leaderboard.NewServer(lb, nil).Handler())
	defer srv.Close()

	client := leaderboard.NewClient(srv.URL)
	date := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	for _, e := range []leaderboard.Entry{
		leaderboard.NewEntry("bea", 8*time.Second, 300, date),
		leaderboard.NewEntry("cai", 20*time.Second, 100, date),
	} {
		if _, err := client.Submit(context.Background(), e); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	m := NewScoreboardModel(nil, client, 100, 30)
	m, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if cmd == nil {
		t.Fatal("switching to online did not fetch")
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Errorf("view while loading:\n%s", m.View())
	}

	m, _ = updateScoreboard(t, m, cmd())
	view := m.View()
	if !strings.Contains(view, "20.00s") || !strings.Contains(view, "2026-03-01 09:30:00") {
		t.Errorf("view missing online entries:\n%s", view)
	}
	if strings.Index(view, "cai") > strings.Index(view, "bea") {
		t.Error("online entries not ranked by time")
	}

	// Switching back shows local rows again
	m, _ = updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Tab() != TabLocal {
		t.Errorf("tab = %v, want Local", m.Tab())
	}
}

func TestScoreboardOnlineError(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	m := NewScoreboardModel(nil, leaderboard.NewClient(url), 80, 24)
	m, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = updateScoreboard(t, m, cmd())
	if !strings.Contains(m.View(), "Leaderboard unavailable") {
		t.Errorf("view:\n%s", m.View())
	}

	_, cmd = updateScoreboard(t, m, runeKey('r'))
	if cmd == nil {
		t.Error("refresh did not retry")
	}
}

func TestScoreboardExit(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 80, 24)
	back, cmd := updateScoreboard(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.IsGoingBack() || cmd != nil {
		t.Error("embedded scoreboard should go back without quitting the program")
	}

	m.standalone = true
	quit, cmd := updateScoreboard(t, m, runeKey('q'))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("standalone scoreboard should quit the program")
	}
}
