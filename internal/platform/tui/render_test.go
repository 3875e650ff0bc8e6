package tui

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

func TestScreenRendererPlain(t *testing.T) {
	// A renderer without a terminal has no colors, so output is the raw grid
	sr := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))

	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "hi")
	s.SetColored(3, 0, 'o', core.ColorBrightYellow)
	s.DrawTextColored(1, 1, "##", core.ColorRed)

	got := sr.Render(s)
	want := "hi o  \n ##   "
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestScreenRendererDimensions(t *testing.T) {
	sr := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	s := core.NewScreen(10, 4)

	lines := strings.Split(sr.Render(s), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, l := range lines {
		if lipgloss.Width(l) != 10 {
			t.Errorf("line %d width = %d, want 10", i, lipgloss.Width(l))
		}
	}
}

func TestNewScreenRendererNil(t *testing.T) {
	if NewScreenRenderer(nil) == nil {
		t.Fatal("NewScreenRenderer(nil) = nil")
	}
}
