package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/core"
)

// MenuItem is one selectable difficulty.
type MenuItem struct {
	Difficulty config.DifficultyPreset
	Title      string
	Detail     string
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	title          string
	player         string
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	embedded       bool
	quitting       bool
	selected       *MenuItem // Set when user picks a difficulty
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// NewMenuModel creates a difficulty menu. The cursor starts on the
// difficulty from cfg, or the tuning default when cfg has none.
func NewMenuModel(title, player string, tuning config.PlatformerConfig, cfg core.RuntimeConfig) MenuModel {
	current := cfg.Difficulty
	if current == "" {
		current = tuning.Difficulty.Default
	}

	presets := config.Presets()
	items := make([]MenuItem, 0, len(presets))
	cursor := 0
	for i, p := range presets {
		items = append(items, MenuItem{
			Difficulty: p,
			Title:      strings.ToUpper(string(p[:1])) + string(p[1:]),
			Detail:     presetDetail(tuning, p),
		})
		if string(p) == current {
			cursor = i
		}
	}

	return MenuModel{
		title:     title,
		player:    player,
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

func presetDetail(tuning config.PlatformerConfig, p config.DifficultyPreset) string {
	values, ok := tuning.Difficulty.Presets[string(p)]
	if !ok {
		return ""
	}
	hearts := "hearts"
	if values.Hearts == 1 {
		hearts = "heart"
	}
	if config.IsFixedPreset(p) {
		return fmt.Sprintf("%d %s, constant speed", values.Hearts, hearts)
	}
	return fmt.Sprintf("%d %s, speed %.1f and rising", values.Hearts, hearts, values.BaseSpeed)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, m.exit()

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Difficulty = string(selected.Difficulty)
			return m, m.exit()
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, m.exit()
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(spaced(m.title)), m.width))
	b.WriteString("\n\n")

	subtitle := "Choose a difficulty"
	if m.player != "" {
		subtitle = fmt.Sprintf("Hi %s! Choose a difficulty", m.player)
	}
	b.WriteString(centerText(subtitle, m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-8s %s", item.Title, dimStyle.Render(item.Detail))
		if i == m.cursor {
			line = "> " + activeStyle.Render(fmt.Sprintf("%-8s", item.Title)) + " " + dimStyle.Render(item.Detail)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Move: A/D or arrows  |  Jump: Space/W  |  Pause: P"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")

	return b.String()
}

// spaced puts a space between letters for the title banner.
func spaced(s string) string {
	return strings.Join(strings.Split(strings.ToUpper(s), ""), " ")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, with the chosen difficulty and any
// resize applied.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Difficulty      config.DifficultyPreset
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the difficulty menu and returns the selection result.
func RunMenu(title, player string, tuning config.PlatformerConfig, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(title, player, tuning, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Difficulty = m.Selected().Difficulty
	default:
		result.Quit = true
	}
	return result, nil
}
