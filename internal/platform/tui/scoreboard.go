package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/leaderboard"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

// Scoreboard layout constants
const (
	maxScores     = 100 // Max rows to load per tab
	statsMinWidth = 70  // Minimum width to show the stats line
)

// ScoreboardTab selects which run history is shown.
type ScoreboardTab int

const (
	TabLocal ScoreboardTab = iota
	TabOnline
)

// String returns the tab label.
func (t ScoreboardTab) String() string {
	if t == TabOnline {
		return "Online"
	}
	return "Local"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Switch  key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Switch, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Switch},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "local/online"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreRow is one line of either tab.
type scoreRow struct {
	Name   string
	Time   string
	Score  int
	Detail string // difficulty for local runs, date for online entries
}

// onlineScoresMsg carries the result of a leaderboard fetch.
type onlineScoresMsg struct {
	entries []leaderboard.Entry
	err     error
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	store  *storage.Store
	client *leaderboard.Client

	tab       ScoreboardTab
	local     []scoreRow
	online    []scoreRow
	stats     *storage.Stats
	onlineErr error
	loading   bool

	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	standalone bool // runs as its own program and quits on exit
	quitting   bool
	goingBack  bool // True if user pressed back (not quit)
}

// NewScoreboardModel creates a scoreboard showing local runs from store and,
// when client is set, the shared leaderboard.
func NewScoreboardModel(store *storage.Store, client *leaderboard.Client, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		store:  store,
		client: client,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadLocal()
	m.updateTableRows()
	return m
}

// createTable creates a new table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	detail := "Difficulty"
	if m.tab == TabOnline {
		detail = "Date"
	}
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 14},
		{Title: "Time", Width: 9},
		{Title: "Score", Width: 8},
		{Title: detail, Width: 12},
	}

	// Give spare width to name and detail
	tableWidth := m.width - 6
	if spare := tableWidth - 49 - 10; spare > 0 {
		columns[1].Width += min(spare/2, 10)
		columns[4].Width += min(spare-spare/2, 10)
	}

	height := m.height - 9
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadLocal reads the best runs from the local database.
func (m *ScoreboardModel) loadLocal() {
	m.local = nil
	m.stats = nil
	if m.store == nil {
		return
	}

	runs, err := m.store.TopRuns(maxScores)
	if err == nil {
		m.local = make([]scoreRow, len(runs))
		for i, r := range runs {
			m.local[i] = scoreRow{
				Name:   r.Name,
				Time:   fmt.Sprintf("%.2fs", r.Time),
				Score:  r.Score,
				Detail: r.Difficulty,
			}
		}
	}
	if st, err := m.store.Stats(); err == nil {
		m.stats = &st
	}
}

// fetchOnline requests the leaderboard ranked by survival time.
func (m ScoreboardModel) fetchOnline() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		entries, err := client.Ranked(ctx)
		return onlineScoresMsg{entries: entries, err: err}
	}
}

func onlineRows(entries []leaderboard.Entry) []scoreRow {
	rows := make([]scoreRow, 0, min(len(entries), maxScores))
	for _, e := range entries {
		if len(rows) == maxScores {
			break
		}
		rows = append(rows, scoreRow{
			Name:   e.Name,
			Time:   e.Time + "s",
			Score:  e.Score,
			Detail: e.Date,
		})
	}
	return rows
}

func (m *ScoreboardModel) rows() []scoreRow {
	if m.tab == TabOnline {
		return m.online
	}
	return m.local
}

// updateTableRows updates the table with the active tab's rows.
func (m *ScoreboardModel) updateTableRows() {
	src := m.rows()
	rows := make([]table.Row, len(src))
	for i, r := range src {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Name,
			r.Time,
			fmt.Sprintf("%d", r.Score),
			r.Detail,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init fetches nothing; the online tab loads when first opened.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) exit() tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Switch):
			return m.switchTab()

		case key.Matches(msg, m.keys.Refresh):
			return m.refresh()
		}

	case onlineScoresMsg:
		m.loading = false
		m.onlineErr = msg.err
		if msg.err == nil {
			m.online = onlineRows(msg.entries)
		}
		if m.tab == TabOnline {
			m.updateTableRows()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) switchTab() (tea.Model, tea.Cmd) {
	if m.tab == TabLocal {
		m.tab = TabOnline
	} else {
		m.tab = TabLocal
	}
	m.table = m.createTable()
	m.updateTableRows()

	if m.tab == TabOnline && m.online == nil && m.onlineErr == nil && !m.loading {
		return m.refresh()
	}
	return m, nil
}

func (m ScoreboardModel) refresh() (tea.Model, tea.Cmd) {
	if m.tab == TabLocal {
		m.loadLocal()
		m.updateTableRows()
		return m, nil
	}
	if m.client == nil || m.loading {
		return m, nil
	}
	m.loading = true
	m.onlineErr = nil
	return m, m.fetchOnline()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("BEST RUNS", m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n")
	if line := m.statsLine(); line != "" {
		grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		b.WriteString(grey.Render(centerText(line, m.width)))
	}
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, 2)
	for _, t := range []ScoreboardTab{TabLocal, TabOnline} {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs[0], " ", tabs[1])
}

// statsLine summarizes local history on wide terminals.
func (m ScoreboardModel) statsLine() string {
	if m.tab != TabLocal || m.stats == nil || m.stats.Runs == 0 || m.width < statsMinWidth {
		return ""
	}
	st := m.stats
	return fmt.Sprintf("Runs: %d  Best time: %.2fs  High score: %d  Avg score: %.0f  Last played: %s",
		st.Runs, st.BestTime, st.HighScore, st.AvgScore, st.LastPlayed.Format("Jan 02 15:04"))
}

// renderTableContent renders the table or a placeholder message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.tab == TabOnline {
		switch {
		case m.client == nil:
			return emptyStyle.Render("No leaderboard server configured.")
		case m.loading:
			return emptyStyle.Render("Loading leaderboard...")
		case m.onlineErr != nil:
			return emptyStyle.Render("Leaderboard unavailable.\nPress r to retry.")
		}
	}

	if len(m.rows()) == 0 {
		return emptyStyle.Render("No runs recorded yet.\nSurvive a while to set a record!")
	}
	return m.table.View()
}

// Tab returns the active tab.
func (m ScoreboardModel) Tab() ScoreboardTab {
	return m.tab
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, client *leaderboard.Client, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, client, width, height)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
