package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GuestName is used when the player leaves the name prompt empty.
const GuestName = "Guest"

// maxNameLength bounds player names shown on the scoreboards.
const maxNameLength = 20

// PromptModel asks for the player's name before the first run.
type PromptModel struct {
	input    textinput.Model
	width    int
	height   int
	done     bool
	quitting bool
	embedded bool // part of a SessionModel; never quits the program
}

// NewPromptModel creates a name prompt prefilled with current.
func NewPromptModel(current string, width, height int) PromptModel {
	ti := textinput.New()
	ti.Placeholder = GuestName
	ti.CharLimit = maxNameLength
	ti.Width = maxNameLength + 1
	ti.Prompt = "> "
	ti.SetValue(current)
	ti.Focus()

	return PromptModel{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init starts the cursor blinking.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the prompt.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, m.exit()
		case tea.KeyEnter:
			m.done = true
			return m, m.exit()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PromptModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// View renders the prompt.
func (m PromptModel) View() string {
	if m.quitting {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(m.height/3, 1)))
	b.WriteString(centerText(title.Render("What's your name, runner?"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(hint.Render("Enter: confirm  |  Esc: quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Name returns the entered name, or GuestName if it is blank.
func (m PromptModel) Name() string {
	return normalizeName(m.input.Value())
}

// Done reports whether the player confirmed a name.
func (m PromptModel) Done() bool {
	return m.done
}

// IsQuitting returns true if the player cancelled.
func (m PromptModel) IsQuitting() bool {
	return m.quitting
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return GuestName
	}
	if r := []rune(name); len(r) > maxNameLength {
		name = string(r[:maxNameLength])
	}
	return name
}

// RunNamePrompt asks for a name in the terminal.
// It returns ok=false if the player cancelled.
func RunNamePrompt(current string, width, height int) (name string, ok bool, err error) {
	p := tea.NewProgram(NewPromptModel(current, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", false, err
	}
	m, isPrompt := final.(PromptModel)
	if !isPrompt || m.IsQuitting() {
		return "", false, nil
	}
	return m.Name(), true, nil
}
