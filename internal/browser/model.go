package browser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Aman-CERP/wicli/internal/search"
)

const (
	contentTitle = "File Content"
	listTitle    = "Files"
	highlight    = ">> "

	// contentPercent is the share of the screen height given to the content panel.
	contentPercent = 70
)

// Model is the bubbletea model for the result browser.
type Model struct {
	matches []search.Match
	state   State
	keys    KeyMap
	styles  Styles
	help    help.Model

	content viewport.Model
	width   int
	height  int
	ready   bool
}

// NewModel creates a browser over matches, in search order.
func NewModel(matches []search.Match, noColor bool) Model {
	styles := DefaultStyles()
	if noColor {
		styles = NoColorStyles()
	}

	vp := viewport.New(0, 0)
	// Selection owns up/down; the viewport keeps paging and the mouse wheel.
	vp.KeyMap.Up.SetEnabled(false)
	vp.KeyMap.Down.SetEnabled(false)

	m := Model{
		matches: matches,
		state:   NewState(len(matches)),
		keys:    DefaultKeyMap(),
		styles:  styles,
		help:    help.New(),
		content: vp,
	}
	m.syncContent()
	return m
}

// State returns the current selection.
func (m Model) State() State { return m.state }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Down):
			m.state.Next()
			m.syncContent()
			return m, nil
		case key.Matches(msg, m.keys.Up):
			m.state.Previous()
			m.syncContent()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading...\n"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderContent(),
		m.renderList(),
		m.styles.Help.Render(m.help.ShortHelpView(m.keys.ShortHelp())),
	)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.ready = true

	frameW, frameH := m.styles.Panel.GetFrameSize()
	// Title line inside each panel, plus one help line at the bottom.
	top := height*contentPercent/100 - frameH - 1
	m.content.Width = max(width-frameW, 1)
	m.content.Height = max(top, 1)
	m.help.Width = width
}

func (m *Model) syncContent() {
	if len(m.matches) == 0 {
		m.content.SetContent("No results")
		return
	}
	m.content.SetContent(m.matches[m.state.Current()].Content)
	m.content.GotoTop()
}

func (m Model) renderContent() string {
	title := m.styles.Title.Render(contentTitle)
	if len(m.matches) > 0 {
		title += " " + m.styles.Path.Render(m.matches[m.state.Current()].Path)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, title, m.content.View())
	return m.panel().Render(body)
}

func (m Model) renderList() string {
	frameW, frameH := m.styles.Panel.GetFrameSize()
	contentHeight := m.content.Height + 1 + frameH
	rows := max(m.height-contentHeight-frameH-2, 1)

	lines := []string{m.styles.Title.Render(listTitle)}
	selected, hasSelection := m.state.Selected()
	start := windowStart(selected, len(m.matches), rows)
	end := min(start+rows, len(m.matches))

	for i := start; i < end; i++ {
		label := fmt.Sprintf("%d  %s", i, m.displayPath(i))
		if w := m.width - frameW - len(highlight); w > 0 && lipgloss.Width(label) > w {
			label = truncate(label, w)
		}
		if hasSelection && i == selected {
			lines = append(lines, m.styles.Selected.Render(highlight+label))
			continue
		}
		lines = append(lines, m.styles.Item.Render(strings.Repeat(" ", len(highlight))+label))
	}

	return m.panel().Render(strings.Join(lines, "\n"))
}

func (m Model) panel() lipgloss.Style {
	return m.styles.Panel.Width(max(m.width-m.styles.Panel.GetHorizontalBorderSize(), 1))
}

// displayPath shows a match path relative to its root when possible.
func (m Model) displayPath(i int) string {
	match := m.matches[i]
	if rel, err := filepath.Rel(match.Root, match.Path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.Join(filepath.Base(match.Root), rel)
	}
	return match.Path
}

// windowStart returns the first visible row so that selected stays in view.
func windowStart(selected, total, rows int) int {
	if total <= rows || selected < rows {
		return 0
	}
	return min(selected-rows+1, total-rows)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
