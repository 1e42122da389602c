package review

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
)

// ─── Model ───────────────────────────────────────────────────────────────────

// Model is the bubbletea Model for picking which stale directories to
// delete. Every candidate starts selected.
type Model struct {
	items    []sweep.Candidate
	selected []bool
	cursor   int
	offset   int
	width    int
	height   int

	confirmDelete bool // two-step confirm: Enter, then Enter again
	confirmed     bool
	quitting      bool

	keys keyMap
	help help.Model
}

// NewModel creates a picker over the given candidates.
func NewModel(items []sweep.Candidate) Model {
	selected := make([]bool, len(items))
	for i := range selected {
		selected[i] = true
	}
	return Model{
		items:    items,
		selected: selected,
		width:    80,
		height:   24,
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		// Awaiting confirmation: only a second Enter proceeds.
		if m.confirmDelete {
			m.confirmDelete = false
			if key.Matches(msg, m.keys.Confirm) {
				m.confirmed = true
				return m, tea.Quit
			}
			if key.Matches(msg, m.keys.Quit) {
				return m, nil
			}
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureVisible()
			}

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
				m.ensureVisible()
			}

		case key.Matches(msg, m.keys.Toggle):
			if m.cursor >= 0 && m.cursor < len(m.items) {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}

		case key.Matches(msg, m.keys.ToggleAll):
			all := m.SelectedCount() == len(m.items)
			for i := range m.selected {
				m.selected[i] = !all
			}

		case key.Matches(msg, m.keys.Confirm):
			if m.SelectedCount() > 0 {
				m.confirmDelete = true
			}
		}
		return m, nil
	}

	return m, nil
}

// View delegates to view.go renderView.
func (m Model) View() string {
	return m.renderView()
}

// Confirmed reports whether the user confirmed deletion.
func (m Model) Confirmed() bool {
	return m.confirmed
}

// Selected returns the candidates currently selected, in list order.
func (m Model) Selected() []sweep.Candidate {
	var out []sweep.Candidate
	for i, c := range m.items {
		if m.selected[i] {
			out = append(out, c)
		}
	}
	return out
}

// SelectedCount returns how many candidates are selected.
func (m Model) SelectedCount() int {
	n := 0
	for _, s := range m.selected {
		if s {
			n++
		}
	}
	return n
}

// SelectedBytes returns the total size of the selection.
func (m Model) SelectedBytes() int64 {
	var total int64
	for i, c := range m.items {
		if m.selected[i] {
			total += c.Size
		}
	}
	return total
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func (m *Model) ensureVisible() {
	vh := m.viewportHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+vh {
		m.offset = m.cursor - vh + 1
	}
}

func (m Model) viewportHeight() int {
	h := m.height - 8 // header (4) + footer (3) + padding
	if h < 1 {
		h = 1
	}
	return h
}

// Run shows the picker and returns the chosen candidates. ok is false when
// the user cancelled.
func Run(items []sweep.Candidate) (selected []sweep.Candidate, ok bool, err error) {
	final, err := tea.NewProgram(NewModel(items), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, false, err
	}
	m, isModel := final.(Model)
	if !isModel || !m.Confirmed() {
		return nil, false, nil
	}
	return m.Selected(), true, nil
}
