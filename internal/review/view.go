package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lakshaymaurya-felt/venvsweep/internal/core"
	"github.com/lakshaymaurya-felt/venvsweep/internal/sweep"
	"github.com/lakshaymaurya-felt/venvsweep/internal/ui"
)

// ─── Top-level view ──────────────────────────────────────────────────────────

func (m Model) renderView() string {
	if m.quitting || m.confirmed {
		return ""
	}
	w := m.width
	if w < 40 {
		w = 40
	}

	var s strings.Builder
	s.WriteString(m.renderHeader(w))
	s.WriteString("\n")
	s.WriteString(m.renderBody(w))
	s.WriteString("\n")
	s.WriteString(m.renderFooter())
	return s.String()
}

// ─── Header ──────────────────────────────────────────────────────────────────

func (m Model) renderHeader(w int) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.ColorPrimary).
		Render("  " + ui.IconSearch + " Stale Python environments")

	stats := lipgloss.NewStyle().
		Foreground(ui.ColorTextDim).
		Render(fmt.Sprintf("  %d of %d selected    %s",
			m.SelectedCount(), len(m.items), core.FormatSize(m.SelectedBytes())))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPrimary).
		Width(w - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, stats))
}

// ─── Body ────────────────────────────────────────────────────────────────────

func (m Model) renderBody(w int) string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render("  Nothing to clean up")
	}

	vh := m.viewportHeight()
	var lines []string
	for i := m.offset; i < len(m.items) && i < m.offset+vh; i++ {
		lines = append(lines, m.renderItem(i, w))
	}

	if len(m.items) > vh {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(ui.ColorMuted).
			Italic(true).
			Render(fmt.Sprintf("  ── %d/%d items ──", min(m.offset+vh, len(m.items)), len(m.items))))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderItem(i, w int) string {
	c := m.items[i]

	box := "[ ]"
	if m.selected[i] {
		box = lipgloss.NewStyle().Foreground(ui.ColorSuccess).Render("[" + ui.IconCheck + "]")
	}

	kind := "venv "
	if c.Kind == sweep.KindCache {
		kind = "cache"
	}
	kindStr := lipgloss.NewStyle().Foreground(ui.ColorMuted).Render(kind)

	path := c.Path
	maxPath := w - 40
	if maxPath < 12 {
		maxPath = 12
	}
	if r := []rune(path); len(r) > maxPath {
		path = "…" + string(r[len(r)-maxPath+1:])
	}
	pathStr := lipgloss.NewStyle().Foreground(ui.ColorText).Render(path)

	meta := lipgloss.NewStyle().Foreground(ui.ColorTextDim).Render(
		fmt.Sprintf("%10s  %s", core.FormatSize(c.Size), c.ModTime.Format("2006-01-02")))

	cursor := "  "
	if i == m.cursor {
		cursor = lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Render(" " + ui.IconChevron)
	}
	return fmt.Sprintf("%s %s %s  %s  %s", cursor, box, kindStr, meta, pathStr)
}

// ─── Footer ──────────────────────────────────────────────────────────────────

func (m Model) renderFooter() string {
	if m.confirmDelete {
		return lipgloss.NewStyle().
			Foreground(ui.ColorError).
			Bold(true).
			Render(fmt.Sprintf("  %s Delete %d director%s (%s)? Press Enter again to confirm",
				ui.IconTrash, m.SelectedCount(), plural(m.SelectedCount()), core.FormatSize(m.SelectedBytes())))
	}
	return "  " + m.help.View(m.keys)
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
