package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/trellis/internal/dashboard"
)

var (
	boardStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))

	boardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255"))

	columnStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("244"))

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("81"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("255"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// Render draws a frame for a terminal of the given size: the tab bar on
// top and the selected board below it.
func Render(frame dashboard.Frame, width, height int) string {
	layout := NewLayoutManager(width, height)

	tabs := NewTabBar(frame.Tabs).View(layout.TotalWidth())
	board := renderBoard(frame.Board, layout)

	return lipgloss.JoinVertical(lipgloss.Left, tabs, board)
}

func renderBoard(pane *dashboard.BoardPane, layout *LayoutManager) string {
	innerWidth := layout.TotalWidth() - 2
	innerHeight := layout.BoardHeight() - 2
	box := boardStyle.Width(innerWidth).Height(innerHeight).MaxHeight(innerHeight + 2)

	if pane == nil {
		return box.Render(hintStyle.Render("No boards"))
	}

	title := boardTitleStyle.Render(truncate(pane.Title, innerWidth))
	switch {
	case pane.Err != "":
		return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, errorStyle.Render(pane.Err)))
	case len(pane.Columns) == 0:
		return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, hintStyle.Render("No columns")))
	}

	// One line of the board interior is taken by the title.
	columnHeight := innerHeight - 1 - 2
	if columnHeight < 1 {
		columnHeight = 1
	}

	widths := layout.ColumnWidths(len(pane.Columns))
	if hidden := len(pane.Columns) - len(widths); hidden > 0 {
		more := hintStyle.Render(fmt.Sprintf("  +%d more", hidden))
		title = boardTitleStyle.Render(truncate(pane.Title, innerWidth-lipgloss.Width(more))) + more
	}

	columns := make([]string, len(widths))
	for i, width := range widths {
		columns[i] = renderColumn(pane.Columns[i], width, columnHeight)
	}
	row := lipgloss.NewStyle().
		MaxWidth(innerWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, columns...))

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

// renderColumn draws one column pane with a total width of width and a
// content height of height.
func renderColumn(col dashboard.ColumnPane, width, height int) string {
	inner := width - 2
	if inner < 1 {
		inner = 1
	}

	lines := []string{columnTitleStyle.Render(truncate(col.Title, inner))}
	switch {
	case col.Err != "":
		lines = append(lines, errorStyle.Width(inner).Render(col.Err))
	case len(col.Cards) == 0:
		lines = append(lines, hintStyle.Render("(empty)"))
	default:
		for _, card := range col.Cards {
			lines = append(lines, cardStyle.Width(inner).Render(truncate(card, inner)))
		}
	}

	return columnStyle.
		Width(inner).
		Height(height).
		MaxHeight(height + 2).
		Render(strings.Join(lines, "\n"))
}

// truncate shortens s to at most width cells, marking the cut with an
// ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
