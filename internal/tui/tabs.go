package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/trellis/internal/dashboard"
)

// tabBarLabel is the title shown in front of the board tabs.
const tabBarLabel = "Boards"

// TabBar renders one tab per board with the selected board highlighted.
type TabBar struct {
	tabs   []string
	active int

	// Styles
	labelStyle    lipgloss.Style
	activeStyle   lipgloss.Style
	inactiveStyle lipgloss.Style
	barStyle      lipgloss.Style
}

// NewTabBar creates a TabBar for the tabs of a frame.
func NewTabBar(tabs []dashboard.Tab) TabBar {
	titles := make([]string, len(tabs))
	active := -1
	for i, tab := range tabs {
		titles[i] = tab.Title
		if tab.Active {
			active = i
		}
	}

	return TabBar{
		tabs:   titles,
		active: active,

		labelStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51")).
			PaddingRight(1),

		activeStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Background(lipgloss.Color("236")).
			Padding(0, 2),

		inactiveStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Padding(0, 2),

		barStyle: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}

// View renders the tab bar to the given total width. When the tabs do not
// fit, leading tabs are skipped until the active one is visible and the
// rest is clipped.
func (t TabBar) View(width int) string {
	rendered := make([]string, len(t.tabs))
	for i, tab := range t.tabs {
		if i == t.active {
			rendered[i] = t.activeStyle.Render(tab)
		} else {
			rendered[i] = t.inactiveStyle.Render(tab)
		}
	}

	label := t.labelStyle.Render(tabBarLabel)
	inner := width - 2
	first := 0
	for first < t.active && lipgloss.Width(label)+lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Top, rendered[first:]...)) > inner {
		first++
	}
	if first > 0 {
		label = t.labelStyle.Render(tabBarLabel + " …")
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{label}, rendered[first:]...)...)
	bar := t.barStyle
	if inner > 0 {
		line = lipgloss.NewStyle().MaxWidth(inner).Render(line)
		bar = bar.Width(inner)
	}
	return bar.Render(line)
}
