package tui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/ShayCichocki/trellis/internal/dashboard"
)

func todoFrame() dashboard.Frame {
	return dashboard.Frame{
		Tabs: []dashboard.Tab{
			{Title: "Work", Active: true},
			{Title: "Home"},
		},
		Board: &dashboard.BoardPane{
			Title: "Work",
			Columns: []dashboard.ColumnPane{
				{Title: "Todo", Cards: []string{"Buy milk"}},
			},
		},
	}
}

func TestRender_TodoScenario(t *testing.T) {
	out := Render(todoFrame(), 80, 24)

	for _, want := range []string{"Boards", "Work", "Home", "Todo", "Buy milk"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered frame missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Todo"); n != 1 {
		t.Errorf("column title rendered %d times, want 1", n)
	}
	if n := strings.Count(out, "Buy milk"); n != 1 {
		t.Errorf("card rendered %d times, want 1", n)
	}
}

func TestRender_FitsScreen(t *testing.T) {
	frame := todoFrame()
	frame.Board.Columns = append(frame.Board.Columns,
		dashboard.ColumnPane{Title: "Doing"},
		dashboard.ColumnPane{Title: "Done", Cards: []string{"a", "b", "c"}},
	)

	out := Render(frame, 90, 20)
	if h := lipgloss.Height(out); h != 20 {
		t.Errorf("height = %d, want 20", h)
	}
	if w := lipgloss.Width(out); w != 90 {
		t.Errorf("width = %d, want 90", w)
	}
}

func TestRender_NoBoards(t *testing.T) {
	out := Render(dashboard.Frame{}, 80, 24)
	if !strings.Contains(out, "No boards") {
		t.Errorf("expected 'No boards' placeholder:\n%s", out)
	}
}

func TestRender_ErrorPanes(t *testing.T) {
	frame := dashboard.Frame{
		Tabs:  []dashboard.Tab{{Title: "Work", Active: true}},
		Board: &dashboard.BoardPane{Title: "Work", Err: "list_columns: source unavailable"},
	}
	if out := Render(frame, 80, 24); !strings.Contains(out, "source unavailable") {
		t.Errorf("board error not shown:\n%s", out)
	}

	frame.Board = &dashboard.BoardPane{
		Title:   "Work",
		Columns: []dashboard.ColumnPane{{Title: "Todo", Err: "decode error"}},
	}
	if out := Render(frame, 80, 24); !strings.Contains(out, "decode error") {
		t.Errorf("column error not shown:\n%s", out)
	}
}

func TestRender_NoColumns(t *testing.T) {
	frame := dashboard.Frame{
		Tabs:  []dashboard.Tab{{Title: "Empty", Active: true}},
		Board: &dashboard.BoardPane{Title: "Empty"},
	}
	if out := Render(frame, 80, 24); !strings.Contains(out, "No columns") {
		t.Errorf("expected 'No columns' placeholder:\n%s", out)
	}
}

func TestTabBar_Active(t *testing.T) {
	tests := []struct {
		name string
		tabs []dashboard.Tab
		want int
	}{
		{"first active", []dashboard.Tab{{Title: "Work", Active: true}, {Title: "Home"}}, 0},
		{"second active", []dashboard.Tab{{Title: "Work"}, {Title: "Home", Active: true}}, 1},
		{"none", nil, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewTabBar(tt.tabs)
			if bar.active != tt.want {
				t.Errorf("active = %d, want %d", bar.active, tt.want)
			}
			if len(bar.tabs) != len(tt.tabs) {
				t.Errorf("len(tabs) = %d, want %d", len(bar.tabs), len(tt.tabs))
			}
			if h := lipgloss.Height(bar.View(80)); h != 3 {
				t.Errorf("tab bar height = %d, want 3", h)
			}
		})
	}
}

func TestLayoutManager_ColumnWidths(t *testing.T) {
	tests := []struct {
		name  string
		width int
		n     int
		want  []int
	}{
		{"single column", 80, 1, []int{78}},
		{"even split", 82, 4, []int{20, 20, 20, 20}},
		{"remainder to the left", 80, 4, []int{20, 20, 19, 19}},
		{"only what fits", 40, 5, []int{13, 13, 12}},
		{"narrower than one column", 10, 3, []int{8}},
		{"no columns", 80, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLayoutManager(tt.width, 24).ColumnWidths(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("ColumnWidths(%d) = %v, want %v", tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ColumnWidths(%d) = %v, want %v", tt.n, got, tt.want)
					break
				}
			}
		})
	}
}

func TestLayoutManager_Defaults(t *testing.T) {
	l := NewLayoutManager(0, 0)
	if l.TotalWidth() != defaultWidth {
		t.Errorf("TotalWidth() = %d, want %d", l.TotalWidth(), defaultWidth)
	}
	if l.BoardHeight() != defaultHeight-l.tabBarHeight {
		t.Errorf("BoardHeight() = %d, want %d", l.BoardHeight(), defaultHeight-l.tabBarHeight)
	}
}

func TestLayoutManager_VisibleColumns(t *testing.T) {
	tests := []struct {
		width int
		n     int
		want  int
	}{
		{80, 3, 3},
		{80, 6, 6},
		{80, 10, 6},
		{10, 4, 1},
		{80, 0, 0},
	}
	for _, tt := range tests {
		if got := NewLayoutManager(tt.width, 24).VisibleColumns(tt.n); got != tt.want {
			t.Errorf("VisibleColumns(%d) at width %d = %d, want %d", tt.n, tt.width, got, tt.want)
		}
	}
}

func assertFits(t *testing.T, out string, width, height int) {
	t.Helper()
	lines := strings.Split(out, "\n")
	if len(lines) != height {
		t.Errorf("line count = %d, want %d:\n%s", len(lines), height, out)
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w > width {
			t.Errorf("line %d width = %d, want <= %d: %q", i, w, width, line)
		}
	}
}

func TestRender_ManyColumnsNarrow(t *testing.T) {
	frame := dashboard.Frame{
		Tabs:  []dashboard.Tab{{Title: "Work", Active: true}},
		Board: &dashboard.BoardPane{Title: "Work"},
	}
	for i := 1; i <= 10; i++ {
		frame.Board.Columns = append(frame.Board.Columns, dashboard.ColumnPane{
			Title: fmt.Sprintf("Col%d", i),
			Cards: []string{fmt.Sprintf("card %d", i)},
		})
	}

	out := Render(frame, 80, 24)
	assertFits(t, out, 80, 24)

	for i := 1; i <= 6; i++ {
		if want := fmt.Sprintf("Col%d", i); !strings.Contains(out, want) {
			t.Errorf("visible column %q missing:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Col7") {
		t.Errorf("column 7 should be hidden at 80 columns:\n%s", out)
	}
	if !strings.Contains(out, "+4 more") {
		t.Errorf("expected overflow hint:\n%s", out)
	}
}

func TestRender_ManyTabsNarrow(t *testing.T) {
	var tabs []dashboard.Tab
	for i := 1; i <= 20; i++ {
		tabs = append(tabs, dashboard.Tab{Title: fmt.Sprintf("Board%02d", i), Active: i == 15})
	}
	frame := dashboard.Frame{
		Tabs:  tabs,
		Board: &dashboard.BoardPane{Title: "Board15"},
	}

	out := Render(frame, 60, 20)
	assertFits(t, out, 60, 20)

	bar := strings.Join(strings.Split(out, "\n")[:3], "\n")
	if !strings.Contains(bar, "Board15") {
		t.Errorf("active tab scrolled out of view:\n%s", bar)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"Buy milk", 20, "Buy milk"},
		{"Buy milk", 8, "Buy milk"},
		{"Buy milk", 5, "Buy …"},
		{"Buy milk", 1, "…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
