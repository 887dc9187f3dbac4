package tui

// Default screen size used before the first window size message arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// minColumnWidth keeps very narrow terminals from collapsing column panes.
const minColumnWidth = 12

// LayoutManager splits the screen into the tab bar and the board pane,
// and the board pane into equal column widths.
type LayoutManager struct {
	// totalWidth is the terminal width.
	totalWidth int
	// totalHeight is the terminal height.
	totalHeight int
	// tabBarHeight is the height reserved for the tab bar.
	tabBarHeight int
}

// NewLayoutManager creates a LayoutManager for the given terminal size.
// Non-positive dimensions fall back to 80x24.
func NewLayoutManager(width, height int) *LayoutManager {
	l := &LayoutManager{tabBarHeight: 3} // border (2) + tab line (1)
	l.SetSize(width, height)
	return l
}

// SetSize updates the terminal dimensions.
func (l *LayoutManager) SetSize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	l.totalWidth = width
	l.totalHeight = height
}

// TotalWidth returns the current terminal width.
func (l *LayoutManager) TotalWidth() int {
	return l.totalWidth
}

// BoardHeight returns the height left for the board pane.
func (l *LayoutManager) BoardHeight() int {
	h := l.totalHeight - l.tabBarHeight
	if h < 3 {
		h = 3
	}
	return h
}

// VisibleColumns returns how many of n columns fit side by side without
// going below the minimum column width. At least one column is shown.
func (l *LayoutManager) VisibleColumns(n int) int {
	if n <= 0 {
		return 0
	}
	fit := l.interiorWidth() / minColumnWidth
	if fit < 1 {
		fit = 1
	}
	if n < fit {
		return n
	}
	return fit
}

// ColumnWidths splits the board interior (inside its border) between the
// first VisibleColumns(n) columns. The remainder goes to the leftmost
// columns so the widths always add up to the interior width.
func (l *LayoutManager) ColumnWidths(n int) []int {
	visible := l.VisibleColumns(n)
	if visible == 0 {
		return nil
	}

	interior := l.interiorWidth()
	base := interior / visible
	extra := interior % visible

	widths := make([]int, visible)
	for i := range widths {
		widths[i] = base
		if i < extra {
			widths[i]++
		}
	}
	return widths
}

func (l *LayoutManager) interiorWidth() int {
	if w := l.totalWidth - 2; w > 0 {
		return w
	}
	return 1
}
