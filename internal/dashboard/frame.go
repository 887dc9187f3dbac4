package dashboard

// Frame describes everything drawn for a single redraw.
type Frame struct {
	// Tabs has one entry per board, in tab order.
	Tabs []Tab
	// Board is the pane of the selected board, nil when there are no boards.
	Board *BoardPane
}

// Tab is one board in the tab bar.
type Tab struct {
	Title  string
	Active bool
}

// BoardPane shows the columns of the selected board.
type BoardPane struct {
	Title   string
	Columns []ColumnPane
	// Err is set when the columns could not be fetched.
	Err string
}

// ColumnPane shows the cards of one column.
type ColumnPane struct {
	Title string
	Cards []string
	// Err is set when the cards could not be fetched.
	Err string
}

// ActiveTab returns the index of the active tab, or -1 if none is active.
func (f Frame) ActiveTab() int {
	for i, tab := range f.Tabs {
		if tab.Active {
			return i
		}
	}
	return -1
}
