// Package navigation tracks which board tab is selected.
package navigation

import (
	"errors"

	"github.com/ShayCichocki/trellis/pkg/models"
)

// ErrNoBoards is returned by Current when there are no boards to select.
var ErrNoBoards = errors.New("no boards")

// State holds the ordered board tabs and the selected index.
// The index always satisfies 0 <= index < len(boards) when boards is
// non-empty, and is unused otherwise.
type State struct {
	boards []models.Board
	index  int
}

// New creates a State selecting the first of the given boards.
func New(boards []models.Board) *State {
	copied := make([]models.Board, len(boards))
	copy(copied, boards)
	return &State{boards: copied}
}

// Next selects the following board, wrapping after the last one.
func (s *State) Next() {
	if len(s.boards) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.boards)
}

// Previous selects the preceding board, wrapping before the first one.
func (s *State) Previous() {
	if len(s.boards) == 0 {
		return
	}
	s.index = (s.index - 1 + len(s.boards)) % len(s.boards)
}

// Current returns the selected board.
func (s *State) Current() (models.Board, error) {
	if len(s.boards) == 0 {
		return models.Board{}, ErrNoBoards
	}
	return s.boards[s.index], nil
}

// Index returns the selected index. It is 0 when there are no boards.
func (s *State) Index() int {
	return s.index
}

// Len returns the number of boards.
func (s *State) Len() int {
	return len(s.boards)
}

// Empty reports whether there are no boards.
func (s *State) Empty() bool {
	return len(s.boards) == 0
}

// Boards returns a copy of the boards in tab order.
func (s *State) Boards() []models.Board {
	copied := make([]models.Board, len(s.boards))
	copy(copied, s.boards)
	return copied
}
