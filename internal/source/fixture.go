package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/ShayCichocki/trellis/pkg/models"
)

// FixtureDir is the directory, under the fixture root, holding the JSON tree.
const FixtureDir = "test_data"

// Fixture reads boards from a static file tree:
//
//	test_data/boards.json                  boards
//	test_data/{boardId}/lists/lists.json   columns of a board
//	test_data/{columnId}.json              cards of a column
type Fixture struct {
	fs   afero.Fs
	root string
}

var _ Source = (*Fixture)(nil)

// NewFixture creates a Fixture source reading below root on fs.
// A nil fs means the OS filesystem.
func NewFixture(fs afero.Fs, root string) *Fixture {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if root == "" {
		root = "."
	}
	return &Fixture{fs: fs, root: root}
}

// Dir returns the directory holding the fixture tree.
func (f *Fixture) Dir() string {
	return filepath.Join(f.root, FixtureDir)
}

// ListBoards implements Source.
func (f *Fixture) ListBoards(ctx context.Context) ([]models.Board, error) {
	path := filepath.Join(f.Dir(), "boards.json")
	data, err := f.read(ctx, OpListBoards, path)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Board](OpListBoards, path, data)
}

// ListColumns implements Source. The tree has no separate index of board
// ids, so an unknown board and a missing lists file look the same: both fail
// with ErrUnavailable rather than yielding no columns as Remote does.
func (f *Fixture) ListColumns(ctx context.Context, boardID string) ([]models.Column, error) {
	if err := checkID(boardID); err != nil {
		return nil, unavailable(OpListColumns, boardID, err)
	}
	path := filepath.Join(f.Dir(), boardID, "lists", "lists.json")
	data, err := f.read(ctx, OpListColumns, path)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Column](OpListColumns, path, data)
}

// ListCards implements Source. As with ListColumns, an unknown column id
// fails with ErrUnavailable because its card file does not exist.
func (f *Fixture) ListCards(ctx context.Context, columnID string) ([]models.Card, error) {
	if err := checkID(columnID); err != nil {
		return nil, unavailable(OpListCards, columnID, err)
	}
	path := filepath.Join(f.Dir(), columnID+".json")
	data, err := f.read(ctx, OpListCards, path)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Card](OpListCards, path, data)
}

func (f *Fixture) read(ctx context.Context, op, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(op, path, err)
	}
	log.Printf("[fixture] reading %s", path)
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, unavailable(op, path, err)
	}
	return data, nil
}

// checkID rejects ids that would resolve outside the fixture tree.
func checkID(id string) error {
	switch {
	case id == "":
		return errors.New("empty id")
	case id == "." || id == "..":
		return fmt.Errorf("invalid id %q", id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("invalid id %q: contains a path separator", id)
	}
	return nil
}
