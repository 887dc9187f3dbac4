// Package source provides the read-only board data sources for trellis.
//
// Two interchangeable variants implement Source: Remote talks to a
// Trello-style REST API, Fixture reads a static JSON file tree. Both decode
// the same shape (objects with "id", "name" and arbitrary extra members),
// so callers never need to know which one is active.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ShayCichocki/trellis/pkg/models"
)

// Failure kinds. Every error returned by a Source matches exactly one of
// these with errors.Is.
var (
	// ErrUnavailable means the backend could not be reached or read.
	ErrUnavailable = errors.New("source unavailable")
	// ErrDecode means the payload was not a well-formed collection.
	ErrDecode = errors.New("decode error")
)

// Source is the capability the dashboard reads boards, columns and cards
// through. Calls have no side effects and are never cached.
type Source interface {
	// ListBoards returns every board visible to the configured identity.
	ListBoards(ctx context.Context) ([]models.Board, error)
	// ListColumns returns the columns of a board, in backend order.
	ListColumns(ctx context.Context, boardID string) ([]models.Column, error)
	// ListCards returns the cards of a column, in backend order.
	ListCards(ctx context.Context, columnID string) ([]models.Card, error)
}

// Error describes a failed Source call.
type Error struct {
	// Op is the operation that failed (list_boards, list_columns, list_cards).
	Op string
	// Target is the resource that was read: a redacted URL or a file path.
	Target string
	// Kind is ErrUnavailable or ErrDecode.
	Kind error
	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Target, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Operation names used in Error.Op.
const (
	OpListBoards  = "list_boards"
	OpListColumns = "list_columns"
	OpListCards   = "list_cards"
)

func unavailable(op, target string, err error) error {
	return &Error{Op: op, Target: target, Kind: ErrUnavailable, Err: err}
}

func decodeFailure(op, target string, err error) error {
	return &Error{Op: op, Target: target, Kind: ErrDecode, Err: err}
}

// decodeList decodes a JSON array of entities. Anything other than an array,
// including null, is rejected, and a single bad element fails the whole
// payload so callers never see a partial result.
func decodeList[T any](op, target string, data []byte) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, decodeFailure(op, target, err)
	}
	if raw == nil {
		return nil, decodeFailure(op, target, errors.New("expected array, got null"))
	}

	items := make([]T, 0, len(raw))
	for i, elem := range raw {
		var item T
		if err := json.Unmarshal(elem, &item); err != nil {
			return nil, decodeFailure(op, target, fmt.Errorf("element %d: %w", i, err))
		}
		items = append(items, item)
	}
	return items, nil
}
