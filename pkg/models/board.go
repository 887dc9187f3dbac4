package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMissingField is returned when a decoded object lacks "id" or "name".
var ErrMissingField = errors.New("missing required field")

// Board is a top-level Kanban workspace, shown as one tab.
type Board struct {
	// ID is the backend identifier of the board.
	ID string `json:"id"`
	// Name is the display name of the board.
	Name string `json:"name"`
	// Extra holds every other member of the backend object, undecoded.
	Extra map[string]json.RawMessage `json:"-"`
}

// Column is a named list of cards that belongs to exactly one board.
type Column struct {
	// ID is the backend identifier of the column.
	ID string `json:"id"`
	// Name is the display name of the column.
	Name string `json:"name"`
	// Extra holds every other member of the backend object, undecoded.
	Extra map[string]json.RawMessage `json:"-"`
}

// Card is a single work item that belongs to exactly one column.
type Card struct {
	// ID is the backend identifier of the card.
	ID string `json:"id"`
	// Name is the card title.
	Name string `json:"name"`
	// Extra holds every other member of the backend object, undecoded.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Board) UnmarshalJSON(data []byte) error {
	id, name, extra, err := decodeEntity(data)
	if err != nil {
		return fmt.Errorf("board: %w", err)
	}
	*b = Board{ID: id, Name: name, Extra: extra}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Column) UnmarshalJSON(data []byte) error {
	id, name, extra, err := decodeEntity(data)
	if err != nil {
		return fmt.Errorf("column: %w", err)
	}
	*c = Column{ID: id, Name: name, Extra: extra}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Card) UnmarshalJSON(data []byte) error {
	id, name, extra, err := decodeEntity(data)
	if err != nil {
		return fmt.Errorf("card: %w", err)
	}
	*c = Card{ID: id, Name: name, Extra: extra}
	return nil
}

// decodeEntity splits a JSON object into its id, name and remaining members.
// Both id and name must be present and must be strings.
func decodeEntity(data []byte) (id, name string, extra map[string]json.RawMessage, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", "", nil, err
	}
	if fields == nil {
		return "", "", nil, errors.New("expected object, got null")
	}

	rawID, ok := fields["id"]
	if !ok {
		return "", "", nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	if id, err = decodeString(rawID); err != nil {
		return "", "", nil, fmt.Errorf("id: %w", err)
	}

	rawName, ok := fields["name"]
	if !ok {
		return "", "", nil, fmt.Errorf("%w: name", ErrMissingField)
	}
	if name, err = decodeString(rawName); err != nil {
		return "", "", nil, fmt.Errorf("name: %w", err)
	}

	delete(fields, "id")
	delete(fields, "name")
	if len(fields) == 0 {
		fields = nil
	}
	return id, name, fields, nil
}

// decodeString decodes a JSON string, rejecting null.
func decodeString(raw json.RawMessage) (string, error) {
	if string(raw) == "null" {
		return "", errors.New("expected string, got null")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s, nil
}
