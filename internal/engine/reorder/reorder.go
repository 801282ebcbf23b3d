package reorder

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange   = errors.New("reorder index out of range")
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrStaleSequence means rows changed between reading and writing the
	// sequence; nothing was persisted.
	ErrStaleSequence = errors.New("collection changed during reorder")
)

// Collection names an orderable table. The set is closed so table names in
// SQL never come from user input.
type Collection string

const (
	Portfolio    Collection = "portfolio"
	Testimonials Collection = "testimonials"
	ClientLogos  Collection = "client_logos"
)

var tables = map[Collection]string{
	Portfolio:    "portfolio_items",
	Testimonials: "testimonials",
	ClientLogos:  "client_logos",
}

func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if _, ok := tables[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
	}
	return c, nil
}

func (c Collection) Table() string {
	return tables[c]
}

// Position is one row's place in its collection.
type Position struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Move returns a copy of ids with the element at from removed and
// reinserted at to.
func Move(ids []string, from, to int) ([]string, error) {
	n := len(ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: move %d to %d in %d items", ErrIndexOutOfRange, from, to, n)
	}

	out := make([]string, 0, n)
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)

	moved := ids[from]
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out, nil
}

// Assign gives every id its index as order.
func Assign(ids []string) []Position {
	positions := make([]Position, len(ids))
	for i, id := range ids {
		positions[i] = Position{ID: id, Order: i}
	}
	return positions
}

// changed returns the entries of next whose order differs from current.
func changed(current, next []Position) []Position {
	was := make(map[string]int, len(current))
	for _, p := range current {
		was[p.ID] = p.Order
	}

	var diff []Position
	for _, p := range next {
		if order, ok := was[p.ID]; !ok || order != p.Order {
			diff = append(diff, p)
		}
	}
	return diff
}

func ids(positions []Position) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = p.ID
	}
	return out
}
