package portfolio

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrItemNotFound    = errors.New("item not found in sequence")
	ErrNoNeighbor      = errors.New("item has no neighbor in that direction")
)

// Position is the ordering state of one row inside a sibling collection.
type Position struct {
	ID         string    `json:"id"`
	OrderIndex int       `json:"orderIndex"`
	CreatedAt  time.Time `json:"-"`
}

type Direction int

const (
	DirectionPrevious Direction = -1
	DirectionNext     Direction = 1
)

func ParseDirection(s string) (Direction, error) {
	switch s {
	case "left", "up", "previous", "prev":
		return DirectionPrevious, nil
	case "right", "down", "next":
		return DirectionNext, nil
	}
	return 0, fmt.Errorf("invalid direction %q", s)
}

// Ordered returns a copy of seq sorted the way it is displayed.
func Ordered(seq []Position) []Position {
	out := append(make([]Position, 0, len(seq)), seq...)
	slices.SortStableFunc(out, func(a, b Position) int {
		return compareOrder(a.OrderIndex, b.OrderIndex, a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out
}

// Resequence renumbers seq to 0..n-1 following its display order.
func Resequence(seq []Position) []Position {
	out := Ordered(seq)
	for i := range out {
		out[i].OrderIndex = i
	}
	return out
}

// Move relocates the element at position from to position to and renumbers every
// element to its new zero-based position. Positions refer to the display order.
func Move(seq []Position, from, to int) ([]Position, error) {
	if from < 0 || from >= len(seq) {
		return nil, fmt.Errorf("move from %d: %w", from, ErrIndexOutOfRange)
	}
	if to < 0 || to >= len(seq) {
		return nil, fmt.Errorf("move to %d: %w", to, ErrIndexOutOfRange)
	}

	out := Ordered(seq)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)

	for i := range out {
		out[i].OrderIndex = i
	}
	return out, nil
}

// Swap exchanges the order_index of the element id with its neighbor in the given
// direction. Only the two swapped positions are returned; nothing else changes.
func Swap(seq []Position, id string, dir Direction) ([]Position, error) {
	ordered := Ordered(seq)

	idx := slices.IndexFunc(ordered, func(p Position) bool {
		return p.ID == id
	})
	if idx < 0 {
		return nil, fmt.Errorf("swap %s: %w", id, ErrItemNotFound)
	}

	neighbor := idx + int(dir)
	if neighbor < 0 || neighbor >= len(ordered) {
		return nil, fmt.Errorf("swap %s: %w", id, ErrNoNeighbor)
	}

	a, b := ordered[idx], ordered[neighbor]
	a.OrderIndex, b.OrderIndex = b.OrderIndex, a.OrderIndex

	return []Position{a, b}, nil
}

// NextOrderIndex is the index a new element gets when appended to seq.
func NextOrderIndex(seq []Position) int {
	next := 0
	for _, p := range seq {
		if p.OrderIndex >= next {
			next = p.OrderIndex + 1
		}
	}
	return next
}

func ImagePositions(images []Image) []Position {
	out := make([]Position, 0, len(images))
	for _, img := range images {
		out = append(out, Position{ID: img.ID, OrderIndex: img.OrderIndex, CreatedAt: img.CreatedAt})
	}
	return out
}

func VideoPositions(videos []Video) []Position {
	out := make([]Position, 0, len(videos))
	for _, v := range videos {
		out = append(out, Position{ID: v.ID, OrderIndex: v.OrderIndex, CreatedAt: v.CreatedAt})
	}
	return out
}
