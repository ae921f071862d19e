package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positions(pairs ...any) []Position {
	out := []Position{}
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, Position{ID: pairs[i].(string), OrderIndex: pairs[i+1].(int)})
	}
	return out
}

func orderIndexes(seq []Position) []int {
	out := make([]int, 0, len(seq))
	for _, p := range seq {
		out = append(out, p.OrderIndex)
	}
	return out
}

func TestMoveBlockToFront(t *testing.T) {
	seq := positions("b0", 0, "b1", 1, "b2", 2, "b3", 3, "b4", 4)

	got, err := Move(seq, 3, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, orderIndexes(got))
	assert.Equal(t, "b3", got[0].ID)
	assert.Equal(t, []string{"b3", "b0", "b1", "b2", "b4"}, []string{got[0].ID, got[1].ID, got[2].ID, got[3].ID, got[4].ID})
}

func TestMoveRenumbersRegardlessOfGapsAndInputOrder(t *testing.T) {
	tests := []struct {
		name     string
		seq      []Position
		from, to int
		wantIDs  []string
	}{
		{
			name:    "gaps are closed",
			seq:     positions("a", 4, "b", 10, "c", 11),
			from:    0,
			to:      2,
			wantIDs: []string{"b", "c", "a"},
		},
		{
			name:    "unsorted input uses display order",
			seq:     positions("c", 2, "a", 0, "b", 1),
			from:    2,
			to:      0,
			wantIDs: []string{"c", "a", "b"},
		},
		{
			name:    "move onto itself still resequences",
			seq:     positions("a", 3, "b", 8),
			from:    1,
			to:      1,
			wantIDs: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Move(tt.seq, tt.from, tt.to)
			require.NoError(t, err)

			gotIDs := []string{}
			for i, p := range got {
				assert.Equal(t, i, p.OrderIndex)
				gotIDs = append(gotIDs, p.ID)
			}
			assert.Equal(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestMoveRejectsOutOfRange(t *testing.T) {
	seq := positions("a", 0, "b", 1)

	_, err := Move(seq, 2, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Move(seq, 0, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = Move(nil, 0, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestResequence(t *testing.T) {
	got := Resequence(positions("x", 9, "y", 2, "z", 5))

	assert.Equal(t, []int{0, 1, 2}, orderIndexes(got))
	assert.Equal(t, "y", got[0].ID)
	assert.Equal(t, "x", got[2].ID)
}

func TestSwapChangesExactlyTwoRows(t *testing.T) {
	seq := positions("a", 0, "b", 2, "c", 5, "d", 6)

	changed, err := Swap(seq, "c", DirectionPrevious)
	require.NoError(t, err)

	require.Len(t, changed, 2)
	assert.Equal(t, Position{ID: "c", OrderIndex: 2}, changed[0])
	assert.Equal(t, Position{ID: "b", OrderIndex: 5}, changed[1])

	// everything else keeps its value, gaps included
	assert.Equal(t, []int{0, 2, 5, 6}, orderIndexes(seq))
}

func TestSwapNext(t *testing.T) {
	changed, err := Swap(positions("a", 0, "b", 1, "c", 2), "a", DirectionNext)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Position{{ID: "a", OrderIndex: 1}, {ID: "b", OrderIndex: 0}}, changed)
}

func TestSwapAtEdges(t *testing.T) {
	seq := positions("a", 0, "b", 1)

	_, err := Swap(seq, "a", DirectionPrevious)
	assert.ErrorIs(t, err, ErrNoNeighbor)

	_, err = Swap(seq, "b", DirectionNext)
	assert.ErrorIs(t, err, ErrNoNeighbor)

	_, err = Swap(seq, "missing", DirectionNext)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestNextOrderIndex(t *testing.T) {
	assert.Equal(t, 0, NextOrderIndex(nil))
	assert.Equal(t, 8, NextOrderIndex(positions("a", 0, "b", 7, "c", 3)))
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"left", "up", "previous"} {
		d, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, DirectionPrevious, d)
	}
	for _, s := range []string{"right", "down", "next"} {
		d, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, DirectionNext, d)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}
