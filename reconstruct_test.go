package ringmaze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestReconstruct(t *testing.T) {
	maze := mustMaze(t, openGrid(4, 4), openGrid(4, 4))
	ring := mustRing(t, 2, 1)
	at := func(tx, ty, bx, by int) JointState {
		return JointState{Top: maze.ToPosition(tx, ty), Bottom: maze.ToPosition(bx, by)}
	}

	index := NewVisitedIndex()
	s0, s1, s2 := at(0, 0, 0, 2), at(1, 0, 1, 2), at(2, 1, 2, 3)
	require.NoError(t, index.RecordOrigin(s0))
	require.NoError(t, index.Record(s1, 1, s0))
	require.NoError(t, index.Record(s2, 2, s1))

	chrono, err := Reconstruct(index, s2, maze, ring, Chronological)
	require.NoError(t, err)
	require.Len(t, chrono, 3)
	assert.Equal(t, []JointState{s0, s1, s2}, []JointState{chrono[0].State, chrono[1].State, chrono[2].State})
	assert.Equal(t, r2.Vec{X: 2, Y: 1}, chrono[2].Top)
	assert.Equal(t, r2.Vec{X: 2, Y: 3}, chrono[2].Bottom)
	// Ring centre sits one diameter above the bottom pin.
	assert.Equal(t, r2.Vec{X: 2, Y: 2}, chrono[2].Ring)

	reversed, err := Reconstruct(index, s2, maze, ring, TerminalFirst)
	require.NoError(t, err)
	assert.Equal(t, s2, reversed[0].State)
	assert.Equal(t, 2, reversed[0].Time)
	assert.Equal(t, s0, reversed[2].State)

	_, err = Reconstruct(index, at(3, 3, 3, 3), maze, ring, Chronological)
	assert.ErrorIs(t, err, ErrNotRecorded)
}
