package ringmaze

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func mustRing(t *testing.T, distance, diameter float64, options ...RingOption) *Ring {
	t.Helper()
	ring, err := NewRing(distance, diameter, options...)
	require.NoError(t, err)
	return ring
}

func TestNewRing(t *testing.T) {
	ring := mustRing(t, 3, 1)
	assert.InDelta(t, math.Sqrt2/2, ring.Tolerance(), 1e-12)
	assert.Equal(t, 3.0, ring.InterPinDistance())
	assert.Equal(t, 1.0, ring.PinDiameter())

	ring = mustRing(t, 3, 1, WithTolerance(0))
	assert.Equal(t, 0.0, ring.Tolerance())

	for _, bad := range [][3]float64{
		{-1, 1, 0.5},
		{1, -1, 0.5},
		{1, 1, -0.5},
		{math.NaN(), 1, 0.5},
		{1, math.Inf(1), 0.5},
	} {
		_, err := NewRing(bad[0], bad[1], WithTolerance(bad[2]))
		assert.ErrorIs(t, err, ErrInvalidRing, "params %v", bad)
	}
}

func TestRing_DistanceWindow(t *testing.T) {
	// Blocked everywhere so the collision probe never rejects.
	maze := mustMaze(t,
		[]string{"#####", "#####", "#####", "#####", "#####"},
		[]string{"#####", "#####", "#####", "#####", "#####"})
	ring := mustRing(t, 2, 1)
	origin := maze.ToPosition(0, 0)

	tests := []struct {
		x, y int
		want bool
	}{
		{2, 0, true},  // exactly 2
		{2, 1, true},  // sqrt(5) ~ 2.236
		{1, 1, true},  // sqrt(2) ~ 1.414 > 2 - 0.707
		{1, 0, false}, // 1
		{3, 0, false}, // 3 > 2.707
		{2, 2, false}, // 2.828
		{0, 0, false}, // coincident
	}
	for _, tt := range tests {
		got := ring.Validate(maze.ToPosition(tt.x, tt.y), origin, maze)
		assert.Equal(t, tt.want, got, "top at (%d,%d)", tt.x, tt.y)
	}
}

func TestRing_ZeroToleranceRejectsEverything(t *testing.T) {
	maze := mustMaze(t,
		[]string{"####", "####", "####", "####"},
		[]string{"####", "####", "####", "####"})
	ring := mustRing(t, 1.5, 0, WithTolerance(0))
	for top := Position(0); int(top) < maze.Size(); top++ {
		for bottom := Position(0); int(bottom) < maze.Size(); bottom++ {
			require.False(t, ring.Validate(top, bottom, maze))
		}
	}
}

func TestRing_CollisionProbe(t *testing.T) {
	// Pins at (0,0) bottom and (2,0) top; probe at diameter 1 lands on (1,0).
	ring := mustRing(t, 2, 1)

	tests := []struct {
		name        string
		top, bottom []string
		want        bool
	}{
		{"probe blocked on both", []string{".#."}, []string{".#."}, true},
		{"probe open on top", []string{"..."}, []string{".#."}, false},
		{"probe open on bottom", []string{".#."}, []string{"..."}, false},
		{"probe terminal", []string{".X."}, []string{".X."}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maze := mustMaze(t, tt.top, tt.bottom)
			got := ring.Validate(maze.ToPosition(2, 0), maze.ToPosition(0, 0), maze)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRing_ProbeOffGridAccepts(t *testing.T) {
	maze := mustMaze(t, []string{"..."}, []string{"..."})
	// Bottom at (2,0), top at (0,0): probe at distance 3 lands at x=-1.
	ring := mustRing(t, 2, 3)
	assert.True(t, ring.Validate(maze.ToPosition(0, 0), maze.ToPosition(2, 0), maze))
}

func TestRing_ZeroLengthRingIgnoresWalls(t *testing.T) {
	maze := mustMaze(t, []string{"..."}, []string{"..."})
	ring := mustRing(t, 0, 1)
	pos := maze.ToPosition(1, 0)
	assert.True(t, ring.Validate(pos, pos, maze))
}

func TestRing_CoincidentPinsCheckOwnCell(t *testing.T) {
	maze := mustMaze(t, []string{"..X"}, []string{"..X"})
	// Distance 0 lies inside the window (0.5-0.71, 0.5+0.71).
	ring := mustRing(t, 0.5, 2)

	open := maze.ToPosition(1, 0)
	assert.False(t, ring.Validate(open, open, maze))

	exit := maze.ToPosition(2, 0)
	assert.True(t, ring.Validate(exit, exit, maze))
}

func TestRing_Project(t *testing.T) {
	ring := mustRing(t, 5, 2)
	got := ring.Project(r2.Vec{X: 3, Y: 4}, r2.Vec{})
	assert.InDelta(t, 1.2, got.X, 1e-12)
	assert.InDelta(t, 1.6, got.Y, 1e-12)

	same := r2.Vec{X: 1, Y: 1}
	assert.Equal(t, same, ring.Project(same, same))
}
