package ringmaze

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Cell classifies one grid location of one layer.
type Cell uint8

const (
	Blocked Cell = iota
	Open
	Terminal
)

func (c Cell) String() string {
	switch c {
	case Open:
		return "open"
	case Blocked:
		return "blocked"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}

// Layer selects one of the two stacked grids.
type Layer uint8

const (
	Top Layer = iota
	Bottom
)

func (l Layer) String() string {
	if l == Top {
		return "top"
	}
	return "bottom"
}

// Position is a linear index over width*height.
type Position int

// None is the off-grid position.
const None Position = -1

// JointState holds one position per layer.
type JointState struct {
	Top    Position
	Bottom Position
}

func (s JointState) String() string {
	return fmt.Sprintf("(%d,%d)", s.Top, s.Bottom)
}

// ErrInvalidMaze is returned when a maze descriptor is malformed.
var ErrInvalidMaze = errors.New("invalid maze")

// Maze holds two co-registered grids of cells. It is immutable after construction.
type Maze struct {
	width  int
	height int
	top    []Cell
	bottom []Cell
}

// NewMaze builds a maze from two pre-classified grids stored row-major.
// The slices are copied.
func NewMaze(width, height int, top, bottom []Cell) (*Maze, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: extents %dx%d", ErrInvalidMaze, width, height)
	}
	size := width * height
	if len(top) != size || len(bottom) != size {
		return nil, fmt.Errorf("%w: want %d cells per layer, got top=%d bottom=%d",
			ErrInvalidMaze, size, len(top), len(bottom))
	}
	for i := 0; i < size; i++ {
		if top[i] > Terminal || bottom[i] > Terminal {
			return nil, fmt.Errorf("%w: unknown cell value at %d", ErrInvalidMaze, i)
		}
	}
	return &Maze{
		width:  width,
		height: height,
		top:    append([]Cell(nil), top...),
		bottom: append([]Cell(nil), bottom...),
	}, nil
}

func (m *Maze) Width() int  { return m.width }
func (m *Maze) Height() int { return m.height }

// Size is the number of cells per layer.
func (m *Maze) Size() int { return m.width * m.height }

// CellAt returns the classification of pos on the given layer.
// pos must be on the grid.
func (m *Maze) CellAt(layer Layer, pos Position) Cell {
	if layer == Top {
		return m.top[pos]
	}
	return m.bottom[pos]
}

// Contains reports whether pos lies on the grid.
func (m *Maze) Contains(pos Position) bool {
	return pos >= 0 && int(pos) < m.Size()
}

// InBounds reports whether (x, y) lies on the grid.
func (m *Maze) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Passable reports whether both pins of s sit on non-blocked cells.
func (m *Maze) Passable(s JointState) bool {
	return m.CellAt(Top, s.Top) != Blocked && m.CellAt(Bottom, s.Bottom) != Blocked
}

// AtGoal reports whether both pins sit on a terminal cell.
func (m *Maze) AtGoal(s JointState) bool {
	return m.CellAt(Top, s.Top) == Terminal && m.CellAt(Bottom, s.Bottom) == Terminal
}

// ToPosition returns None when (x, y) is off the grid.
func (m *Maze) ToPosition(x, y int) Position {
	if !m.InBounds(x, y) {
		return None
	}
	return Position(y*m.width + x)
}

// ToCoords is the inverse of ToPosition. It is undefined on None.
func (m *Maze) ToCoords(pos Position) (x, y int) {
	return int(pos) % m.width, int(pos) / m.width
}

// Vec returns the grid coordinates of pos as a vector.
func (m *Maze) Vec(pos Position) r2.Vec {
	x, y := m.ToCoords(pos)
	return r2.Vec{X: float64(x), Y: float64(y)}
}

// Neighbor offsets pos by (dx, dy), returning None when the result leaves the grid.
func (m *Maze) Neighbor(pos Position, dx, dy int) Position {
	if pos == None {
		return None
	}
	x, y := m.ToCoords(pos)
	return m.ToPosition(x+dx, y+dy)
}

// Normalize maps grid coordinates into [0,1] relative to the grid extents.
func (m *Maze) Normalize(v r2.Vec) r2.Vec {
	return r2.Vec{X: v.X / float64(m.width), Y: v.Y / float64(m.height)}
}
