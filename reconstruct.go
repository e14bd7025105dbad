package ringmaze

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

// PathOrder selects the order of reconstructed records.
type PathOrder uint8

const (
	// Chronological lists the origin first.
	Chronological PathOrder = iota
	// TerminalFirst lists the terminal state first, the natural walk order.
	TerminalFirst
)

func (o PathOrder) String() string {
	if o == TerminalFirst {
		return "terminal-first"
	}
	return "chronological"
}

// ParsePathOrder accepts the names returned by PathOrder.String.
func ParsePathOrder(s string) (PathOrder, error) {
	switch s {
	case "", "chronological":
		return Chronological, nil
	case "terminal-first":
		return TerminalFirst, nil
	}
	return Chronological, fmt.Errorf("%w: unknown path order %q", ErrInvalidConfig, s)
}

// PathRecord is one step of a solution, in grid units.
type PathRecord struct {
	Time   int
	State  JointState
	Top    r2.Vec
	Bottom r2.Vec
	Ring   r2.Vec
}

// Reconstruct follows predecessor links from terminal back to the origin.
func Reconstruct(index *VisitedIndex, terminal JointState, maze *Maze, ring *Ring, order PathOrder) ([]PathRecord, error) {
	time, ok := index.Time(terminal)
	if !ok {
		return nil, fmt.Errorf("reconstruct from %v: %w", terminal, ErrNotRecorded)
	}

	records := make([]PathRecord, 0, time+1)
	for state := terminal; ; {
		t, _ := index.Time(state)
		top, bottom := maze.Vec(state.Top), maze.Vec(state.Bottom)
		records = append(records, PathRecord{
			Time:   t,
			State:  state,
			Top:    top,
			Bottom: bottom,
			Ring:   ring.Project(top, bottom),
		})
		previous, ok := index.Predecessor(state)
		if !ok {
			break
		}
		if len(records) > index.Len() {
			return nil, fmt.Errorf("reconstruct from %v: predecessor cycle", terminal)
		}
		state = previous
	}

	if order == Chronological {
		slices.Reverse(records)
	}
	return records, nil
}
