package ringmaze

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultTolerance is half a cell diagonal.
const DefaultTolerance = math.Sqrt2 / 2

// ErrInvalidRing is returned for negative or NaN ring parameters.
var ErrInvalidRing = errors.New("invalid ring parameters")

// Ring is the rigid link between the two pins.
type Ring struct {
	interPinDistance float64
	pinDiameter      float64
	tolerance        float64
}

// RingOption modifies a Ring under construction.
type RingOption func(*Ring)

// WithTolerance overrides DefaultTolerance. Zero is a valid tolerance.
func WithTolerance(tolerance float64) RingOption {
	return func(ring *Ring) { ring.tolerance = tolerance }
}

// NewRing builds the geometric predicate. All lengths are in grid units.
func NewRing(interPinDistance, pinDiameter float64, options ...RingOption) (*Ring, error) {
	ring := &Ring{
		interPinDistance: interPinDistance,
		pinDiameter:      pinDiameter,
		tolerance:        DefaultTolerance,
	}
	for _, option := range options {
		option(ring)
	}
	params := []struct {
		name  string
		value float64
	}{
		{"inter-pin distance", ring.interPinDistance},
		{"pin diameter", ring.pinDiameter},
		{"tolerance", ring.tolerance},
	}
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value < 0 {
			return nil, fmt.Errorf("%w: %s %v", ErrInvalidRing, p.name, p.value)
		}
	}
	return ring, nil
}

func (r *Ring) InterPinDistance() float64 { return r.interPinDistance }
func (r *Ring) PinDiameter() float64      { return r.pinDiameter }
func (r *Ring) Tolerance() float64        { return r.tolerance }

// Project returns the point pinDiameter away from bottom in the direction of top.
// It is used both as the wall-collision probe and as the ring centre.
// Coincident pins have no direction, in which case bottom is returned.
func (r *Ring) Project(top, bottom r2.Vec) r2.Vec {
	d := r2.Sub(top, bottom)
	if r2.Norm(d) == 0 {
		return bottom
	}
	return r2.Add(bottom, r2.Scale(r.pinDiameter, r2.Unit(d)))
}

// Validate reports whether the pins at top and bottom can be joined by the ring.
// The distance between them must lie strictly within the tolerance window, and
// the probe cell must not be open on either layer. A probe that falls off the
// grid cannot collide. Coincident pins probe their own cell, unless the ring
// has zero length, in which case there is nothing to collide.
func (r *Ring) Validate(top, bottom Position, maze *Maze) bool {
	tv, bv := maze.Vec(top), maze.Vec(bottom)
	dist := r2.Norm(r2.Sub(tv, bv))
	if dist <= r.interPinDistance-r.tolerance || dist >= r.interPinDistance+r.tolerance {
		return false
	}
	if r.interPinDistance == 0 {
		return true
	}

	probe := r.Project(tv, bv)
	x := int(math.Floor(probe.X + 0.5))
	y := int(math.Floor(probe.Y + 0.5))
	pos := maze.ToPosition(x, y)
	if pos == None {
		return true
	}
	return maze.CellAt(Top, pos) != Open && maze.CellAt(Bottom, pos) != Open
}
