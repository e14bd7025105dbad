package ringmaze

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

var (
	// ErrInvalidConfig is the parent of every input validation error.
	ErrInvalidConfig    = errors.New("invalid search configuration")
	ErrStartOutOfBounds = fmt.Errorf("%w: start outside grid", ErrInvalidConfig)
	ErrStartBlocked     = fmt.Errorf("%w: start on blocked cell", ErrInvalidConfig)
	ErrNotFinished      = errors.New("search not finished")
)

// Outcome is how a search ended.
type Outcome uint8

const (
	Running Outcome = iota
	Found
	NoPath
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Running:
		return "running"
	case Found:
		return "found"
	case NoPath:
		return "no path"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Result contains the outcome of a search
type Result struct {
	Outcome       Outcome
	Terminal      JointState
	Time          int
	Path          []PathRecord
	ExpandedNodes int
	VisitedStates int
}

// Found reports whether a path was found.
func (r Result) Found() bool { return r.Outcome == Found }

// Options defines parameters for the search.
type Options struct {
	// MaxExpansions aborts the search after this many expansions. Zero means no limit.
	MaxExpansions int
	Logger        *zap.Logger
	Order         PathOrder
}

// Option is a function that modifies Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Logger: zap.NewNop(), Order: Chronological}
}

// WithMaxExpansions bounds the number of expanded nodes.
func WithMaxExpansions(n int) Option {
	return func(options *Options) { options.MaxExpansions = n }
}

// WithLogger receives progress events at debug level and the final outcome at info level.
func WithLogger(logger *zap.Logger) Option {
	return func(options *Options) {
		if logger != nil {
			options.Logger = logger
		}
	}
}

// WithOrder sets the order of Result.Path.
func WithOrder(order PathOrder) Option {
	return func(options *Options) { options.Order = order }
}

// DefaultStart places the top pin at (0,0) and the bottom pin one inter-pin
// distance further down the first column.
func DefaultStart(maze *Maze, ring *Ring) (JointState, error) {
	top := maze.ToPosition(0, 0)
	bottom := maze.ToPosition(0, int(math.Floor(ring.InterPinDistance())))
	if bottom == None {
		return JointState{}, fmt.Errorf("%w: inter-pin distance %v exceeds grid height %d",
			ErrStartOutOfBounds, ring.InterPinDistance(), maze.Height())
	}
	return JointState{Top: top, Bottom: bottom}, nil
}

// Search runs a uniform-cost search over joint states from start until both
// pins stand on a terminal cell. Exhausting the frontier is reported as
// NoPath, not as an error.
func Search(
	contextObject context.Context,
	maze *Maze,
	ring *Ring,
	start JointState,
	options ...Option,
) (Result, error) {
	stepper, err := NewStepper(maze, ring, start, options...)
	if err != nil {
		return Result{}, err
	}
	defer stepper.Close()

	for !stepper.Done() {
		if err := contextObject.Err(); err != nil {
			return Result{Outcome: Aborted, ExpandedNodes: stepper.expanded}, err
		}
		if _, err := stepper.Step(); err != nil {
			return Result{}, err
		}
	}
	return stepper.Result()
}
