package ringmaze

import (
	"container/heap"
	"fmt"

	"go.uber.org/zap"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	Current      SearchNode
	FrontierSize int
	Visited      int
	Expanded     int
	StepIndex    int
	Done         bool
	Outcome      Outcome
}

// Stepper runs the search one expansion at a time. Search drives a Stepper to
// completion; UIs and debugging tools can drive one directly.
type Stepper struct {
	maze    *Maze
	ring    *Ring
	start   JointState
	options Options
	logger  *zap.Logger

	frontier priorityQueue
	sequence uint64
	index    *VisitedIndex

	stepCount int
	expanded  int
	lastTime  int
	done      bool
	outcome   Outcome
	last      SearchNode
}

// NewStepper validates the start state and seeds the frontier with it.
func NewStepper(maze *Maze, ring *Ring, start JointState, options ...Option) (*Stepper, error) {
	if maze == nil {
		return nil, fmt.Errorf("%w: nil maze", ErrInvalidConfig)
	}
	if ring == nil {
		return nil, fmt.Errorf("%w: nil ring", ErrInvalidConfig)
	}
	if err := validateStart(maze, start); err != nil {
		return nil, err
	}

	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}

	s := &Stepper{
		maze:     maze,
		ring:     ring,
		start:    start,
		options:  opts,
		logger:   opts.Logger,
		frontier: make(priorityQueue, 0),
		index:    NewVisitedIndex(),
	}
	heap.Init(&s.frontier)
	if err := s.index.RecordOrigin(start); err != nil {
		return nil, err
	}
	s.push(SearchNode{State: start, Time: 0})
	return s, nil
}

func validateStart(maze *Maze, start JointState) error {
	if !maze.Contains(start.Top) || !maze.Contains(start.Bottom) {
		return fmt.Errorf("%w: start %v outside %dx%d grid", ErrStartOutOfBounds, start, maze.Width(), maze.Height())
	}
	if maze.CellAt(Top, start.Top) == Blocked {
		x, y := maze.ToCoords(start.Top)
		return fmt.Errorf("%w: top pin at (%d,%d)", ErrStartBlocked, x, y)
	}
	if maze.CellAt(Bottom, start.Bottom) == Blocked {
		x, y := maze.ToCoords(start.Bottom)
		return fmt.Errorf("%w: bottom pin at (%d,%d)", ErrStartBlocked, x, y)
	}
	return nil
}

func (s *Stepper) push(node SearchNode) {
	heap.Push(&s.frontier, priorityQueueItem{node: node, sequence: s.sequence})
	s.sequence++
}

// Index exposes the visited-state index. It must not be modified.
func (s *Stepper) Index() *VisitedIndex { return s.index }

// Done reports whether the search has reached a terminal outcome.
func (s *Stepper) Done() bool { return s.done }

// Close drops the frontier and the index.
func (s *Stepper) Close() {
	s.frontier = nil
	s.index = nil
	if !s.done {
		s.done = true
		s.outcome = Aborted
	}
}

func (s *Stepper) snapshot(current SearchNode) StepSnapshot {
	snap := StepSnapshot{
		Current:      current,
		FrontierSize: s.frontier.Len(),
		Expanded:     s.expanded,
		StepIndex:    s.stepCount,
		Done:         s.done,
		Outcome:      s.outcome,
	}
	if s.index != nil {
		snap.Visited = s.index.Len()
	}
	return snap
}

func (s *Stepper) finish(outcome Outcome, current SearchNode) StepSnapshot {
	s.done = true
	s.outcome = outcome
	s.logger.Info("search finished",
		zap.Stringer("outcome", outcome),
		zap.Int("time", current.Time),
		zap.Int("expanded", s.expanded),
		zap.Int("visited", s.index.Len()))
	return s.snapshot(current)
}

// Step pops one node, tests it against the goal and expands it.
func (s *Stepper) Step() (StepSnapshot, error) {
	if s.done {
		return s.snapshot(s.last), nil
	}
	if s.frontier.Len() == 0 {
		return s.finish(NoPath, s.last), nil
	}
	if s.options.MaxExpansions > 0 && s.expanded >= s.options.MaxExpansions {
		return s.finish(Aborted, s.last), nil
	}

	s.stepCount++
	current := heap.Pop(&s.frontier).(priorityQueueItem).node
	if current.Time != s.lastTime {
		s.lastTime = current.Time
		s.logger.Debug("search progress",
			zap.Int("time", current.Time),
			zap.Stringer("state", current.State),
			zap.Int("frontier", s.frontier.Len()),
			zap.Int("visited", s.index.Len()))
	}

	if s.maze.AtGoal(current.State) {
		s.last = current
		return s.finish(Found, current), nil
	}

	s.expanded++
	next := current.Time + 1
	for _, candidate := range s.maze.Candidates(current.State) {
		if !s.maze.Passable(candidate) {
			continue
		}
		if !s.ring.Validate(candidate.Top, candidate.Bottom, s.maze) {
			continue
		}
		if s.index.Seen(candidate, next) {
			continue
		}
		if err := s.index.Record(candidate, next, current.State); err != nil {
			return s.snapshot(current), fmt.Errorf("expand %v: %w", current.State, err)
		}
		s.push(SearchNode{State: candidate, Time: next})
	}

	s.last = current
	return s.snapshot(current), nil
}

// Result reconstructs the outcome of a finished search.
func (s *Stepper) Result() (Result, error) {
	if !s.done {
		return Result{}, ErrNotFinished
	}
	if s.index == nil {
		return Result{Outcome: s.outcome, ExpandedNodes: s.expanded}, nil
	}
	result := Result{
		Outcome:       s.outcome,
		ExpandedNodes: s.expanded,
		VisitedStates: s.index.Len(),
	}
	if s.outcome != Found {
		return result, nil
	}
	path, err := Reconstruct(s.index, s.last.State, s.maze, s.ring, s.options.Order)
	if err != nil {
		return result, err
	}
	result.Terminal = s.last.State
	result.Time = s.last.Time
	result.Path = path
	return result, nil
}
