package ringmaze

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrAlreadyRecorded = errors.New("state already recorded")
	ErrOriginRecorded  = errors.New("origin already recorded")
	ErrNotRecorded     = errors.New("state not recorded")
)

// visitedRecord is the earliest arrival at a state and the state it came from.
type visitedRecord struct {
	time           int
	predecessor    JointState
	hasPredecessor bool
}

// VisitedIndex maps joint states to their earliest arrival time and predecessor.
// Entries are never removed, so any recorded state can be walked back to the origin.
type VisitedIndex struct {
	records   map[JointState]visitedRecord
	origin    JointState
	hasOrigin bool
}

func NewVisitedIndex() *VisitedIndex {
	return &VisitedIndex{records: make(map[JointState]visitedRecord)}
}

// Seen reports whether s has been recorded at or before time.
func (v *VisitedIndex) Seen(s JointState, time int) bool {
	record, ok := v.records[s]
	return ok && record.time <= time
}

// RecordOrigin stores s at time 0 with no predecessor. It must be the first record.
func (v *VisitedIndex) RecordOrigin(s JointState) error {
	if v.hasOrigin || len(v.records) > 0 {
		return ErrOriginRecorded
	}
	v.records[s] = visitedRecord{}
	v.origin = s
	v.hasOrigin = true
	return nil
}

// Record stores the first arrival at s. First write wins: later arrivals are
// rejected with ErrAlreadyRecorded.
func (v *VisitedIndex) Record(s JointState, time int, predecessor JointState) error {
	if existing, ok := v.records[s]; ok {
		return fmt.Errorf("%w: %v at time %d", ErrAlreadyRecorded, s, existing.time)
	}
	if _, ok := v.records[predecessor]; !ok {
		return fmt.Errorf("%w: predecessor %v", ErrNotRecorded, predecessor)
	}
	v.records[s] = visitedRecord{time: time, predecessor: predecessor, hasPredecessor: true}
	return nil
}

// Predecessor returns the state s was reached from. ok is false for the origin
// and for unrecorded states.
func (v *VisitedIndex) Predecessor(s JointState) (predecessor JointState, ok bool) {
	record, found := v.records[s]
	if !found || !record.hasPredecessor {
		return JointState{}, false
	}
	return record.predecessor, true
}

// Time returns the recorded arrival time of s.
func (v *VisitedIndex) Time(s JointState) (int, bool) {
	record, ok := v.records[s]
	return record.time, ok
}

// Origin returns the state passed to RecordOrigin.
func (v *VisitedIndex) Origin() (JointState, bool) {
	return v.origin, v.hasOrigin
}

func (v *VisitedIndex) Len() int { return len(v.records) }

// All yields every recorded state with its arrival time, in no particular order.
func (v *VisitedIndex) All() iter.Seq2[JointState, int] {
	return func(yield func(JointState, int) bool) {
		for state, record := range v.records {
			if !yield(state, record.time) {
				return
			}
		}
	}
}
