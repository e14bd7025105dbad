package ringmaze

// Offset is a single-pin move: one step in the Moore neighbourhood, or staying put.
type Offset struct {
	DX, DY int
}

// Offsets lists the nine per-pin moves.
var Offsets = [9]Offset{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Move pairs one offset per pin.
type Move struct {
	Top    Offset
	Bottom Offset
}

// Moves lists the 80 synchronized moves: every pair of offsets except both pins staying.
var Moves = func() []Move {
	moves := make([]Move, 0, len(Offsets)*len(Offsets)-1)
	for _, top := range Offsets {
		for _, bottom := range Offsets {
			if top == (Offset{}) && bottom == (Offset{}) {
				continue
			}
			moves = append(moves, Move{Top: top, Bottom: bottom})
		}
	}
	return moves
}()

// Candidates returns the on-grid joint states reachable from s in one move.
// Admissibility is not checked.
func (m *Maze) Candidates(s JointState) []JointState {
	candidates := make([]JointState, 0, len(Moves))
	for _, move := range Moves {
		top := m.Neighbor(s.Top, move.Top.DX, move.Top.DY)
		if top == None {
			continue
		}
		bottom := m.Neighbor(s.Bottom, move.Bottom.DX, move.Bottom.DY)
		if bottom == None {
			continue
		}
		candidates = append(candidates, JointState{Top: top, Bottom: bottom})
	}
	return candidates
}
