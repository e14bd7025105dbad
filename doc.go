// Package ringmaze finds the shortest synchronized path for two pins joined by a
// rigid ring through two stacked grid mazes.
//
// It exposes two main entry points:
//
//   - Search: run the search to completion and get a Result.
//   - Stepper: advance the search one expansion at a time to drive UIs or debugging tools.
//
// Every move advances both pins by at most one cell in any of the eight compass
// directions (or keeps one of them in place). A joint position is admissible
// when neither pin sits on a blocked cell and the Ring accepts the pair. The
// search is uniform-cost over unit-cost moves, so the first terminal state
// popped from the frontier is reached in the minimum number of moves.
package ringmaze
