// Package cellgraph compiles a levelenv.LevelEnv into a Level: a graph of
// alive/goal/dead cells with precomputed push-distances and move/push
// adjacency, ready for the search package to explore.
package cellgraph

import "github.com/katalvlaran/sokosolve/boxes"

// Direction indices into Cell.Dir / the first four entries of Cell.Dir8.
// Opposite directions satisfy d^2 == the reverse direction (West<->East,
// South<->North), mirroring the original's xy-delta encoding.
const (
	West = iota
	South
	East
	North
)

// Inf marks an unreachable push-distance.
const Inf = boxes.Inf

// Move is a legal agent step: Dir is the direction taken, To the
// destination cell id.
type Move struct {
	Dir int
	To  int
}

// Push is a legal push target: Dest is the cell the box lands on, AgentSrc
// is the cell the agent must stand on to perform it (the cell "behind" the
// box, opposite Dest).
type Push struct {
	Dest     int
	AgentSrc int
}

// Cell is a single navigable square. Ids are ordinal: goals first, then
// other alive cells, then dead cells (every goal id < NumGoals, every alive
// id < NumAlive, every dead id >= NumAlive).
type Cell struct {
	ID   int
	X, Y int

	Goal  bool
	Alive bool
	Sink  bool

	// Dir holds the neighbour cell id for each of the four directions, or
	// -1 if that direction is blocked (wall or off-grid).
	Dir [4]int
	// Dir8 additionally carries the four diagonal neighbours (indices 4-7:
	// NW, NE, SW, SE), or -1.
	Dir8 [8]int

	Moves  []Move
	Pushes []Push

	// PushDistance[g] is the minimum number of pushes to move a box from
	// this cell to goal g, assuming no other boxes exist; Inf if
	// unreachable. Populated for alive cells only.
	PushDistance []uint32
	// MinPushDistance is min(PushDistance).
	MinPushDistance uint32
}

// DirMod returns the neighbour cell id in direction d, wrapping d into
// [0,4) first (so callers can pass d-1 or d+1 without bounds-checking).
func (c *Cell) DirMod(d int) int {
	return c.Dir[d&3]
}

// Straight reports whether the cell has exactly two moves along the same
// axis (a corridor cell), mirroring Cell::straight in the source.
func (c *Cell) Straight() bool {
	return len(c.Moves) == 2 && (c.Moves[0].Dir^2) == c.Moves[1].Dir
}

// Level is the compiled, read-only board: all cells, counts, and the
// initial state. The Level exclusively owns its cells; everything else
// refers to them by id.
type Level struct {
	Width, Height int
	buffer        []byte // xy -> display symbol, debug printing only

	Cells []Cell

	NumGoals int
	NumAlive int
	NumBoxes int

	Start boxes.State
}

// Alive returns the alive cells (including goals), ids [0, NumAlive).
func (l *Level) Alive() []Cell { return l.Cells[:l.NumAlive] }

// Goals returns the goal cells, ids [0, NumGoals).
func (l *Level) Goals() []Cell { return l.Cells[:l.NumGoals] }
