package cellgraph

import (
	"github.com/katalvlaran/sokosolve/boxes"
	"github.com/katalvlaran/sokosolve/levelenv"
)

// Compile runs the full pipeline (steps 1-7) turning env into a Level:
// deadend elimination, wall canonicalization, dead-cell detection, cell
// ordering, push-distance computation, and initial-state assignment.
//
// Returns *InvalidLevelError for a malformed env (missing/misplaced agent,
// box/goal count mismatch).
func Compile(env *levelenv.LevelEnv) (*Level, error) {
	if err := env.Validate(); err != nil {
		return nil, &InvalidLevelError{Reason: err.Error(), X: -1, Y: -1}
	}

	b := newBoard(env.Width, env.Height)
	for y := 0; y < env.Height; y++ {
		for x := 0; x < env.Width; x++ {
			xy := x + y*env.Width
			if env.Wall[y][x] {
				b.cell[xy] = symWall
			} else if env.Goal[y][x] {
				b.cell[xy] = symGoal
			}
			if env.Box[y][x] {
				b.box[xy] = true
			}
		}
	}
	b.agent = env.Agent.X + env.Agent.Y*env.Width

	b.collapseAgentDeadend()
	b.collapseDeadends()
	b.canonicalizeWalls()
	live := b.findDeadCells()

	cells := buildCells(b, live)

	numBoxes, numGoals := 0, 0
	for _, c := range cells {
		if c.Goal {
			numGoals++
		}
		if b.box[c.X+c.Y*env.Width] {
			numBoxes++
		}
	}
	if numBoxes == 0 {
		return nil, &InvalidLevelError{Reason: ErrNoBoxes.Error(), X: -1, Y: -1}
	}
	if numBoxes != numGoals {
		return nil, &InvalidLevelError{Reason: ErrBoxGoalCount.Error(), X: -1, Y: -1}
	}

	numAlive := 0
	for _, c := range cells {
		if c.Alive {
			numAlive++
		}
	}

	level := &Level{
		Width:    env.Width,
		Height:   env.Height,
		buffer:   append([]byte(nil), b.cell...),
		Cells:    cells,
		NumGoals: numGoals,
		NumAlive: numAlive,
		NumBoxes: numBoxes,
	}

	computePushDistances(level.Cells, level.NumGoals, level.NumAlive)

	agentID := -1
	for i, c := range cells {
		if c.X+c.Y*env.Width == b.agent {
			agentID = i
			break
		}
	}
	if agentID < 0 {
		return nil, &InvalidLevelError{Reason: "agent cell not present in compiled level", X: -1, Y: -1}
	}

	startBoxes := boxes.New(numAlive)
	for i := 0; i < numAlive; i++ {
		c := &cells[i]
		if b.box[c.X+c.Y*env.Width] {
			startBoxes.Set(c.ID)
		}
	}
	if agentID < numAlive && startBoxes.Get(agentID) {
		return nil, &InvalidLevelError{Reason: ErrAgentOnBox.Error(), X: -1, Y: -1}
	}

	level.Start = boxes.State{Agent: agentID, Boxes: startBoxes}

	return level, nil
}
