package cellgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for level compilation.
var (
	ErrNoBoxes          = errors.New("cellgraph: level has no boxes")
	ErrBoxGoalCount     = errors.New("cellgraph: number of boxes does not equal number of goals")
	ErrAgentOnBox        = errors.New("cellgraph: agent starts on a box")
)

// InvalidLevelError reports an InvalidLevel failure with enough detail to
// say which check failed and at what coordinate, since a bare sentinel
// would lose that diagnosis. Mirrors flow.EdgeError's precedent for a
// value-carrying error over a plain sentinel.
type InvalidLevelError struct {
	Reason string
	X, Y   int // -1, -1 when not coordinate-specific
}

func (e *InvalidLevelError) Error() string {
	if e.X < 0 && e.Y < 0 {
		return "cellgraph: invalid level: " + e.Reason
	}

	return fmt.Sprintf("cellgraph: invalid level: %s at (%d,%d)", e.Reason, e.X, e.Y)
}
