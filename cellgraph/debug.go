package cellgraph

import "strings"

// String renders the level with the initial state overlaid, for debugging
// only: @ agent, $ box, * box-on-goal, . goal, # wall, space otherwise.
func (l *Level) String() string {
	display := append([]byte(nil), l.buffer...)
	for i := range display {
		if display[i] == symOutside {
			display[i] = symSpace
		}
	}

	cellAt := func(x, y int) (Cell, bool) {
		xy := x + y*l.Width
		for _, c := range l.Cells {
			if c.X+c.Y*l.Width == xy {
				return c, true
			}
		}

		return Cell{}, false
	}

	var sb strings.Builder
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			xy := x + y*l.Width
			c, ok := cellAt(x, y)
			switch {
			case ok && c.ID == l.Start.Agent:
				sb.WriteByte('@')
			case ok && l.Start.Boxes.Get(c.ID) && c.Goal:
				sb.WriteByte('*')
			case ok && l.Start.Boxes.Get(c.ID):
				sb.WriteByte('$')
			case ok && c.Goal:
				sb.WriteByte('.')
			default:
				sb.WriteByte(display[xy])
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
