package game

// Cell is a grid position. Col grows to the right, Row grows downwards.
type Cell struct {
	Col int
	Row int
}

// Heading is a unit velocity in grid units.
type Heading struct {
	Dx, Dy int
}

var (
	Up    = Heading{Dx: 0, Dy: -1}
	Down  = Heading{Dx: 0, Dy: 1}
	Left  = Heading{Dx: -1, Dy: 0}
	Right = Heading{Dx: 1, Dy: 0}
)

var Headings = []Heading{Up, Down, Left, Right}

func (h Heading) Opposite() Heading {
	return Heading{Dx: -h.Dx, Dy: -h.Dy}
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "none"
}

// Add moves the cell one step along h.
func (c Cell) Add(h Heading) Cell {
	return Cell{Col: c.Col + h.Dx, Row: c.Row + h.Dy}
}
