package game

// Board is the fixed playfield; the interior is [0, Width) x [0, Height).
type Board struct {
	Width  int
	Height int
}

// BoardFromBounds derives the grid size from pixel bounds and a cell size.
func BoardFromBounds(left, top, right, bottom, cellSize int) Board {
	if cellSize <= 0 {
		return Board{}
	}
	return Board{
		Width:  (right - left) / cellSize,
		Height: (bottom - top) / cellSize,
	}
}

func (b Board) Contains(c Cell) bool {
	return c.Col >= 0 && c.Col < b.Width && c.Row >= 0 && c.Row < b.Height
}

func (b Board) Center() Cell {
	return Cell{Col: b.Width / 2, Row: b.Height / 2}
}

func (b Board) IsLeftEdge(c Cell) bool   { return c.Col == 0 }
func (b Board) IsRightEdge(c Cell) bool  { return c.Col == b.Width-1 }
func (b Board) IsTopEdge(c Cell) bool    { return c.Row == 0 }
func (b Board) IsBottomEdge(c Cell) bool { return c.Row == b.Height-1 }

// RandSource is satisfied by *rand.Rand.
type RandSource interface {
	Intn(n int) int
}

// PelletSpawner samples pellet cells uniformly over the whole interior,
// occupied cells included.
type PelletSpawner struct {
	board Board
	rng   RandSource
}

func NewPelletSpawner(board Board, rng RandSource) *PelletSpawner {
	return &PelletSpawner{board: board, rng: rng}
}

func (s *PelletSpawner) Spawn() Cell {
	return Cell{
		Col: s.rng.Intn(s.board.Width),
		Row: s.rng.Intn(s.board.Height),
	}
}
