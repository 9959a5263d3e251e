package game

// GreedyFoodStrategy heads for the pellet, closing the row gap before the column gap,
// and turns away from walls when it is already aligned with the pellet.
// It does not search; it can circle an edge forever.
type GreedyFoodStrategy struct{}

func (s GreedyFoodStrategy) Name() string { return "greedy" }

func (s GreedyFoodStrategy) Steer(e *Entity, pellet Cell) {
	head := e.Head()
	board := e.Bounds()

	// P1: vertical gap first, then horizontal
	if !s.alignVertically(e, head, pellet) {
		s.alignHorizontally(e, head, pellet)
	}

	// P2: on a side column, realign vertically or turn inwards
	if board.IsLeftEdge(head) || board.IsRightEdge(head) {
		if !s.alignVertically(e, head, pellet) {
			if board.IsRightEdge(head) {
				e.SetHeading(Left)
			} else {
				e.SetHeading(Right)
			}
		}
	}

	// P3: on the top or bottom row, realign horizontally or turn inwards
	if board.IsTopEdge(head) || board.IsBottomEdge(head) {
		if !s.alignHorizontally(e, head, pellet) {
			if board.IsBottomEdge(head) {
				e.SetHeading(Up)
			} else {
				e.SetHeading(Down)
			}
		}
	}
}

// alignVertically requests a move towards the pellet row. It reports whether the rows differed.
func (s GreedyFoodStrategy) alignVertically(e *Entity, head, pellet Cell) bool {
	switch {
	case head.Row < pellet.Row:
		e.SetHeading(Down)
	case head.Row > pellet.Row:
		e.SetHeading(Up)
	default:
		return false
	}
	return true
}

func (s GreedyFoodStrategy) alignHorizontally(e *Entity, head, pellet Cell) bool {
	switch {
	case head.Col < pellet.Col:
		e.SetHeading(Right)
	case head.Col > pellet.Col:
		e.SetHeading(Left)
	default:
		return false
	}
	return true
}

var defaultStrategy HeadingStrategy = GreedyFoodStrategy{}
