package game

// Collision tags how an entity's round ended.
type Collision int

const (
	NoCollision Collision = iota
	WallCollision
	SelfCollision
	OpponentCollision
)

func (c Collision) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	case OpponentCollision:
		return "opponent"
	}
	return "none"
}

// StepResult is what one movement step produced.
type StepResult struct {
	Collision Collision
	Ate       bool
}

// Entity is a snake body. segments[0] is the head.
type Entity struct {
	Name     string
	Color    Color
	Strategy HeadingStrategy

	bounds    Board
	segments  []Cell
	heading   Heading
	alive     bool
	collision Collision
}

func NewEntity(name string, color Color, bounds Board, start Cell, heading Heading, strategy HeadingStrategy) *Entity {
	if strategy == nil {
		strategy = ManualStrategy{}
	}
	return &Entity{
		Name:     name,
		Color:    color,
		Strategy: strategy,
		bounds:   bounds,
		segments: []Cell{start},
		heading:  heading,
		alive:    true,
	}
}

func (e *Entity) Head() Cell           { return e.segments[0] }
func (e *Entity) Tail() Cell           { return e.segments[len(e.segments)-1] }
func (e *Entity) Len() int             { return len(e.segments) }
func (e *Entity) Heading() Heading     { return e.heading }
func (e *Entity) Alive() bool          { return e.alive }
func (e *Entity) Collision() Collision { return e.collision }
func (e *Entity) Bounds() Board        { return e.bounds }

// Segments returns a copy of the body, head first.
func (e *Entity) Segments() []Cell {
	out := make([]Cell, len(e.segments))
	copy(out, e.segments)
	return out
}

// SetHeading replaces the heading unless h reverses it. It reports whether h was taken.
func (e *Entity) SetHeading(h Heading) bool {
	if h == e.heading.Opposite() {
		return false
	}
	e.heading = h
	return true
}

func (e *Entity) NextHead() Cell {
	return e.Head().Add(e.heading)
}

// Step moves the body so that next becomes the head. Eating the pellet keeps the tail.
func (e *Entity) Step(next Cell, pellet Cell) StepResult {
	if !e.alive {
		return StepResult{Collision: e.collision}
	}

	if !e.bounds.Contains(next) {
		e.markCollided(WallCollision)
		return StepResult{Collision: WallCollision}
	}

	e.segments = append(e.segments, Cell{})
	copy(e.segments[1:], e.segments)
	e.segments[0] = next

	result := StepResult{Ate: next == pellet}
	if !result.Ate {
		e.segments = e.segments[:len(e.segments)-1]
	}

	// index 1 is the old head and always adjacent
	for i := 2; i < len(e.segments); i++ {
		if e.segments[i] == next {
			e.markCollided(SelfCollision)
			result.Collision = SelfCollision
			break
		}
	}

	return result
}

// Occupies reports whether any segment of e sits on c.
func (e *Entity) Occupies(c Cell) bool {
	for _, seg := range e.segments {
		if seg == c {
			return true
		}
	}
	return false
}

// Overlaps reports whether any segment of e equals any segment of other.
func (e *Entity) Overlaps(other *Entity) bool {
	for _, mine := range e.segments {
		if other.Occupies(mine) {
			return true
		}
	}
	return false
}

// markCollided kills the entity; the first cause sticks.
func (e *Entity) markCollided(c Collision) {
	if !e.alive {
		return
	}
	e.alive = false
	e.collision = c
}
