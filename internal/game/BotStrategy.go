package game

// HeadingStrategy chooses an entity's heading right before it steps.
// Any change must go through Entity.SetHeading so reversals stay impossible.
type HeadingStrategy interface {
	Steer(e *Entity, pellet Cell)
	Name() string
}

// ManualStrategy leaves the heading to direction commands.
type ManualStrategy struct{}

func (ManualStrategy) Steer(*Entity, Cell) {}

func (ManualStrategy) Name() string { return "manual" }
