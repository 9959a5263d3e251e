package game

import "github.com/google/uuid"

type EntitySnapshot struct {
	Segments  []Cell
	Heading   Heading
	Alive     bool
	Collision Collision
}

// Snapshot is a copy of a round that renderers can hold on to.
type Snapshot struct {
	RoundID    uuid.UUID
	PlayerName string
	State      RoundState
	Difficulty Difficulty
	Ticks      int
	Board      Board
	Pellet     Cell
	Human      EntitySnapshot
	Agent      EntitySnapshot
	Outcome    Outcome
	Score      int
	BestScore  int
}

func snapshotEntity(e *Entity) EntitySnapshot {
	return EntitySnapshot{
		Segments:  e.Segments(),
		Heading:   e.Heading(),
		Alive:     e.Alive(),
		Collision: e.Collision(),
	}
}

func (rc *RoundController) Snapshot() Snapshot {
	return Snapshot{
		RoundID:    rc.ID,
		State:      rc.state,
		Difficulty: rc.Difficulty,
		Ticks:      rc.ticks,
		Board:      rc.board,
		Pellet:     rc.pellet,
		Human:      snapshotEntity(rc.human),
		Agent:      snapshotEntity(rc.agent),
		Outcome:    rc.outcome,
		Score:      rc.Score(),
	}
}
