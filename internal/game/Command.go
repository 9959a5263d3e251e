package game

// Command is an input delivered by the host between ticks.
type Command interface {
	isCommand()
}

// DirectionCommand steers the human entity.
type DirectionCommand struct {
	Heading Heading
}

type PauseToggle struct{}

type Reset struct{}

type SetDifficulty struct {
	Level Difficulty
}

func (DirectionCommand) isCommand() {}
func (PauseToggle) isCommand()      {}
func (Reset) isCommand()            {}
func (SetDifficulty) isCommand()    {}
