package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type RoundState int

const (
	Running RoundState = iota
	Paused
	Ended
)

func (s RoundState) String() string {
	switch s {
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	}
	return "running"
}

// Outcome is filled in once the human entity dies.
type Outcome struct {
	Cause Collision
	Score int
}

type RoundConfig struct {
	Board        Board
	Interval     time.Duration
	Difficulty   Difficulty
	HumanStart   Cell
	HumanHeading Heading
	AgentStart   Cell
	AgentHeading Heading

	// AgentStrategy defaults to GreedyFoodStrategy.
	AgentStrategy HeadingStrategy
	Rand          RandSource
	Canvas        Canvas
}

// DefaultRoundConfig is the 20x20 board with the human in the middle and the agent in the corner.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Board:        DefaultBoard,
		Interval:     MediumTickDuration,
		Difficulty:   Medium,
		HumanStart:   DefaultHumanStart,
		HumanHeading: Right,
		AgentStart:   DefaultAgentStart,
		AgentHeading: Right,
	}
}

// TickReport describes what a single Tick did.
type TickReport struct {
	Human     StepResult
	Agent     StepResult
	Respawned bool
	State     RoundState
}

// RoundController owns one round: both entities, the pellet and the round state.
// It is not safe for concurrent use; the host serialises ticks and commands.
type RoundController struct {
	ID         uuid.UUID
	Interval   time.Duration
	Difficulty Difficulty

	board   Board
	human   *Entity
	agent   *Entity
	pellet  Cell
	spawner *PelletSpawner
	state   RoundState
	ticks   int
	outcome Outcome

	canvas       Canvas
	humanHandles []Handle
	agentHandles []Handle
	pelletHandle Handle
	pauseHandle  Handle
}

func NewRoundController(cfg RoundConfig) *RoundController {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Canvas == nil {
		cfg.Canvas = &NopCanvas{}
	}
	if cfg.AgentStrategy == nil {
		cfg.AgentStrategy = defaultStrategy
	}
	if cfg.HumanHeading == (Heading{}) {
		cfg.HumanHeading = Right
	}
	if cfg.AgentHeading == (Heading{}) {
		cfg.AgentHeading = Right
	}

	rc := &RoundController{
		ID:         uuid.New(),
		Interval:   cfg.Interval,
		Difficulty: cfg.Difficulty,
		board:      cfg.Board,
		human:      NewEntity("player", HumanColor, cfg.Board, cfg.HumanStart, cfg.HumanHeading, ManualStrategy{}),
		agent:      NewEntity("enemy", AgentColor, cfg.Board, cfg.AgentStart, cfg.AgentHeading, cfg.AgentStrategy),
		spawner:    NewPelletSpawner(cfg.Board, cfg.Rand),
		state:      Running,
		canvas:     cfg.Canvas,
	}
	rc.pellet = rc.spawner.Spawn()

	rc.canvas.ClearAll()
	rc.humanHandles = []Handle{rc.canvas.DrawSegment(rc.human.Head(), rc.human.Color)}
	rc.agentHandles = []Handle{rc.canvas.DrawSegment(rc.agent.Head(), rc.agent.Color)}
	rc.pelletHandle = rc.canvas.DrawPellet(rc.pellet)

	return rc
}

func (rc *RoundController) Human() *Entity    { return rc.human }
func (rc *RoundController) Agent() *Entity    { return rc.agent }
func (rc *RoundController) Board() Board      { return rc.board }
func (rc *RoundController) Pellet() Cell      { return rc.pellet }
func (rc *RoundController) State() RoundState { return rc.state }
func (rc *RoundController) Ticks() int        { return rc.ticks }
func (rc *RoundController) Outcome() Outcome  { return rc.outcome }

// Score is the human entity's segment count.
func (rc *RoundController) Score() int { return rc.human.Len() }

// Steer applies a direction command to the human entity. Reversals are dropped silently.
func (rc *RoundController) Steer(h Heading) {
	if rc.state == Ended {
		return
	}
	rc.human.SetHeading(h)
}

// TogglePause flips RUNNING and PAUSED. It reports whether the round is now running.
func (rc *RoundController) TogglePause() bool {
	switch rc.state {
	case Running:
		rc.state = Paused
		rc.pauseHandle = rc.canvas.DrawText(rc.board.Center(), PausedText)
	case Paused:
		rc.state = Running
		if rc.pauseHandle != 0 {
			rc.canvas.RemoveText(rc.pauseHandle)
			rc.pauseHandle = 0
		}
	}
	return rc.state == Running
}

// Tick advances the round by one step. It does nothing unless the round is running.
func (rc *RoundController) Tick() TickReport {
	if rc.state != Running {
		return TickReport{State: rc.state}
	}
	rc.ticks++

	pellet := rc.pellet
	agentWasAlive := rc.agent.Alive()

	report := TickReport{}
	report.Human = rc.advance(rc.human, &rc.humanHandles, pellet)
	if agentWasAlive {
		report.Agent = rc.advance(rc.agent, &rc.agentHandles, pellet)
	}

	if report.Human.Ate || report.Agent.Ate {
		rc.respawnPellet()
		report.Respawned = true
	}

	if agentWasAlive && rc.human.Overlaps(rc.agent) {
		rc.human.markCollided(OpponentCollision)
		rc.agent.markCollided(OpponentCollision)
	}

	if !rc.agent.Alive() && len(rc.agentHandles) > 0 {
		for _, handle := range rc.agentHandles {
			rc.canvas.RemoveSegment(handle)
		}
		rc.agentHandles = nil
	}

	if !rc.human.Alive() {
		rc.end()
	}

	report.State = rc.state
	return report
}

// advance lets the entity's strategy steer, then steps it and mirrors the move on the canvas.
func (rc *RoundController) advance(e *Entity, handles *[]Handle, pellet Cell) StepResult {
	e.Strategy.Steer(e, pellet)
	result := e.Step(e.NextHead(), pellet)
	if result.Collision == WallCollision {
		return result
	}

	*handles = append([]Handle{rc.canvas.DrawSegment(e.Head(), e.Color)}, *handles...)
	if !result.Ate {
		last := len(*handles) - 1
		rc.canvas.RemoveSegment((*handles)[last])
		*handles = (*handles)[:last]
	}
	return result
}

func (rc *RoundController) respawnPellet() {
	rc.canvas.RemovePellet(rc.pelletHandle)
	rc.pellet = rc.spawner.Spawn()
	rc.pelletHandle = rc.canvas.DrawPellet(rc.pellet)
}

func (rc *RoundController) end() {
	rc.state = Ended
	rc.outcome = Outcome{
		Cause: rc.human.Collision(),
		Score: rc.human.Len(),
	}
	rc.canvas.DrawText(rc.board.Center(), fmt.Sprintf("You Lose! Score= %d", rc.outcome.Score))
}
