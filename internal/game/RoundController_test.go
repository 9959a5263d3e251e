package game

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestRound(t *testing.T, cfg RoundConfig) (*RoundController, *recordingCanvas) {
	t.Helper()
	canvas := newRecordingCanvas()
	if cfg.Board == (Board{}) {
		cfg.Board = testBoard
	}
	cfg.Canvas = canvas
	return NewRoundController(cfg), canvas
}

func TestRoundFirstTickEatsPellet(t *testing.T) {
	rng := &scriptedRand{values: []int{12, 11, 3, 4}}
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart:   Cell{Col: 11, Row: 11},
		HumanHeading: Right,
		AgentStart:   Cell{Col: 0, Row: 0},
		Rand:         rng,
	})
	if rc.Pellet() != (Cell{Col: 12, Row: 11}) {
		t.Fatalf("pellet = %v", rc.Pellet())
	}

	report := rc.Tick()

	if !report.Human.Ate || !report.Respawned {
		t.Fatalf("report = %+v, want growth and respawn", report)
	}
	if rc.Human().Len() != 2 {
		t.Errorf("human length = %d, want 2", rc.Human().Len())
	}
	if rc.Pellet() == (Cell{Col: 12, Row: 11}) {
		t.Error("pellet was not re-sampled")
	}
	if rc.State() != Running {
		t.Errorf("state = %v, want running", rc.State())
	}
	if n := canvas.count("pellet", ""); n != 1 {
		t.Errorf("%d pellets drawn, want 1", n)
	}
	if n := canvas.count("segment", HumanColor); n != 2 {
		t.Errorf("%d human segments drawn, want 2", n)
	}
}

func TestRoundHumanIntoAgentBodyEndsRound(t *testing.T) {
	rc, _ := newTestRound(t, RoundConfig{
		HumanStart:    Cell{Col: 5, Row: 5},
		HumanHeading:  Right,
		AgentStart:    Cell{Col: 6, Row: 3},
		AgentHeading:  Up,
		AgentStrategy: holdStrategy{},
		Rand:          &scriptedRand{values: []int{19, 19}},
	})
	rc.agent.segments = []Cell{{Col: 6, Row: 3}, {Col: 6, Row: 4}, {Col: 6, Row: 5}, {Col: 6, Row: 6}}

	report := rc.Tick()

	if report.State != Ended || rc.State() != Ended {
		t.Fatalf("state = %v, want ended", report.State)
	}
	if rc.Human().Alive() || rc.Agent().Alive() {
		t.Error("both entities should be flagged collided")
	}
	if rc.Human().Collision() != OpponentCollision || rc.Agent().Collision() != OpponentCollision {
		t.Errorf("collisions = %v/%v", rc.Human().Collision(), rc.Agent().Collision())
	}
	if rc.Outcome().Cause != OpponentCollision || rc.Outcome().Score != 1 {
		t.Errorf("outcome = %+v", rc.Outcome())
	}
}

func TestRoundWallEndsRoundWithScoreText(t *testing.T) {
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart:   Cell{Col: TestBoardWidth - 1, Row: 5},
		HumanHeading: Right,
		AgentStart:   Cell{Col: 0, Row: 10},
		Rand:         &scriptedRand{values: []int{3, 15}},
	})

	rc.Tick()

	if rc.State() != Ended || rc.Outcome().Cause != WallCollision {
		t.Fatalf("state=%v outcome=%+v", rc.State(), rc.Outcome())
	}
	texts := canvas.texts()
	if len(texts) != 1 || texts[0] != "You Lose! Score= 1" {
		t.Errorf("texts = %q", texts)
	}

	ticks := rc.Ticks()
	rc.Tick()
	if rc.Ticks() != ticks {
		t.Error("ended round kept ticking")
	}
}

func TestRoundAgentDeathIsCosmetic(t *testing.T) {
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart:    Cell{Col: 10, Row: 10},
		HumanHeading:  Down,
		AgentStart:    Cell{Col: 0, Row: 0},
		AgentHeading:  Up,
		AgentStrategy: holdStrategy{},
		Rand:          &scriptedRand{values: []int{15, 2}},
	})

	rc.Tick()

	if rc.Agent().Alive() {
		t.Fatal("agent should have hit the top wall")
	}
	if rc.State() != Running {
		t.Fatalf("agent death ended the round: %v", rc.State())
	}
	if n := canvas.count("segment", AgentColor); n != 0 {
		t.Errorf("%d agent segments still drawn", n)
	}

	head := rc.Agent().Head()
	rc.Tick()
	if rc.Agent().Head() != head {
		t.Error("dead agent kept moving")
	}
}

func TestRoundDeadAgentBodyIsPassable(t *testing.T) {
	rc, _ := newTestRound(t, RoundConfig{
		HumanStart:    Cell{Col: 5, Row: 1},
		HumanHeading:  Up,
		AgentStart:    Cell{Col: 5, Row: 0},
		AgentHeading:  Up,
		AgentStrategy: holdStrategy{},
		Rand:          &scriptedRand{values: []int{15, 15}},
	})
	rc.human.SetHeading(Left)

	rc.Tick() // agent hits the wall, human steps to (4,1)
	rc.Steer(Up)
	rc.Tick() // human to (4,0)
	rc.Steer(Right)
	rc.Tick() // human onto the dead agent at (5,0)

	if rc.State() != Running {
		t.Fatalf("human collided with a dead agent: %+v", rc.Outcome())
	}
	if rc.Human().Head() != (Cell{Col: 5, Row: 0}) {
		t.Errorf("human head = %v", rc.Human().Head())
	}
}

func TestRoundSharedPelletRespawnsOnce(t *testing.T) {
	rng := &scriptedRand{values: []int{5, 5, 17, 17}}
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart:    Cell{Col: 4, Row: 5},
		HumanHeading:  Right,
		AgentStart:    Cell{Col: 6, Row: 5},
		AgentHeading:  Left,
		AgentStrategy: holdStrategy{},
		Rand:          rng,
	})

	report := rc.Tick()

	if !report.Human.Ate || !report.Agent.Ate {
		t.Fatalf("report = %+v, want both entities eating", report)
	}
	if rng.calls != 4 {
		t.Errorf("spawner drew %d values, want 4 (two spawns)", rng.calls)
	}
	if rc.Pellet() != (Cell{Col: 17, Row: 17}) {
		t.Errorf("pellet = %v", rc.Pellet())
	}
	if n := canvas.count("pellet", ""); n != 1 {
		t.Errorf("%d pellets drawn", n)
	}
	if rc.State() != Ended || rc.Outcome().Cause != OpponentCollision {
		t.Errorf("head-on meeting should end the round: %v %+v", rc.State(), rc.Outcome())
	}
}

func TestRoundPauseStopsTicks(t *testing.T) {
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart: Cell{Col: 10, Row: 10},
		AgentStart: Cell{Col: 0, Row: 19},
		Rand:       &scriptedRand{values: []int{1, 1}},
	})

	if rc.TogglePause() {
		t.Fatal("TogglePause reported running after pausing")
	}
	if texts := canvas.texts(); len(texts) != 1 || !strings.HasPrefix(texts[0], "PAUSED") {
		t.Errorf("texts = %q", texts)
	}

	report := rc.Tick()
	if report.State != Paused || rc.Ticks() != 0 {
		t.Fatalf("paused round ticked: %+v", report)
	}

	if !rc.TogglePause() {
		t.Fatal("TogglePause did not resume")
	}
	if len(canvas.texts()) != 0 {
		t.Error("pause label left on canvas")
	}
	rc.Tick()
	if rc.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", rc.Ticks())
	}
}

func TestRoundSteerIgnoresReversal(t *testing.T) {
	rc, _ := newTestRound(t, RoundConfig{
		HumanStart:   Cell{Col: 10, Row: 10},
		HumanHeading: Right,
		AgentStart:   Cell{Col: 0, Row: 19},
		Rand:         &scriptedRand{values: []int{1, 1}},
	})

	rc.Steer(Left)
	if rc.Human().Heading() != Right {
		t.Errorf("heading = %v, want right", rc.Human().Heading())
	}
	rc.Steer(Up)
	rc.Tick()
	if rc.Human().Head() != (Cell{Col: 10, Row: 9}) {
		t.Errorf("head = %v", rc.Human().Head())
	}
}

func TestRoundCanvasMirrorsBodies(t *testing.T) {
	rc, canvas := newTestRound(t, RoundConfig{
		HumanStart: Cell{Col: 10, Row: 10},
		AgentStart: Cell{Col: 0, Row: 0},
		Rand:       rand.New(rand.NewSource(3)),
	})
	turns := rand.New(rand.NewSource(11))

	for i := 0; i < 300 && rc.State() == Running; i++ {
		humanBefore, agentBefore := rc.Human().Len(), rc.Agent().Len()
		rc.Steer(Headings[turns.Intn(len(Headings))])
		rc.Tick()

		for name, delta := range map[string]int{
			"human": rc.Human().Len() - humanBefore,
			"agent": rc.Agent().Len() - agentBefore,
		} {
			if delta != 0 && delta != 1 {
				t.Fatalf("tick %d: %s length changed by %d", i, name, delta)
			}
		}
		if rc.State() == Running {
			if n := canvas.count("segment", HumanColor); n != rc.Human().Len() {
				t.Fatalf("tick %d: %d human segments drawn for length %d", i, n, rc.Human().Len())
			}
			if rc.Agent().Alive() {
				if n := canvas.count("segment", AgentColor); n != rc.Agent().Len() {
					t.Fatalf("tick %d: %d agent segments drawn for length %d", i, n, rc.Agent().Len())
				}
			}
		}
		if n := canvas.count("pellet", ""); n != 1 {
			t.Fatalf("tick %d: %d pellets", i, n)
		}
	}
}

func TestRoundSnapshot(t *testing.T) {
	rc, _ := newTestRound(t, RoundConfig{
		HumanStart: Cell{Col: 10, Row: 10},
		AgentStart: Cell{Col: 0, Row: 0},
		Difficulty: Fast,
		Rand:       &scriptedRand{values: []int{7, 7}},
	})
	rc.Tick()

	snapshot := rc.Snapshot()
	if snapshot.RoundID != rc.ID || snapshot.Ticks != 1 || snapshot.Difficulty != Fast {
		t.Errorf("snapshot = %+v", snapshot)
	}
	if snapshot.Human.Segments[0] != rc.Human().Head() {
		t.Error("snapshot head mismatch")
	}

	snapshot.Human.Segments[0] = Cell{Col: -5, Row: -5}
	if rc.Human().Head() == (Cell{Col: -5, Row: -5}) {
		t.Error("snapshot shares memory with the round")
	}
}
