package game

import (
	"time"

	"github.com/Mshel/snakeduel/internal/metrics"
	"github.com/charmbracelet/log"
)

// Scheduler runs fn once after d. The core never owns a thread; it asks to be called back.
type Scheduler interface {
	ScheduleAfter(d time.Duration, fn func())
}

type SessionConfig struct {
	PlayerName string
	Difficulty Difficulty
	Intervals  Intervals

	// Round supplies board geometry, start cells, randomness, canvas and agent strategy.
	// Interval and Difficulty are filled in by the session.
	Round RoundConfig

	// History is optional.
	History   *RoundHistory
	Scheduler Scheduler
}

// Session turns commands into rounds. Reset and difficulty changes replace the round
// wholesale; ticks armed for a replaced round are dropped through the tick generation.
type Session struct {
	cfg        SessionConfig
	round      *RoundController
	difficulty Difficulty
	generation uint64
	bestScore  int
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Intervals == nil {
		cfg.Intervals = DefaultIntervals()
	}
	if cfg.Round.Board == (Board{}) {
		round := DefaultRoundConfig()
		round.Rand = cfg.Round.Rand
		round.Canvas = cfg.Round.Canvas
		round.AgentStrategy = cfg.Round.AgentStrategy
		cfg.Round = round
	}
	return &Session{
		cfg:        cfg,
		difficulty: cfg.Difficulty,
	}
}

func (s *Session) Round() *RoundController { return s.round }
func (s *Session) Difficulty() Difficulty  { return s.difficulty }
func (s *Session) BestScore() int          { return s.bestScore }

// Start creates the first round and arms its first tick.
func (s *Session) Start() {
	s.newRound()
	s.schedule(s.round.Interval)
}

// ApplyCommand handles one input synchronously. It never runs a tick except on resume.
func (s *Session) ApplyCommand(cmd Command) {
	if s.round == nil {
		return
	}

	switch cmd := cmd.(type) {
	case DirectionCommand:
		s.round.Steer(cmd.Heading)

	case PauseToggle:
		if s.round.State() == Ended {
			return
		}
		if s.round.TogglePause() {
			log.Debug("Round resumed", "round", s.round.ID)
			s.tickNow()
		} else {
			log.Debug("Round paused", "round", s.round.ID)
		}

	case Reset:
		log.Info("Round reset", "round", s.round.ID, "state", s.round.State())
		s.Start()

	case SetDifficulty:
		log.Info("Difficulty changed", "from", s.difficulty, "to", cmd.Level)
		s.difficulty = cmd.Level
		s.Start()
	}
}

func (s *Session) Snapshot() Snapshot {
	if s.round == nil {
		return Snapshot{PlayerName: s.cfg.PlayerName, Difficulty: s.difficulty, BestScore: s.bestScore}
	}
	snapshot := s.round.Snapshot()
	snapshot.PlayerName = s.cfg.PlayerName
	snapshot.BestScore = s.bestScore
	return snapshot
}

func (s *Session) newRound() {
	roundCfg := s.cfg.Round
	roundCfg.Difficulty = s.difficulty
	roundCfg.Interval = s.cfg.Intervals.For(s.difficulty)

	s.round = NewRoundController(roundCfg)
	metrics.RoundStarted()
	log.Info("Round started", "round", s.round.ID, "player", s.cfg.PlayerName,
		"difficulty", s.difficulty, "interval", s.round.Interval, "agent", s.round.Agent().Strategy.Name())
}

func (s *Session) schedule(delay time.Duration) {
	s.generation++
	generation := s.generation
	s.cfg.Scheduler.ScheduleAfter(delay, func() { s.advance(generation) })
}

func (s *Session) tickNow() {
	s.generation++
	s.advance(s.generation)
}

func (s *Session) advance(generation uint64) {
	if generation != s.generation {
		return
	}

	rc := s.round
	tickStart := time.Now()
	report := rc.Tick()
	metrics.ObserveTick(time.Since(tickStart))

	if report.Human.Ate {
		metrics.PelletEaten(rc.Human().Name)
	}
	if report.Agent.Ate {
		metrics.PelletEaten(rc.Agent().Name)
	}

	switch report.State {
	case Running:
		s.schedule(rc.Interval)
	case Ended:
		s.finish(rc)
	}
}

func (s *Session) finish(rc *RoundController) {
	outcome := rc.Outcome()
	s.bestScore = max(s.bestScore, outcome.Score)
	metrics.RoundEnded(outcome.Cause.String(), outcome.Score)
	log.Info("Round ended", "round", rc.ID, "player", s.cfg.PlayerName,
		"cause", outcome.Cause, "score", outcome.Score, "ticks", rc.Ticks())

	if s.cfg.History == nil {
		return
	}
	err := s.cfg.History.Record(RoundRecord{
		RoundID:    rc.ID.String(),
		PlayerName: s.cfg.PlayerName,
		Difficulty: rc.Difficulty.String(),
		Score:      outcome.Score,
		Cause:      outcome.Cause.String(),
		Ticks:      rc.Ticks(),
	})
	if err != nil {
		log.Error("Round history persist failed", "round", rc.ID, "error", err)
	}
}
