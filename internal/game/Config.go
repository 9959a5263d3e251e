package game

import (
	"strings"
	"time"
)

const (
	// Pixel geometry of the classic playfield: a 600px square inset by 30px, 30px cells.
	BoardLeft     = 30
	BoardTop      = 30
	BoardRight    = 630
	BoardBottom   = 630
	CellPixelSize = 30

	SlowTickDuration   = 200 * time.Millisecond
	MediumTickDuration = 100 * time.Millisecond
	FastTickDuration   = 50 * time.Millisecond

	HumanColor  Color = "34"  // green
	AgentColor  Color = "93"  // purple
	PelletColor Color = "33"  // blue
	TextColor   Color = "252" // light gray

	PausedText = "PAUSED. Press SPACE to Resume"
)

var (
	DefaultBoard = BoardFromBounds(BoardLeft, BoardTop, BoardRight, BoardBottom, CellPixelSize)

	DefaultHumanStart = Cell{Col: 10, Row: 10}
	DefaultAgentStart = Cell{Col: 0, Row: 0}
)

type Difficulty int

const (
	Slow Difficulty = iota
	Medium
	Fast
)

var Difficulties = []Difficulty{Slow, Medium, Fast}

func (d Difficulty) String() string {
	switch d {
	case Slow:
		return "slow"
	case Fast:
		return "fast"
	default:
		return "medium"
	}
}

// ParseDifficulty accepts slow|medium|fast (and easy|hard aliases); anything else is Medium.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "slow", "easy", "1":
		return Slow, true
	case "medium", "normal", "2":
		return Medium, true
	case "fast", "hard", "3":
		return Fast, true
	}
	return Medium, false
}

// Intervals maps each difficulty to the delay between ticks.
type Intervals map[Difficulty]time.Duration

func DefaultIntervals() Intervals {
	return Intervals{
		Slow:   SlowTickDuration,
		Medium: MediumTickDuration,
		Fast:   FastTickDuration,
	}
}

func (iv Intervals) For(d Difficulty) time.Duration {
	if interval, ok := iv[d]; ok && interval > 0 {
		return interval
	}
	return DefaultIntervals()[d]
}
