package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// FrameMsg carries the state after a tick or command.
type FrameMsg struct {
	Snapshot Snapshot
}

// EngineStoppedMsg is returned to listeners once the loop has exited.
type EngineStoppedMsg struct{}

// Engine hosts a Session on a single goroutine: commands and scheduled ticks are
// handled one at a time, so a tick always runs to completion before the next input.
type Engine struct {
	CommandChannel chan Command
	UpdateChannel  chan tea.Msg

	session   *Session
	due       chan func()
	timer     *time.Timer
	done      chan struct{}
	closeOnce sync.Once
	isRunning atomic.Bool
}

func NewEngine(cfg SessionConfig) *Engine {
	engine := &Engine{
		CommandChannel: make(chan Command, 16),
		UpdateChannel:  make(chan tea.Msg, 1),
		due:            make(chan func(), 1),
		done:           make(chan struct{}),
	}
	cfg.Scheduler = engine
	engine.session = NewSession(cfg)
	return engine
}

// ScheduleAfter arms the loop's single timer. Only the loop goroutine calls it.
func (e *Engine) ScheduleAfter(d time.Duration, fn func()) {
	if e.timer != nil {
		e.timer.Stop()
	}
	done := e.done
	e.timer = time.AfterFunc(d, func() {
		select {
		case e.due <- fn:
		case <-done:
		}
	})
}

// Send queues a command for the loop. It gives up once the loop has stopped.
func (e *Engine) Send(cmd Command) {
	select {
	case e.CommandChannel <- cmd:
	case <-e.done:
	}
}

func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// Run starts the first round and processes ticks and commands until ctx is cancelled.
func (e *Engine) Run(ctx context.Context) {
	if !e.isRunning.CompareAndSwap(false, true) {
		return
	}
	defer e.stop()

	log.Debug("Game loop started.", "player", e.session.cfg.PlayerName)
	e.session.Start()
	e.publish()

	for {
		select {
		case <-ctx.Done():
			log.Debug("Game loop stopped.", "player", e.session.cfg.PlayerName)
			return
		case cmd := <-e.CommandChannel:
			e.session.ApplyCommand(cmd)
			e.publish()
		case fn := <-e.due:
			fn()
			e.publish()
		}
	}
}

func (e *Engine) stop() {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.closeOnce.Do(func() { close(e.done) })
}

// publish replaces any unread frame with the latest one.
func (e *Engine) publish() {
	frame := FrameMsg{Snapshot: e.session.Snapshot()}
	select {
	case e.UpdateChannel <- frame:
		return
	default:
	}
	select {
	case <-e.UpdateChannel:
	default:
	}
	select {
	case e.UpdateChannel <- frame:
	default:
	}
}
