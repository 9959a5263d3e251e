package ui

import (
	"context"

	"github.com/Mshel/snakeduel/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
)

// Messages for state transitions
type IntroSubmitMsg int // 0 for Start, 1 for Quit
type SetupSubmitMsg struct {
	Name       string
	Difficulty game.Difficulty
}

// QuitGameMsg asks the controller to stop the engine and leave the program.
type QuitGameMsg struct{}

// GameOptions is what a controller needs to build an engine once the player is set up.
type GameOptions struct {
	// Context bounds every engine the controller starts, e.g. the ssh session's context.
	// Nil means the engine only stops on quit.
	Context context.Context

	Difficulty game.Difficulty
	Intervals  game.Intervals
	History    *game.RoundHistory

	// NewAgentStrategy builds a fresh agent strategy per engine. Nil means greedy.
	NewAgentStrategy func() (game.HeadingStrategy, error)
}

type ControllerModel struct {
	CurrentScreen Screen
	Options       GameOptions

	IntroModel tea.Model
	SetupModel tea.Model
	GameModel  tea.Model

	ScreenWidth  int
	ScreenHeight int

	cancelEngine context.CancelFunc
}

func NewControllerModel(options GameOptions, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Options:       options,

		IntroModel: NewIntroModel(options.Difficulty, screenWidth, screenHeight),
		SetupModel: NewInitialSetupModel(options.Difficulty, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		key := msg.String()
		// q is a valid name character on the setup screen.
		if key == "ctrl+c" || (key == "q" && m.CurrentScreen != SetupScreen) {
			return m.quit()
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SetupModel, _ = m.SetupModel.Update(msg)
		if m.GameModel != nil {
			m.GameModel, _ = m.GameModel.Update(msg)
		}
		return m, nil

	case IntroSubmitMsg:
		if msg == 0 {
			m.CurrentScreen = SetupScreen
			return m, m.SetupModel.Init()
		}
		return m.quit()

	case SetupSubmitMsg:
		engine, canvas, err := m.startEngine(msg)
		if err != nil {
			log.Error("could not start game engine", "player", msg.Name, "error", err)
			return m.quit()
		}
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(engine, canvas, m.Options.History, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case QuitGameMsg:
		return m.quit()

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SetupScreen:
			m.SetupModel, cmd = m.SetupModel.Update(msg)
			cmds = append(cmds, cmd)
		case GameScreen:
			if m.GameModel != nil {
				m.GameModel, cmd = m.GameModel.Update(msg)
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m ControllerModel) quit() (tea.Model, tea.Cmd) {
	if m.cancelEngine != nil {
		m.cancelEngine()
		m.cancelEngine = nil
	}
	return m, tea.Quit
}

// startEngine wires a terminal canvas and the agent strategy into a new engine and
// starts its loop. The strategy is closed once the loop exits.
func (m *ControllerModel) startEngine(setup SetupSubmitMsg) (*game.Engine, *TerminalCanvas, error) {
	var strategy game.HeadingStrategy
	if m.Options.NewAgentStrategy != nil {
		var err error
		strategy, err = m.Options.NewAgentStrategy()
		if err != nil {
			return nil, nil, err
		}
	}

	round := game.DefaultRoundConfig()
	canvas := NewTerminalCanvas(round.Board)
	round.Canvas = canvas
	round.AgentStrategy = strategy

	engine := game.NewEngine(game.SessionConfig{
		PlayerName: setup.Name,
		Difficulty: setup.Difficulty,
		Intervals:  m.Options.Intervals,
		Round:      round,
		History:    m.Options.History,
	})

	parent := m.Options.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	m.cancelEngine = cancel
	go engine.Run(ctx)
	go func() {
		<-engine.Done()
		if closer, ok := strategy.(interface{ Close() }); ok {
			closer.Close()
		}
	}()

	log.Info("game started", "player", setup.Name, "difficulty", setup.Difficulty)
	return engine, canvas, nil
}
