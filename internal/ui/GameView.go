package ui

import (
	"fmt"
	"strings"

	"github.com/Mshel/snakeduel/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

var (
	voidColor    = "233"
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 0)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	headRunes = map[game.Heading]rune{
		game.Up:    '▲',
		game.Down:  '▼',
		game.Left:  '◀',
		game.Right: '▶',
	}
)

const statusPanelWidth = 36

// GameViewModel renders one engine. It never touches the session directly: it reads
// snapshots off the update channel and sends commands back.
type GameViewModel struct {
	ScreenWidth  int
	ScreenHeight int

	engine   *game.Engine
	canvas   *TerminalCanvas
	history  *game.RoundHistory
	snapshot game.Snapshot
	hasFrame bool

	gameState     GameState
	gameOverState GameOverState
}

func NewGameModel(engine *game.Engine, canvas *TerminalCanvas, history *game.RoundHistory, screenWidth int, screenHeight int) GameViewModel {
	return GameViewModel{
		engine:       engine,
		canvas:       canvas,
		history:      history,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameState:    StatePlaying,
	}
}

func (m GameViewModel) Init() tea.Cmd {
	return m.listenForGameUpdates()
}

// keyToCommand maps a key press to an engine command.
func keyToCommand(key string) (game.Command, bool) {
	switch key {
	case "w", "up":
		return game.DirectionCommand{Heading: game.Up}, true
	case "s", "down":
		return game.DirectionCommand{Heading: game.Down}, true
	case "a", "left":
		return game.DirectionCommand{Heading: game.Left}, true
	case "d", "right":
		return game.DirectionCommand{Heading: game.Right}, true
	case " ", "space", "p":
		return game.PauseToggle{}, true
	case "r":
		return game.Reset{}, true
	case "1":
		return game.SetDifficulty{Level: game.Slow}, true
	case "2":
		return game.SetDifficulty{Level: game.Medium}, true
	case "3":
		return game.SetDifficulty{Level: game.Fast}, true
	}
	return nil, false
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.gameState == StateGameOver {
			switch msg.String() {
			case "left", "h":
				m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
				return m, nil
			case "right", "l":
				m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
				return m, nil
			case "enter":
				if m.gameOverState.SelectedButton == 0 {
					m.engine.Send(game.Reset{})
					return m, nil
				}
				return m, func() tea.Msg { return QuitGameMsg{} }
			}
		}

		if cmd, ok := keyToCommand(msg.String()); ok {
			m.engine.Send(cmd)
		}
		return m, nil

	case game.FrameMsg:
		m.applyFrame(msg.Snapshot)
		return m, m.listenForGameUpdates()

	case game.EngineStoppedMsg:
		return m, func() tea.Msg { return QuitGameMsg{} }
	}

	return m, nil
}

func (m *GameViewModel) applyFrame(snapshot game.Snapshot) {
	m.snapshot = snapshot
	m.hasFrame = true

	if snapshot.State != game.Ended {
		m.gameState = StatePlaying
		return
	}
	if m.gameState == StateGameOver && m.gameOverState.RoundID == snapshot.RoundID {
		return
	}

	m.gameState = StateGameOver
	m.gameOverState = GameOverState{
		RoundID:    snapshot.RoundID,
		PlayerName: snapshot.PlayerName,
		Score:      snapshot.Outcome.Score,
		Cause:      snapshot.Outcome.Cause,
		Ticks:      snapshot.Ticks,
		BestScore:  snapshot.BestScore,
	}
	if m.history != nil {
		recent, err := m.history.Recent(recentRoundsShown)
		if err != nil {
			log.Warn("could not load recent rounds", "error", err)
		}
		m.gameOverState.Recent = recent
	}
}

func (m GameViewModel) View() string {
	if !m.hasFrame {
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, "Waiting for game engine...")
	}

	board := mapViewStyle.Render(m.canvas.Render())

	var panel string
	if m.gameState == StateGameOver {
		panel = m.gameOverState.Render()
	} else {
		panel = m.renderStatusPanel()
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		board,
		statusPanelStyle.Width(statusPanelWidth).Render(panel),
	)
	return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center, content)
}

func (m GameViewModel) renderStatusPanel() string {
	s := m.snapshot
	var statusContent strings.Builder

	humanStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(game.HumanColor)))
	agentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(string(game.AgentColor)))

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Round ---") + "\n")
	statusContent.WriteString(fmt.Sprintf("%s%s\n", humanStyle.Render("● "), s.PlayerName))
	statusContent.WriteString(fmt.Sprintf("Score: %d\n", s.Score))
	statusContent.WriteString(fmt.Sprintf("Best: %d\n", s.BestScore))
	statusContent.WriteString(fmt.Sprintf("Heading: %c\n", headRunes[s.Human.Heading]))
	statusContent.WriteString(fmt.Sprintf("Difficulty: %s\n", s.Difficulty))
	statusContent.WriteString(fmt.Sprintf("Ticks: %d\n", s.Ticks))
	if s.State == game.Paused {
		statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render(game.PausedText) + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Agent ---") + "\n")
	agentStatus := "hunting"
	if !s.Agent.Alive {
		agentStatus = "crashed (" + s.Agent.Collision.String() + ")"
	}
	statusContent.WriteString(fmt.Sprintf("%s%s\n", agentStyle.Render("● "), agentStatus))
	statusContent.WriteString(fmt.Sprintf("Length: %d\n", len(s.Agent.Segments)))

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("WASD / Arrows: Move\n")
	statusContent.WriteString("Space: Pause\n")
	statusContent.WriteString("R: Restart\n")
	statusContent.WriteString("1 / 2 / 3: Slow / Medium / Fast\n")
	statusContent.WriteString("Q / Ctrl+C: Quit Game\n")

	return statusContent.String()
}

// listenForGameUpdates waits for the next frame. A stopped engine ends the wait.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		select {
		case msg := <-engine.UpdateChannel:
			return msg
		case <-engine.Done():
			return game.EngineStoppedMsg{}
		}
	}
}
