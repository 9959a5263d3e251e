package ui

import (
	"strings"

	"github.com/Mshel/snakeduel/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type introItem struct {
	label  string
	submit IntroSubmitMsg
}

var introItems = []introItem{
	{label: "Start", submit: 0},
	{label: "Quit", submit: 1},
}

// IntroModel is the title screen: a menu plus the difficulty the setup form will start on.
type IntroModel struct {
	cursor     int
	difficulty game.Difficulty
	width      int
	height     int
}

func NewIntroModel(difficulty game.Difficulty, w, h int) IntroModel {
	return IntroModel{difficulty: difficulty, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "shift+tab":
			m.cursor = (m.cursor - 1 + len(introItems)) % len(introItems)
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(introItems)
		case "enter", " ":
			submit := introItems[m.cursor].submit
			return m, func() tea.Msg { return submit }
		}
	}
	return m, nil
}

const introTitle = `
 ███████ ███    ██  █████  ██   ██ ███████     ██████  ██    ██ ███████ ██
 ██      ████   ██ ██   ██ ██  ██  ██          ██   ██ ██    ██ ██      ██
 ███████ ██ ██  ██ ███████ █████   █████       ██   ██ ██    ██ █████   ██
      ██ ██  ██ ██ ██   ██ ██  ██  ██          ██   ██ ██    ██ ██      ██
 ███████ ██   ████ ██   ██ ██   ██ ███████     ██████   ██████  ███████ ███████`

var (
	introHumanStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(string(game.HumanColor)))
	introAgentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(string(game.AgentColor)))
	introPelletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(string(game.PelletColor))).Bold(true)

	introItemStyle     = lipgloss.NewStyle().Padding(0, 3).Foreground(lipgloss.Color("245"))
	introSelectedStyle = introItemStyle.
				Background(lipgloss.Color(string(game.HumanColor))).
				Foreground(lipgloss.Color("0")).
				Bold(true)
	introMenuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Margin(1, 0)
)

// introDuel is a one-line picture of the game: the player and the agent racing for a pellet.
func introDuel() string {
	return introHumanStyle.Render(strings.Repeat("██", 6)+"▶") +
		strings.Repeat(" ", 10) + introPelletStyle.Render(pelletRune) + strings.Repeat(" ", 10) +
		introAgentStyle.Render("◀"+strings.Repeat("██", 4))
}

func (m IntroModel) View() string {
	items := make([]string, 0, len(introItems))
	for i, item := range introItems {
		if i == m.cursor {
			items = append(items, introSelectedStyle.Render(item.label))
		} else {
			items = append(items, introItemStyle.Render(item.label))
		}
	}
	menu := introMenuStyle.Render(lipgloss.JoinVertical(lipgloss.Center, items...))

	hint := helpStyle.Render("difficulty " + m.difficulty.String() + " · up/down to choose · enter to confirm · q to quit")

	content := lipgloss.JoinVertical(lipgloss.Center,
		introHumanStyle.Render(introTitle),
		"",
		introDuel(),
		menu,
		hint,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
