package ui

import (
	"strings"

	"github.com/Mshel/snakeduel/internal/game"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	difficultyStyle         = lipgloss.NewStyle().Padding(0, 2)
	selectedDifficultyStyle = difficultyStyle.
				Background(lipgloss.Color(string(game.HumanColor))).
				Foreground(lipgloss.Color("0")).
				Bold(true)

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

const defaultPlayerName = "player"

type SetupModel struct {
	nameInput  textinput.Model
	difficulty game.Difficulty
	focusIndex int // 0: Name, 1: Difficulty, 2: Submit
	submitted  bool
	width      int
	height     int
}

func NewInitialSetupModel(difficulty game.Difficulty, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "Your snake's name"
	ti.Focus()
	ti.CharLimit = 20
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	return SetupModel{
		nameInput:  ti,
		difficulty: difficulty,
		width:      w,
		height:     h,
	}
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// PlayerName is the trimmed input, or a default when left empty.
func (m SetupModel) PlayerName() string {
	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		return defaultPlayerName
	}
	return name
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		if s == "enter" || s == "tab" || s == "shift+tab" {
			switch m.focusIndex {
			case 0:
				switch s {
				case "enter", "tab":
					m.focusIndex = 1
					m.nameInput.Blur()
				case "shift+tab":
					m.focusIndex = 2
					m.nameInput.Blur()
				}

			case 1:
				switch s {
				case "enter", "tab":
					m.focusIndex = 2
				case "shift+tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				}

			case 2:
				switch s {
				case "enter":
					m.submitted = true
					submit := SetupSubmitMsg{Name: m.PlayerName(), Difficulty: m.difficulty}
					return m, func() tea.Msg { return submit }
				case "tab":
					m.focusIndex = 0
					m.nameInput.Focus()
				case "shift+tab":
					m.focusIndex = 1
				}
			}
			return m, nil
		}

		if m.focusIndex == 1 {
			switch s {
			case "left", "h":
				m.difficulty = cycleDifficulty(m.difficulty, -1)
				return m, nil
			case "right", "l":
				m.difficulty = cycleDifficulty(m.difficulty, 1)
				return m, nil
			case "1", "2", "3":
				m.difficulty = game.Difficulties[s[0]-'1']
				return m, nil
			}
		}

		if m.focusIndex == 0 {
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func cycleDifficulty(d game.Difficulty, step int) game.Difficulty {
	n := len(game.Difficulties)
	current := 0
	for i, option := range game.Difficulties {
		if option == d {
			current = i
		}
	}
	return game.Difficulties[((current+step)%n+n)%n]
}

func (m SetupModel) View() string {
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder

	b.WriteString(center(m.nameInput.View()))
	b.WriteString("\n\n")

	prompt := "Select difficulty (use arrows)"
	if m.focusIndex == 1 {
		prompt = focusedStyle.Render(prompt)
	} else {
		prompt = blurredStyle.Render(prompt)
	}
	b.WriteString(center(prompt))
	b.WriteString("\n")

	options := make([]string, 0, len(game.Difficulties))
	for _, d := range game.Difficulties {
		if d == m.difficulty {
			options = append(options, selectedDifficultyStyle.Render(d.String()))
		} else {
			options = append(options, difficultyStyle.Render(d.String()))
		}
	}
	b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, options...)))
	b.WriteString("\n\n")

	submitText := "Play"
	var submitButton string
	if m.focusIndex == 2 {
		submitButton = submitButtonStyle.Render(submitText)
	} else {
		submitButton = blurredButtonStyle.Render(submitText)
	}
	b.WriteString(center(submitButton))
	b.WriteString("\n\n")

	b.WriteString(center(helpStyle.Render("(arrows to pick difficulty, tab/shift+tab to navigate, enter to confirm, ctrl+c to quit)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
