package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Mshel/snakeduel/internal/game"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const recentRoundsShown = 5

// GameOverState holds what the game over panel shows for one finished round.
type GameOverState struct {
	RoundID        uuid.UUID
	PlayerName     string
	Score          int
	Cause          game.Collision
	Ticks          int
	BestScore      int
	Recent         []game.RoundRecord
	SelectedButton int // 0: Play again, 1: Exit
}

var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("7")).
				Padding(0, 2).
				Margin(1, 1, 0, 0).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("4")).
				Foreground(lipgloss.Color("15"))

	gameOverTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("9"))

	leaderboardHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236"))

	leaderboardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

func causeText(c game.Collision) string {
	switch c {
	case game.WallCollision:
		return "hit the wall"
	case game.SelfCollision:
		return "bit yourself"
	case game.OpponentCollision:
		return "collided with the agent"
	}
	return "unknown"
}

// Render draws the result, the recent rounds table and the buttons.
func (g GameOverState) Render() string {
	var sb strings.Builder

	sb.WriteString(gameOverTitleStyle.Render("G A M E   O V E R") + "\n\n")
	sb.WriteString(fmt.Sprintf("You %s.\n", causeText(g.Cause)))
	sb.WriteString(fmt.Sprintf("Score: %d\n", g.Score))
	sb.WriteString(fmt.Sprintf("Ticks survived: %d\n", g.Ticks))
	sb.WriteString(fmt.Sprintf("Session best: %d\n", g.BestScore))

	if len(g.Recent) > 0 {
		sb.WriteString("\n" + g.renderRecentRounds() + "\n")
	}

	again := GameOverbuttonStyle.Render("PLAY AGAIN")
	exit := GameOverbuttonStyle.Render("EXIT")
	if g.SelectedButton == 0 {
		again = selectedButtonStyle.Render("PLAY AGAIN")
	} else {
		exit = selectedButtonStyle.Render("EXIT")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, again, exit))

	return sb.String()
}

func (g GameOverState) renderRecentRounds() string {
	nameWidth := 12
	scoreWidth := 6
	causeWidth := 9

	var table strings.Builder
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		leaderboardHeaderStyle.Width(nameWidth).Render("Player"),
		leaderboardHeaderStyle.Width(scoreWidth).Render("Score"),
		leaderboardHeaderStyle.Width(causeWidth).Render("Cause"),
	)
	table.WriteString(header + "\n")

	for _, record := range g.Recent {
		rowStyle := lipgloss.NewStyle()
		if record.RoundID == g.RoundID.String() {
			rowStyle = rowStyle.Foreground(lipgloss.Color(string(game.HumanColor)))
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			rowStyle.Width(nameWidth).MaxWidth(nameWidth).Render(record.PlayerName),
			rowStyle.Width(scoreWidth).Render(strconv.Itoa(record.Score)),
			rowStyle.Width(causeWidth).Render(record.Cause),
		)
		table.WriteString(leaderboardBorderStyle.Render(row) + "\n")
	}

	return lipgloss.NewStyle().Bold(true).Render("Recent rounds") + "\n" + table.String()
}
