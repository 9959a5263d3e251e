package main

import (
	"fmt"
	"os"

	"github.com/Mshel/snakeduel/internal/config"
	"github.com/Mshel/snakeduel/internal/game"
	"github.com/Mshel/snakeduel/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)

	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "snakeduel")
		if err != nil {
			fmt.Printf("error %v", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.ErrorLevel)
	}

	newAgentStrategy, err := cfg.AgentStrategyFactory()
	if err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}

	history, err := game.NewRoundHistory("")
	if err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
	defer history.Close()

	model := ui.NewControllerModel(ui.GameOptions{
		Difficulty:       cfg.Difficulty,
		Intervals:        cfg.Intervals,
		History:          history,
		NewAgentStrategy: newAgentStrategy,
	}, 0, 0)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
