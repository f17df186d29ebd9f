package main

import (
	"fmt"
	"os"

	"todo_webapp/internal/client"
	"todo_webapp/internal/client/state"
	"todo_webapp/internal/config"
	"todo_webapp/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	cfg := config.LoadClient()

	api := client.New(cfg.APIBaseURL)
	store := state.New(api)

	p := tea.NewProgram(tui.New(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
