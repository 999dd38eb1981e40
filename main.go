package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/okanerden/lingua/internal/store"
	"github.com/okanerden/lingua/internal/tui"
)

func main() {
	// Optional .env next to the binary can set LINGUA_DATA_DIR.
	_ = godotenv.Load()

	root := os.Getenv("LINGUA_DATA_DIR")
	if root == "" {
		var err error
		root, err = store.DefaultDataDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	s, err := store.New(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening data directory: %v\n", err)
		os.Exit(1)
	}
	if err := s.Startup(); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing profiles: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
