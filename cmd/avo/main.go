package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tgienger/avo/internal/ai"
	"github.com/tgienger/avo/internal/config"
	"github.com/tgienger/avo/internal/logging"
	"github.com/tgienger/avo/internal/repo"
	"github.com/tgienger/avo/internal/store"
	"github.com/tgienger/avo/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("avo %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dataFile := cfg.DataFile
	if dataFile == "" {
		dataFile, err = store.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data path: %v\n", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(dataFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	log := logging.New(filepath.Dir(dataFile), cfg.LogLevel)

	repository := repo.New(st, log)
	gateway := ai.New(cfg.APIKey, cfg.Model, log)

	app := ui.NewApp(repository, gateway)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
