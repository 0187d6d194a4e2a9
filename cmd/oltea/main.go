package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/shhac/oltea/internal/config"
	"github.com/shhac/oltea/internal/demo"
	"github.com/shhac/oltea/internal/librarian"
	"github.com/shhac/oltea/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	demoMode := flag.Bool("demo", false, "run against a seeded in-memory queue")
	flag.Parse()

	if *showVersion {
		fmt.Printf("oltea %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var service ui.RequestService
	if *demoMode {
		service = demo.NewService()
	} else {
		service = librarian.NewClient(cfg.BaseURL, cfg.Username, cfg.SessionToken)
	}

	p := tea.NewProgram(ui.NewApp(service, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
