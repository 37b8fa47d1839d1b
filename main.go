// universe TUI - a terminal client for the UniVerse forum.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/universeapp/universe-tui/internal/api"
	"github.com/universeapp/universe-tui/internal/cli"
	"github.com/universeapp/universe-tui/internal/config"
	"github.com/universeapp/universe-tui/internal/history"
	"github.com/universeapp/universe-tui/internal/session"
	"github.com/universeapp/universe-tui/internal/store"
	"github.com/universeapp/universe-tui/internal/ui/app"
	"github.com/universeapp/universe-tui/internal/ui/styles"
	"github.com/universeapp/universe-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
	api.SetVersion(Version)
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	switch args.Command {
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
		return
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
		return
	case cli.CmdConfig:
		os.Exit(cli.RunConfig(args))
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)

	client := newClient(cfg)
	sessions, err := newSessionManager(client)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch args.Command {
	case cli.CmdLogin:
		sessions.Hydrate()
		os.Exit(cli.RunLogin(sessions))
	case cli.CmdLogout:
		sessions.Hydrate()
		os.Exit(cli.RunLogout(sessions))
	case cli.CmdWhoami:
		sessions.Hydrate()
		os.Exit(cli.RunWhoami(sessions))
	case cli.CmdStatus:
		sessions.Hydrate()
		os.Exit(cli.RunStatus(cfg, client, sessions))
	default:
		runTUI(cfg, client, sessions)
	}
}

// newClient builds the API client from config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL).
		WithTimeout(cfg.API.Timeout()).
		WithMaxRetries(cfg.API.MaxRetries).
		WithRateLimit(cfg.API.RateLimit)
}

// newSessionManager wires the manager to the on-disk session slot.
func newSessionManager(client *api.Client) (*session.Manager, error) {
	if err := config.EnsureConfigDir(); err != nil {
		return nil, err
	}
	sessionPath, err := config.SessionPath()
	if err != nil {
		return nil, err
	}
	return session.NewManager(client, store.NewFileStore(sessionPath)), nil
}

// runTUI starts the full-screen interface.
func runTUI(cfg *config.Config, client *api.Client, sessions *session.Manager) {
	// The terminal owns stdout; logs go to a file.
	logPath, err := config.LogPath()
	if err == nil {
		if f, ferr := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600); ferr == nil {
			log.SetOutput(f)
			defer f.Close()
		}
	}
	log.Printf("universe %s starting", Version)

	var hist *history.Store
	if cfg.History.Enabled {
		if histPath, err := config.HistoryPath(); err == nil {
			hist, err = history.Open(histPath, cfg.History.MaxEntries)
			if err != nil {
				log.Printf("history disabled: %v", err)
				hist = nil
			}
		}
	}
	if hist != nil {
		defer hist.Close()
	}

	// Hot-reload config edits while the TUI runs.
	if watcher, err := config.NewWatcher(); err == nil {
		if err := watcher.Watch(); err == nil {
			defer watcher.Close()
		}
	}

	deps := views.Deps{
		Client:    client,
		Sessions:  sessions,
		History:   hist,
		Theme:     styles.NewTheme(cfg.UI.Theme),
		ThemeMode: cfg.UI.Theme,
	}

	program := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	sessions.OnChange(func() {
		program.Send(app.SessionChangedMsg{})
	})

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
