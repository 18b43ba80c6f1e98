// cmd/chefdeck/main.go
//
// This is the entry point for the chefdeck console.
//
// Flow:
// 1. Load .env and the .chefdeck directory in the operator's home
// 2. Load stored credentials; without them there is nothing to do
// 3. Verify the session against the admin API (role gate)
// 4. Launch the TUI

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/feastly/chefdeck/internal/api"
	"github.com/feastly/chefdeck/internal/auth"
	"github.com/feastly/chefdeck/internal/config"
	"github.com/feastly/chefdeck/internal/credentials"
	"github.com/feastly/chefdeck/internal/logbook"
	"github.com/feastly/chefdeck/internal/logging"
	"github.com/feastly/chefdeck/internal/tui"
)

const loginHint = "Not signed in. Obtain an admin token pair and place it under ~/.chefdeck/credentials/ (access_token, refresh_token)."

func main() {
	config.LoadDotenv()

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}

	if err := config.InitChefdeckDir(home); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing .chefdeck directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.DiagnosticsLogPath(), cfg.LogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening diagnostics log: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	book, err := logbook.New(cfg.ActivityLogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening activity log: %v\n", err)
		os.Exit(1)
	}

	store := credentials.NewStore(cfg.CredentialsDir())
	creds, err := store.Load()
	if err != nil {
		if errors.Is(err, credentials.ErrNoCredentials) {
			fmt.Fprintln(os.Stderr, loginHint)
		} else {
			fmt.Fprintf(os.Stderr, "Error loading credentials: %v\n", err)
		}
		os.Exit(1)
	}

	client := api.NewClient(cfg.BaseURL(), creds.AccessToken, cfg.HTTPTimeout(), logger)

	gate := auth.NewGate(client, store, logger)
	res := gate.Check(context.Background())
	if res.Outcome == auth.OutcomeRedirect {
		fmt.Fprintln(os.Stderr, loginHint)
		os.Exit(1)
	}
	if res.Degraded {
		book.Warn("Could not verify session against %s; proceeding with cached credentials", cfg.BaseURL())
	}

	p := tea.NewProgram(
		tui.NewApp(cfg, client, res.Identity, logger, book),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running console: %v\n", err)
		os.Exit(1)
	}
}
