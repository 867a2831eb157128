// Package app wires configuration, storage, the API client and the UI
// together.
package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joiefull/penderie/internal/config"
	"github.com/joiefull/penderie/internal/favorites"
	"github.com/joiefull/penderie/internal/joiefull"
	"github.com/joiefull/penderie/internal/prefs"
	"github.com/joiefull/penderie/internal/state"
	"github.com/joiefull/penderie/internal/store"
	"github.com/joiefull/penderie/internal/ui"
)

// Options configure the Penderie application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/penderie/prefs.toml
	OpenLink   string // optional joiefull://vetement/{id} deep link
}

// Run boots the Penderie TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	setupLogging()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}

	client, err := joiefull.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	engine := state.NewEngine(client)
	index := favorites.New(st)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Engine:    engine,
		Store:     st,
		Favorites: index,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		OpenLink:  opts.OpenLink,
	}
	return ui.Run(uiOpts)
}

// setupLogging routes the standard logger away from the terminal the TUI
// owns: to a file when PENDERIE_DEBUG names one, otherwise nowhere.
func setupLogging() {
	path := os.Getenv("PENDERIE_DEBUG")
	if path == "" {
		log.SetOutput(io.Discard)
		return
	}
	if _, err := tea.LogToFile(path, "penderie"); err != nil {
		log.SetOutput(io.Discard)
	}
}
