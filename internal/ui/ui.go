// Package ui renders the Resonate terminal interface: home, search,
// detail, category, and upload views over the shared application store.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/prefs"
	"github.com/resonate-app/resonate/internal/state"
)

// Options configure the UI runtime.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Client    *audiovault.Client
	Prefs     prefs.Prefs
	PrefsPath string
}

// Run starts the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	if opts.Client == nil {
		return fmt.Errorf("ui requires an api client")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	program := tea.NewProgram(
		newModel(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := program.Run()
	return err
}
