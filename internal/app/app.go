// Package app wires configuration, logging, the API client, the store,
// and the TUI together.
package app

import (
	"context"
	"fmt"

	"github.com/resonate-app/resonate/internal/audiovault"
	"github.com/resonate-app/resonate/internal/config"
	"github.com/resonate-app/resonate/internal/logging"
	"github.com/resonate-app/resonate/internal/prefs"
	"github.com/resonate-app/resonate/internal/state"
	"github.com/resonate-app/resonate/internal/ui"
)

// Options configure the Resonate application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/resonate/config.toml
	PrefsPath  string // empty uses default ~/.config/resonate/prefs.toml
	APIURL     string // overrides the configured API base URL
}

// Run boots the Resonate TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}

	log, closeLog := logging.New(cfg.LogPath())
	defer closeLog()
	log.Info().Str("api_url", cfg.APIURL).Msg("starting resonate")

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := audiovault.NewClient(cfg.APIURL, cfg.APIToken, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	store := state.New(client, log)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Client:    client,
		Prefs:     userPrefs,
		PrefsPath: opts.PrefsPath,
	}
	if err := ui.Run(uiOpts); err != nil {
		log.Error().Err(err).Msg("ui exited with error")
		return err
	}
	return nil
}
