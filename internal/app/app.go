package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/logging"
	"github.com/rohanod/busDisplay/internal/prefs"
	"github.com/rohanod/busDisplay/internal/state"
	"github.com/rohanod/busDisplay/internal/transit"
	"github.com/rohanod/busDisplay/internal/ui"
	"github.com/rohanod/busDisplay/internal/weather"
)

// Options configure the busdisplay application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/busdisplay/config.json
	PrefsPath  string // empty uses default ~/.config/busdisplay/prefs.toml
	LogPath    string // empty uses defaultLogPath
	PollEvery  int    // seconds; zero uses the configured fetch_interval
}

const defaultLogPath = "busdisplay.log"

// Run boots the departure board TUI until the context is cancelled or the
// user quits. Configuration problems surface as *config.Error so the caller
// can report them and exit non-zero.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logPath := opts.LogPath
	if logPath == "" {
		logPath = defaultLogPath
	}
	// The TUI owns the terminal, so the console core stays off.
	logger, closeLog, err := logging.New(logging.Options{FilePath: logPath, Quiet: true})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer closeLog()

	userPrefs := prefs.Load(opts.PrefsPath)

	timeout := time.Duration(cfg.HTTPTimeout) * time.Second
	client, err := transit.NewClient("", timeout)
	if err != nil {
		return fmt.Errorf("init stationboard client: %w", err)
	}

	var wx WeatherSource
	if cfg.ShowWeather {
		wx = weather.NewClient("", weather.DefaultLatitude, weather.DefaultLongitude, timeout)
	}

	store := state.NewStore(len(cfg.Stops))

	interval := time.Duration(cfg.FetchInterval) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	poller := newPoller(store, client, wx, cfg, logger, interval)
	poller.Start(ctx)

	logger.Infow("starting board", "stops", len(cfg.Stops), "fetch_interval", interval)

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     store,
		Config:    cfg,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}
