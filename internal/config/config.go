package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Stop configures one transit stop on the board.
//
// LinesInclude and LinesExclude map a line label (e.g. "10") to an optional
// destination terminal ID. A nil terminal matches any terminal of that line.
// At most one of the two filters may be set; neither means every line shows.
type Stop struct {
	ID           string             `json:"ID" validate:"required"`
	LinesInclude map[string]*string `json:"LinesInclude,omitempty"`
	LinesExclude map[string]*string `json:"LinesExclude,omitempty"`
	Limit        int                `json:"Limit,omitempty" validate:"gte=0"`

	// Lines is the flat filter map from older config revisions. It is
	// migrated into LinesInclude on load and never written back.
	Lines map[string]*string `json:"Lines,omitempty"`
}

// Config is the full busdisplay configuration document.
type Config struct {
	Stops []Stop `json:"stops" validate:"dive"`

	MaxDepartures int  `json:"max_departures" validate:"gt=0"`
	FetchInterval int  `json:"fetch_interval" validate:"gt=0"`
	HTTPTimeout   int  `json:"http_timeout" validate:"gt=0"`
	MaxMinutes    int  `json:"max_minutes" validate:"gt=0"`
	SoonMinutes   int  `json:"soon_minutes" validate:"gte=0"`
	ShowClock     bool `json:"show_clock"`
	ShowWeather   bool `json:"show_weather"`

	// Sizing block: the design-resolution metrics the layout engine scales.
	Cols           int     `json:"cols" validate:"gt=0"`
	Rows           int     `json:"rows" validate:"gt=0"`
	CellW          int     `json:"cell_w" validate:"gt=0"`
	BarH           int     `json:"bar_h" validate:"gt=0"`
	BarMargin      int     `json:"bar_margin" validate:"gte=0"`
	BarPadding     int     `json:"bar_padding" validate:"gte=0"`
	CardPadding    int     `json:"card_padding" validate:"gte=0"`
	MinuteSize     int     `json:"minute_size" validate:"gt=0"`
	NowSize        int     `json:"now_size" validate:"gt=0"`
	StopNameSize   int     `json:"stop_name_size" validate:"gt=0"`
	LineSize       int     `json:"line_size" validate:"gt=0"`
	IconSize       int     `json:"icon_size" validate:"gt=0"`
	BorderRadius   int     `json:"border_radius" validate:"gte=0"`
	ShadowOffset   int     `json:"shadow_offset" validate:"gte=0"`
	GridShrink     float64 `json:"grid_shrink" validate:"gt=0,lte=1"`
	WidgetSize     int     `json:"widget_size" validate:"gt=0"`
	WidgetTextSize int     `json:"widget_text_size" validate:"gt=0"`
	WidgetIconSize int     `json:"widget_icon_size" validate:"gt=0"`
}

// Error reports a fatal configuration problem. Startup never recovers from
// one; the process logs it and exits.
type Error struct {
	Path   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("config %s: %s", e.Path, e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

const defaultConfigPath = "~/.config/busdisplay/config.json"

// DefaultPath returns the default config file location.
func DefaultPath() string { return defaultConfigPath }

// Default returns the configuration used when a field (or the whole file) is
// absent. Values match the original display defaults.
func Default() Config {
	return Config{
		Stops:          []Stop{},
		MaxDepartures:  8,
		FetchInterval:  60,
		HTTPTimeout:    10,
		MaxMinutes:     120,
		SoonMinutes:    0,
		ShowClock:      true,
		ShowWeather:    true,
		Cols:           8,
		Rows:           2,
		CellW:          140,
		BarH:           320,
		BarMargin:      30,
		BarPadding:     25,
		CardPadding:    15,
		MinuteSize:     48,
		NowSize:        30,
		StopNameSize:   48,
		LineSize:       40,
		IconSize:       60,
		BorderRadius:   16,
		ShadowOffset:   6,
		GridShrink:     0.7,
		WidgetSize:     320,
		WidgetTextSize: 36,
		WidgetIconSize: 48,
	}
}

// Load reads the config file at path (or the default location when path is
// empty). A missing file is first created with defaults, then loaded. Any
// read, parse, or schema failure returns a *Error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, &Error{Path: path, Reason: "resolve path", Err: err}
	}

	if _, err := os.Stat(resolved); errors.Is(err, os.ErrNotExist) {
		if err := Save(resolved, Default()); err != nil {
			return Config{}, &Error{Path: resolved, Reason: "write default config", Err: err}
		}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, &Error{Path: resolved, Reason: "read", Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, &Error{Path: resolved, Reason: "invalid config", Err: err}
	}
	return cfg, nil
}

// Parse decodes a raw JSON document over the defaults and applies the same
// migration and schema checks as Load.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse JSON: %w", err)
	}
	if err := normalize(&cfg); err != nil {
		return Config{}, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("schema validation: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(resolved, data, 0o644)
}

// normalize migrates legacy stop schemas and enforces filter exclusivity.
func normalize(cfg *Config) error {
	for i := range cfg.Stops {
		stop := &cfg.Stops[i]
		if stop.Lines != nil {
			if stop.LinesInclude != nil || stop.LinesExclude != nil {
				return fmt.Errorf("stop %q mixes legacy Lines with LinesInclude/LinesExclude", stop.ID)
			}
			stop.LinesInclude = stop.Lines
			stop.Lines = nil
		}
		if stop.LinesInclude != nil && stop.LinesExclude != nil {
			return fmt.Errorf("stop %q sets both LinesInclude and LinesExclude", stop.ID)
		}
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
