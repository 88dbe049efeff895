// Package config loads and validates the flick configuration.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/flick/internal/swipe"
)

const (
	appName = "flick"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "FLICK_"
)

// Backend kinds.
const (
	BackendLocal = "local"
	BackendHTTP  = "http"
)

// Config is the application configuration.
type Config struct {
	// Feeds are the RSS, Atom or JSON feed URLs shown in the feed.
	Feeds   []string `json:"feeds,omitempty"`
	Swipe   Swipe    `json:"swipe"`
	Backend Backend  `json:"backend"`
	Options Options  `json:"options"`

	// path is the file writes go to.
	path string
}

// Swipe configures the row gesture. Offsets are in virtual pixels: one
// terminal column is CellWidth pixels.
type Swipe struct {
	// Left is the action of a leftward (negative) drag.
	Left swipe.Preference `json:"left"`
	// Right is the action of a rightward (positive) drag.
	Right           swipe.Preference `json:"right"`
	BeginThreshold  int              `json:"begin_threshold,omitempty"`
	ActionThreshold int              `json:"action_threshold,omitempty"`
	DeadZone        int              `json:"dead_zone,omitempty"`
	CellWidth       int              `json:"cell_width,omitempty"`
}

// Thresholds returns the gesture thresholds.
func (s Swipe) Thresholds() swipe.Thresholds {
	return swipe.Thresholds{
		Begin:    s.BeginThreshold,
		Action:   s.ActionThreshold,
		DeadZone: s.DeadZone,
	}
}

// Backend selects where account actions are performed.
type Backend struct {
	Kind string `json:"kind,omitempty"`
	URL  string `json:"url,omitempty"`
	// Token authenticates against the HTTP backend. Values starting with $
	// are read from the environment.
	Token string `json:"token,omitempty"`
	// RateLimit is the number of actions per second sent to the backend.
	RateLimit float64 `json:"rate_limit,omitempty"`
	RateBurst int     `json:"rate_burst,omitempty"`
}

// Options holds general settings.
type Options struct {
	DataDirectory     string `json:"data_directory,omitempty"`
	Debug             bool   `json:"debug,omitempty"`
	DisableThumbnails bool   `json:"disable_thumbnails,omitempty"`
	MaxItemsPerFeed   int    `json:"max_items_per_feed,omitempty"`
	// RetentionDays prunes cached posts older than this, unless saved or
	// voted on. Zero keeps everything.
	RetentionDays int `json:"retention_days,omitempty"`
}

// Defaults returns the configuration used when no file sets a value.
func Defaults() *Config {
	t := swipe.DefaultThresholds()
	return &Config{
		Swipe: Swipe{
			Left:            swipe.PrefDownvote,
			Right:           swipe.PrefUpvote,
			BeginThreshold:  t.Begin,
			ActionThreshold: t.Action,
			DeadZone:        t.DeadZone,
			CellWidth:       10,
		},
		Backend: Backend{
			Kind:      BackendLocal,
			RateLimit: 2,
			RateBurst: 5,
		},
		Options: Options{
			MaxItemsPerFeed: 50,
			RetentionDays:   30,
		},
	}
}

// Path returns the file the configuration is written to.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	var errs []error
	if !c.Swipe.Left.Valid() {
		errs = append(errs, fmt.Errorf("swipe.left: %w", swipe.ErrUnknownPreference))
	}
	if !c.Swipe.Right.Valid() {
		errs = append(errs, fmt.Errorf("swipe.right: %w", swipe.ErrUnknownPreference))
	}
	if err := c.Swipe.Thresholds().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("swipe: %w", err))
	}
	if c.Swipe.CellWidth <= 0 {
		errs = append(errs, fmt.Errorf("swipe.cell_width must be positive, got %d", c.Swipe.CellWidth))
	}
	switch c.Backend.Kind {
	case BackendLocal:
	case BackendHTTP:
		if c.Backend.URL == "" {
			errs = append(errs, errors.New("backend.url is required for the http backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("backend.kind: unknown backend %q", c.Backend.Kind))
	}
	if c.Backend.RateLimit <= 0 {
		errs = append(errs, fmt.Errorf("backend.rate_limit must be positive, got %v", c.Backend.RateLimit))
	}
	if c.Options.MaxItemsPerFeed < 0 {
		errs = append(errs, fmt.Errorf("options.max_items_per_feed must not be negative"))
	}
	return errors.Join(errs...)
}
