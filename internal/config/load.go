package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/qjebbs/go-jsons"

	"github.com/charmbracelet/flick/internal/swipe"
)

const (
	fileName      = appName + ".json"
	localFileName = "." + appName + ".json"
)

// GlobalConfig returns the path of the user's configuration file.
func GlobalConfig() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, fileName)
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, fileName)
	}
	return filepath.Join(homeDir(), ".config", appName, fileName)
}

// DefaultDataDir returns where the database and logs live by default.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName)
	}
	return filepath.Join(homeDir(), ".local", "share", appName)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

// Load reads the configuration. When path is set only that file is read;
// otherwise the global file and a .flick.json in workingDir are merged, the
// local one winning. A .env file in workingDir and FLICK_* variables
// override file values.
func Load(workingDir, path string) (*Config, error) {
	if err := godotenv.Load(filepath.Join(workingDir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	paths := []string{path}
	writePath := path
	if path == "" {
		paths = []string{GlobalConfig(), filepath.Join(workingDir, localFileName)}
		writePath = GlobalConfig()
	}

	cfg, err := loadFromConfigPaths(paths)
	if err != nil {
		return nil, err
	}
	cfg.path = writePath

	if err := applyEnv(cfg, os.Getenv); err != nil {
		return nil, err
	}
	cfg.Backend.Token = expand(cfg.Backend.Token)
	if cfg.Options.DataDirectory == "" {
		cfg.Options.DataDirectory = DefaultDataDir()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromConfigPaths merges the existing files in order and decodes the
// result onto the defaults. Missing files are skipped. Objects merge key by
// key and arrays are concatenated, so a local file adds feeds to the global
// list.
func loadFromConfigPaths(paths []string) (*Config, error) {
	var readers []io.Reader
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", p, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		slog.Debug("Loaded config file", "path", p)
		readers = append(readers, bytes.NewReader(data))
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	cfg := Defaults()
	if len(readers) == 0 {
		return cfg, nil
	}
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configuration readers: %w", err)
	}
	if err := json.Unmarshal(merged, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv applies FLICK_* overrides using getenv.
func applyEnv(cfg *Config, getenv func(string) string) error {
	env := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(EnvPrefix + name))
		return v, v != ""
	}

	if v, ok := env("FEEDS"); ok {
		cfg.Feeds = nil
		for _, f := range strings.Split(v, ",") {
			if f = strings.TrimSpace(f); f != "" {
				cfg.Feeds = append(cfg.Feeds, f)
			}
		}
	}
	for name, dst := range map[string]*swipe.Preference{
		"SWIPE_LEFT":  &cfg.Swipe.Left,
		"SWIPE_RIGHT": &cfg.Swipe.Right,
	} {
		v, ok := env(name)
		if !ok {
			continue
		}
		pref, err := swipe.ParsePreference(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = pref
	}
	if v, ok := env("BACKEND"); ok {
		cfg.Backend.Kind = v
	}
	if v, ok := env("BACKEND_URL"); ok {
		cfg.Backend.URL = v
	}
	if v, ok := env("TOKEN"); ok {
		cfg.Backend.Token = v
	}
	if v, ok := env("DATA_DIR"); ok {
		cfg.Options.DataDirectory = v
	}
	if v, ok := env("DEBUG"); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sDEBUG: %w", EnvPrefix, err)
		}
		cfg.Options.Debug = debug
	}
	return nil
}

func expand(v string) string {
	if strings.HasPrefix(v, "$") {
		return os.ExpandEnv(v)
	}
	return v
}
