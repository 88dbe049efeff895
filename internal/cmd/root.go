package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/flick/internal/app"
	"github.com/charmbracelet/flick/internal/config"
	"github.com/charmbracelet/flick/internal/log"
	"github.com/charmbracelet/flick/internal/ui/common"
	"github.com/charmbracelet/flick/internal/ui/feed"
	"github.com/charmbracelet/flick/internal/ui/model"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "devel"

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().String("config", "", "Configuration file to use instead of the global one")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "Custom flick data directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")

	rootCmd.AddCommand(
		configCmd,
		listCmd,
		actCmd,
		historyCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "flick",
	Short: "Swipe through your feeds in the terminal",
	Long: heredoc.Doc(`
		flick shows the posts of your RSS and Atom feeds as a list you can
		swipe. Drag a row left or right with the mouse (or press h and l) to
		vote, save, hide or open it; the actions bound to each direction are
		configurable.
	`),
	Example: heredoc.Doc(`
		# Run flick
		flick

		# Use a different configuration file
		flick --config ~/feeds.json

		# Run with debug logging
		flick -d

		# Add a feed
		flick config set feeds '["https://news.ycombinator.com/rss"]'
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isTerminal(os.Stdout) {
			return errors.New("flick needs a terminal, try `flick list` instead")
		}

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()
		defer log.RecoverPanic("main", nil)

		// A typed nil loader must not reach the feed as a non-nil
		// interface.
		var thumbs feed.Thumbnails
		if a.Thumbs != nil {
			thumbs = a.Thumbs
		}
		ui := model.New(common.DefaultCommon(a.Config), a.Mutations, a, thumbs)
		program := tea.NewProgram(ui, tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %w", err)
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the configuration selected by the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cwd, path)
	if err != nil {
		return nil, err
	}
	if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
		cfg.Options.DataDirectory = dataDir
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Options.Debug = true
	}
	return cfg, nil
}

// setupApp loads the configuration, starts logging and opens the
// application services.
func setupApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	log.Setup(log.File(cfg.Options.DataDirectory), cfg.Options.Debug)
	slog.Debug("Starting flick", "version", Version, "config", cfg.Path(), "data", cfg.Options.DataDirectory)

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		slog.Error("Failed to create app instance", "error", err)
		return nil, err
	}
	return a, nil
}

// ResolveCwd returns the --cwd flag as an absolute path, or the current
// directory when it is not set.
func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", cwd, err)
	}
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		return "", fmt.Errorf("not a directory: %s", cwd)
	}
	return abs, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
