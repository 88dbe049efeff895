// Package app wires the storage, feed loading, thumbnail and mutation
// services used by the TUI and the headless commands.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/charmbracelet/flick/internal/config"
	"github.com/charmbracelet/flick/internal/db"
	"github.com/charmbracelet/flick/internal/feed"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
	"github.com/charmbracelet/flick/internal/thumb"
)

const (
	thumbCacheSize = 256
	httpTimeout    = 20 * time.Second
)

// App holds the application services.
type App struct {
	Config    *config.Config
	Store     *db.Store
	Fetcher   *feed.Fetcher
	Thumbs    *thumb.Loader
	Mutations *remote.Service

	conn *sql.DB
}

// New opens the database in the configured data directory and builds the
// services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	conn, err := db.Connect(ctx, cfg.Options.DataDirectory)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: httpTimeout}
	store := db.NewStore(conn)

	var backend remote.Backend = store
	if cfg.Backend.Kind == config.BackendHTTP {
		backend = &mirrorBackend{
			primary: remote.NewHTTPBackend(cfg.Backend.URL, cfg.Backend.Token, client),
			mirror:  store,
		}
	}

	a := &App{
		Config:  cfg,
		Store:   store,
		Fetcher: feed.NewFetcher(client, cfg.Options.MaxItemsPerFeed),
		Mutations: remote.NewService(backend,
			remote.WithLimiter(rate.NewLimiter(rate.Limit(cfg.Backend.RateLimit), max(1, cfg.Backend.RateBurst))),
		),
		conn: conn,
	}
	if !cfg.Options.DisableThumbnails {
		loader, err := thumb.NewLoader(client, thumb.DefaultCols, thumb.DefaultRows, thumbCacheSize)
		if err != nil {
			conn.Close() //nolint:errcheck
			return nil, err
		}
		a.Thumbs = loader
	}
	return a, nil
}

// Cached returns the posts already in the store, without touching the
// network.
func (a *App) Cached(ctx context.Context) ([]*post.Post, error) {
	return a.Store.Posts(ctx, db.ListOptions{})
}

// Refresh fetches every configured feed, stores the results and returns the
// visible posts. Feeds that fail to load are reported in the returned error
// while the others are still stored; the post list is returned whenever the
// store could be read.
func (a *App) Refresh(ctx context.Context) ([]*post.Post, error) {
	fetched, fetchErr := a.Fetcher.FetchAll(ctx, a.Config.Feeds)
	if len(fetched) > 0 {
		if err := a.Store.SavePosts(ctx, fetched); err != nil {
			return nil, err
		}
	}
	if days := a.Config.Options.RetentionDays; days > 0 {
		cutoff := time.Now().AddDate(0, 0, -days)
		if n, err := a.Store.Prune(ctx, cutoff); err != nil {
			slog.Warn("Failed to prune old posts", "error", err)
		} else if n > 0 {
			slog.Debug("Pruned old posts", "count", n)
		}
	}
	posts, err := a.Cached(ctx)
	if err != nil {
		return nil, errors.Join(fetchErr, err)
	}
	return posts, fetchErr
}

// Shutdown releases the database.
func (a *App) Shutdown() {
	if err := a.conn.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// mirrorBackend performs actions on the remote service and records the
// confirmed ones in the local store so flags survive restarts.
type mirrorBackend struct {
	primary remote.Backend
	mirror  remote.Backend
}

func (m *mirrorBackend) Authenticated() bool {
	return m.primary.Authenticated()
}

func (m *mirrorBackend) Perform(ctx context.Context, postID string, action remote.Action) error {
	if err := m.primary.Perform(ctx, postID, action); err != nil {
		return err
	}
	if err := m.mirror.Perform(ctx, postID, action); err != nil && !errors.Is(err, db.ErrNotFound) {
		slog.Warn("Failed to record action locally", "post", postID, "action", action, "error", fmt.Errorf("mirror: %w", err))
	}
	return nil
}
