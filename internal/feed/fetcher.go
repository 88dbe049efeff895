// Package feed loads RSS, Atom and JSON feeds and turns their items into
// posts.
package feed

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/charmbracelet/flick/internal/post"
)

const (
	userAgent = "flick/1.0 (+https://github.com/charmbracelet/flick)"
	// maxConcurrentFetches bounds how many feeds are fetched at once.
	maxConcurrentFetches = 4
)

// Fetcher downloads feeds and converts their items.
type Fetcher struct {
	client   *http.Client
	maxItems int
}

// NewFetcher creates a fetcher. A nil client uses an [http.Client] with a
// 20 second timeout. maxItems caps the number of items taken from each feed;
// zero means no limit.
func NewFetcher(client *http.Client, maxItems int) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Fetcher{client: client, maxItems: maxItems}
}

func (f *Fetcher) parser() *gofeed.Parser {
	p := gofeed.NewParser()
	p.Client = f.client
	p.UserAgent = userAgent
	return p
}

// Fetch downloads and parses the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*post.Post, error) {
	parsed, err := f.parser().ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return f.convert(url, parsed), nil
}

// Parse reads a feed document from r. url identifies the feed and seeds the
// IDs of its posts.
func (f *Fetcher) Parse(url string, r io.Reader) ([]*post.Post, error) {
	parsed, err := f.parser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return f.convert(url, parsed), nil
}

// FetchAll fetches every feed concurrently and returns their posts merged,
// newest first. Feeds that fail are skipped; their errors are joined into
// the returned error, which is non-nil even when some posts were loaded.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) ([]*post.Post, error) {
	results := make([][]*post.Post, len(urls))
	errs := make([]error, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, url := range urls {
		g.Go(func() error {
			start := time.Now()
			posts, err := f.Fetch(ctx, url)
			if err != nil {
				slog.Warn("Failed to fetch feed", "url", url, "error", err)
				errs[i] = err
				return nil
			}
			slog.Debug("Fetched feed", "url", url, "posts", len(posts), "took", time.Since(start))
			results[i] = posts
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var merged []*post.Post
	for _, posts := range results {
		for _, p := range posts {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			merged = append(merged, p)
		}
	}
	SortNewestFirst(merged)
	return merged, errors.Join(errs...)
}

// SortNewestFirst orders posts by publication date, newest first. Posts
// without a date go last.
func SortNewestFirst(posts []*post.Post) {
	slices.SortStableFunc(posts, func(a, b *post.Post) int {
		switch {
		case a.Published.IsZero() && b.Published.IsZero():
			return 0
		case a.Published.IsZero():
			return 1
		case b.Published.IsZero():
			return -1
		}
		return cmp.Compare(b.Published.UnixNano(), a.Published.UnixNano())
	})
}
