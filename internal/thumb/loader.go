package thumb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// maxImageBytes caps the size of a downloaded thumbnail.
	maxImageBytes = 8 << 20
	defaultCache  = 256
)

// ReadyMsg delivers a loaded thumbnail to the UI. Generation is the binding
// generation of the row that asked for it; rows drop messages whose
// generation is stale.
type ReadyMsg struct {
	PostID     string
	URL        string
	Generation uint64
	Image      *Image
}

// Loader downloads, decodes and scales thumbnails, keeping recent ones in an
// LRU cache.
type Loader struct {
	client     *http.Client
	cache      *lru.Cache[string, *Image]
	cols, rows int
	timeout    time.Duration
}

// NewLoader creates a loader producing images of cols×rows cells. A nil
// client uses an [http.Client] with a short timeout; cacheSize <= 0 uses a
// default size.
func NewLoader(client *http.Client, cols, rows, cacheSize int) (*Loader, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if cacheSize <= 0 {
		cacheSize = defaultCache
	}
	cache, err := lru.New[string, *Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create thumbnail cache: %w", err)
	}
	return &Loader{
		client:  client,
		cache:   cache,
		cols:    cols,
		rows:    rows,
		timeout: 20 * time.Second,
	}, nil
}

// Size returns the size of produced images in cells.
func (l *Loader) Size() (cols, rows int) {
	return l.cols, l.rows
}

// Cached returns the cached image for url, if any.
func (l *Loader) Cached(url string) (*Image, bool) {
	if l == nil || url == "" {
		return nil, false
	}
	return l.cache.Get(url)
}

// Load returns a command that fetches url and delivers a [ReadyMsg] tagged
// with generation. Failures are logged and deliver nothing.
func (l *Loader) Load(postID, url string, generation uint64) tea.Cmd {
	if l == nil || url == "" {
		return nil
	}
	return func() tea.Msg {
		img, err := l.Fetch(context.Background(), url)
		if err != nil {
			slog.Debug("Failed to load thumbnail", "post", postID, "url", url, "error", err)
			return nil
		}
		return ReadyMsg{PostID: postID, URL: url, Generation: generation, Image: img}
	}
}

// Fetch downloads url and returns the scaled image, using the cache when
// possible.
func (l *Loader) Fetch(ctx context.Context, url string) (*Image, error) {
	if img, ok := l.cache.Get(url); ok {
		return img, nil
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: status %d", resp.StatusCode)
	}

	src, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	img := New(url, src, l.cols, l.rows)
	l.cache.Add(url, img)
	return img, nil
}
