package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/remote"
)

// ErrNotFound is returned when a post is not in the store.
var ErrNotFound = errors.New("post not found")

// Store persists posts and their flags. It implements [remote.Backend] so
// account actions can be performed offline against the local cache.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

var _ remote.Backend = (*Store)(nil)

// NewStore wraps an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePosts inserts new posts and refreshes the content of known ones. The
// flags of posts already in the store are left untouched, and the flags of
// the given posts are replaced by the stored ones.
func (s *Store) SavePosts(ctx context.Context, posts []*post.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	upsert, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (
			id, url, title, author, comment_count, feed_title, comments_url,
			description, thumbnail_url, published_at, fetched_at,
			upvoted, downvoted, saved, hidden, read
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			url = excluded.url,
			title = excluded.title,
			author = excluded.author,
			comment_count = excluded.comment_count,
			feed_title = excluded.feed_title,
			comments_url = excluded.comments_url,
			description = excluded.description,
			thumbnail_url = excluded.thumbnail_url,
			published_at = excluded.published_at,
			fetched_at = excluded.fetched_at
		RETURNING upvoted, downvoted, saved, hidden, read`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer upsert.Close()

	fetched := s.now().Unix()
	for _, p := range posts {
		f := p.Flags()
		row := upsert.QueryRowContext(ctx,
			p.ID, p.URL, p.Title, p.Author, p.CommentCount, p.FeedTitle,
			p.CommentsURL, p.Description, p.ThumbnailURL, unix(p.Published),
			fetched, f.Upvoted, f.Downvoted, f.Saved, f.Hidden, f.Read,
		)
		stored, err := scanFlags(row)
		if err != nil {
			return fmt.Errorf("save post %s: %w", p.ID, err)
		}
		p.SetFlags(stored)
	}
	return tx.Commit()
}

// ListOptions filters [Store.Posts].
type ListOptions struct {
	IncludeHidden bool
	OnlySaved     bool
	Limit         int
}

// Posts returns stored posts, newest first.
func (s *Store) Posts(ctx context.Context, opts ListOptions) ([]*post.Post, error) {
	query := selectPosts + ` WHERE 1 = 1`
	if !opts.IncludeHidden {
		query += ` AND hidden = 0`
	}
	if opts.OnlySaved {
		query += ` AND saved = 1`
	}
	query += ` ORDER BY published_at DESC, fetched_at DESC, id`
	var args []any
	if opts.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*post.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Post returns a single post by ID.
func (s *Store) Post(ctx context.Context, id string) (*post.Post, error) {
	row := s.db.QueryRowContext(ctx, selectPosts+` WHERE id = ?`, id)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get post %s: %w", id, err)
	}
	return p, nil
}

// Authenticated implements [remote.Backend]. The local store always accepts
// account actions.
func (s *Store) Authenticated() bool {
	return true
}

// Perform implements [remote.Backend]: it applies action to the stored
// flags of the post and records it in the action log.
func (s *Store) Perform(ctx context.Context, postID string, action remote.Action) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	flags, err := scanFlags(tx.QueryRowContext(ctx,
		`SELECT upvoted, downvoted, saved, hidden, read FROM posts WHERE id = ?`, postID))
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrNotFound, postID)
	}
	if err != nil {
		return fmt.Errorf("read flags: %w", err)
	}

	flags = action.Apply(flags)
	if _, err := tx.ExecContext(ctx,
		`UPDATE posts SET upvoted = ?, downvoted = ?, saved = ?, hidden = ?, read = ? WHERE id = ?`,
		flags.Upvoted, flags.Downvoted, flags.Saved, flags.Hidden, flags.Read, postID,
	); err != nil {
		return fmt.Errorf("update flags: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO action_log (post_id, action, created_at) VALUES (?, ?, ?)`,
		postID, action.String(), s.now().Unix(),
	); err != nil {
		return fmt.Errorf("log action: %w", err)
	}
	return tx.Commit()
}

// LoggedAction is an entry of the action log.
type LoggedAction struct {
	Action remote.Action
	At     time.Time
}

// History returns the actions performed on a post, oldest first.
func (s *Store) History(ctx context.Context, postID string) ([]LoggedAction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action, created_at FROM action_log WHERE post_id = ? ORDER BY id`, postID)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	defer rows.Close()

	var out []LoggedAction
	for rows.Next() {
		var (
			name string
			at   int64
		)
		if err := rows.Scan(&name, &at); err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		a, err := remote.ParseAction(name)
		if err != nil {
			return nil, err
		}
		out = append(out, LoggedAction{Action: a, At: time.Unix(at, 0)})
	}
	return out, rows.Err()
}

// Prune deletes posts fetched before cutoff that are neither saved nor
// voted on, and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM posts
		WHERE fetched_at < ? AND saved = 0 AND upvoted = 0 AND downvoted = 0`,
		cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune posts: %w", err)
	}
	return res.RowsAffected()
}

const selectPosts = `
	SELECT id, url, title, author, comment_count, feed_title, comments_url,
		description, thumbnail_url, published_at,
		upvoted, downvoted, saved, hidden, read
	FROM posts`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*post.Post, error) {
	var (
		p         post.Post
		published int64
		f         post.Flags
	)
	if err := row.Scan(
		&p.ID, &p.URL, &p.Title, &p.Author, &p.CommentCount, &p.FeedTitle,
		&p.CommentsURL, &p.Description, &p.ThumbnailURL, &published,
		&f.Upvoted, &f.Downvoted, &f.Saved, &f.Hidden, &f.Read,
	); err != nil {
		return nil, err
	}
	if published > 0 {
		p.Published = time.Unix(published, 0)
	}
	p.SetFlags(f)
	return &p, nil
}

func scanFlags(row scanner) (post.Flags, error) {
	var f post.Flags
	err := row.Scan(&f.Upvoted, &f.Downvoted, &f.Saved, &f.Hidden, &f.Read)
	return f, err
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
