package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/flick/internal/db"
	"github.com/charmbracelet/flick/internal/post"
	"github.com/charmbracelet/flick/internal/ui/dialog"
	"github.com/charmbracelet/flick/internal/ui/styles"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	listCmd.Flags().BoolP("refresh", "r", false, "Fetch the feeds before listing")
	listCmd.Flags().Bool("saved", false, "Only list saved posts")
	listCmd.Flags().BoolP("all", "a", false, "Include hidden posts")
	listCmd.Flags().IntP("limit", "n", 0, "Maximum number of posts to list")
	listCmd.Flags().Bool("json", false, "Print posts as JSON")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the cached posts",
	Example: heredoc.Doc(`
		# Fetch the feeds and list the 20 newest posts
		flick list -r -n 20

		# Saved posts as JSON
		flick list --saved --json
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		flags := cmd.Flags()
		if refresh, _ := flags.GetBool("refresh"); refresh {
			if _, err := a.Refresh(cmd.Context()); err != nil {
				// partial failures still leave the other feeds stored
				slog.Warn("Some feeds failed to refresh", "error", err)
				fmt.Fprintln(cmd.ErrOrStderr(), err)
			}
		}

		var opts db.ListOptions
		opts.OnlySaved, _ = flags.GetBool("saved")
		opts.IncludeHidden, _ = flags.GetBool("all")
		opts.Limit, _ = flags.GetInt("limit")
		posts, err := a.Store.Posts(cmd.Context(), opts)
		if err != nil {
			return err
		}

		if asJSON, _ := flags.GetBool("json"); asJSON {
			return writePostsJSON(cmd.OutOrStdout(), posts)
		}
		t := styles.DefaultStyles()
		return writePosts(cmd.OutOrStdout(), &t, posts, time.Now())
	},
}

type postJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Author      string     `json:"author,omitempty"`
	Feed        string     `json:"feed,omitempty"`
	Comments    int        `json:"comments"`
	CommentsURL string     `json:"comments_url,omitempty"`
	Published   *time.Time `json:"published,omitempty"`
	Flags       post.Flags `json:"flags"`
}

func writePostsJSON(w io.Writer, posts []*post.Post) error {
	out := make([]postJSON, 0, len(posts))
	for _, p := range posts {
		pj := postJSON{
			ID:          p.ID,
			Title:       p.Title,
			URL:         p.URL,
			Author:      p.Author,
			Feed:        p.FeedTitle,
			Comments:    p.CommentCount,
			CommentsURL: p.CommentsURL,
			Flags:       p.Flags(),
		}
		if !p.Published.IsZero() {
			published := p.Published
			pj.Published = &published
		}
		out = append(out, pj)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writePosts prints one block per post. Styles are downsampled to what w
// supports.
func writePosts(w io.Writer, t *styles.Styles, posts []*post.Post, now time.Time) error {
	if len(posts) == 0 {
		_, err := lipgloss.Fprintln(w, t.Muted.Render("No posts."))
		return err
	}
	for _, p := range posts {
		title := t.Feed.Title
		if p.Flags().Read {
			title = t.Feed.TitleRead
		}
		var meta []string
		if p.FeedTitle != "" {
			meta = append(meta, p.FeedTitle)
		}
		if p.Author != "" {
			meta = append(meta, p.Author)
		}
		if !p.Published.IsZero() {
			meta = append(meta, humanize.RelTime(p.Published, now, "ago", "from now"))
		}
		meta = append(meta, fmt.Sprintf("%d comments", p.CommentCount))
		if f := dialog.FlagSummary(p.Flags()); f != "none" {
			meta = append(meta, f)
		}

		if _, err := lipgloss.Fprintf(w, "%s %s\n  %s\n  %s\n",
			t.Subtle.Render(p.ID),
			title.Render(p.Title),
			t.Feed.Subtitle.Render(strings.Join(meta, " · ")),
			t.Muted.Render(p.URL),
		); err != nil {
			return err
		}
	}
	return nil
}
