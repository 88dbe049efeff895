package feed

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const atomFeed = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Example</title>
  <author><name>Feed Author</name></author>
  <entry>
    <title>Fresh entry</title>
    <link href="https://atom.example.com/fresh"/>
    <id>urn:uuid:1</id>
    <updated>2026-10-06T08:00:00Z</updated>
    <content type="html">&lt;p&gt;Hello&lt;/p&gt;</content>
  </entry>
</feed>`

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func TestParse_RSS(t *testing.T) {
	t.Parallel()

	f := NewFetcher(nil, 0)
	posts, err := f.Parse("https://news.example.com/rss", strings.NewReader(readFixture(t, "hn.xml")))
	require.NoError(t, err)
	require.Len(t, posts, 3, "items without link and guid are skipped")

	first := posts[0]
	require.Equal(t, "Show: A tiny terminal feed reader", first.Title)
	require.Equal(t, "https://blog.example.com/feed-reader", first.URL)
	require.Equal(t, "alice", first.Author)
	require.Equal(t, 42, first.CommentCount)
	require.Equal(t, "Example News", first.FeedTitle)
	require.Equal(t, "https://news.example.com/item?id=1", first.CommentsURL)
	require.Equal(t, "https://news.example.com/thumbs/1.png", first.ThumbnailURL)
	require.Equal(t, "It swipes & it scrolls. Comments", first.Description)
	require.True(t, first.Published.Equal(time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC)))

	require.Equal(t, "https://news.example.com/img/cat.jpg", posts[1].ThumbnailURL)
	require.Empty(t, posts[1].CommentsURL)
	require.Equal(t, posts[1].URL, posts[1].Comments())

	require.Equal(t, "https://cdn.example.com/cover.jpg", posts[2].ThumbnailURL)
	require.True(t, posts[2].Published.IsZero())
}

func TestParse_StableIDs(t *testing.T) {
	t.Parallel()

	f := NewFetcher(nil, 0)
	a, err := f.Parse("https://news.example.com/rss", strings.NewReader(readFixture(t, "hn.xml")))
	require.NoError(t, err)
	b, err := f.Parse("https://news.example.com/rss", strings.NewReader(readFixture(t, "hn.xml")))
	require.NoError(t, err)
	c, err := f.Parse("https://other.example.com/rss", strings.NewReader(readFixture(t, "hn.xml")))
	require.NoError(t, err)

	for i := range a {
		require.Equal(t, a[i].ID, b[i].ID)
		require.NotEqual(t, a[i].ID, c[i].ID)
	}
	require.NotEqual(t, a[0].ID, a[1].ID)
}

func TestParse_MaxItems(t *testing.T) {
	t.Parallel()

	posts, err := NewFetcher(nil, 1).Parse("u", strings.NewReader(readFixture(t, "hn.xml")))
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestParse_Atom(t *testing.T) {
	t.Parallel()

	posts, err := NewFetcher(nil, 0).Parse("https://atom.example.com/feed", strings.NewReader(atomFeed))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.Equal(t, "Feed Author", posts[0].Author)
	require.Equal(t, "Hello", posts[0].Description)
	require.False(t, posts[0].Published.IsZero())
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewFetcher(nil, 0).Parse("u", strings.NewReader("not a feed"))
	require.Error(t, err)
}

func TestFetchAll(t *testing.T) {
	t.Parallel()

	rss := readFixture(t, "hn.xml")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = w.Write([]byte(rss))
		case "/atom":
			w.Header().Set("Content-Type", "application/atom+xml")
			_, _ = w.Write([]byte(atomFeed))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(srv.Client(), 0)
	posts, err := f.FetchAll(t.Context(), []string{srv.URL + "/rss", srv.URL + "/atom", srv.URL + "/missing"})
	require.Error(t, err, "the missing feed is reported")
	require.Len(t, posts, 4)
	require.Equal(t, "Fresh entry", posts[0].Title)
	require.True(t, posts[3].Published.IsZero(), "undated posts sort last")

	posts, err = f.FetchAll(t.Context(), []string{srv.URL + "/atom"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", PlainText("", 10))
	require.Equal(t, "a b", PlainText("<p>a</p>\n\n<p>b</p>", 0))
	require.Equal(t, "abcd…", PlainText("abcdefgh", 5))
	require.Equal(t, "Tom & Jerry", PlainText("Tom &amp; Jerry", 0))
}
