package feed

import (
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/charmbracelet/flick/internal/post"
)

// maxDescription is the number of runes of plain text kept per post.
const maxDescription = 500

var stripPolicy = bluemonday.StrictPolicy()

func (f *Fetcher) convert(feedURL string, parsed *gofeed.Feed) []*post.Post {
	items := parsed.Items
	if f.maxItems > 0 && len(items) > f.maxItems {
		items = items[:f.maxItems]
	}
	posts := make([]*post.Post, 0, len(items))
	for _, item := range items {
		if item == nil || (item.Link == "" && item.GUID == "") {
			continue
		}
		posts = append(posts, convertItem(feedURL, parsed, item))
	}
	return posts
}

func convertItem(feedURL string, parsed *gofeed.Feed, item *gofeed.Item) *post.Post {
	link := resolveURL(feedURL, item.Link)
	body := item.Content
	if body == "" {
		body = item.Description
	}

	p := post.New(
		postID(feedURL, item),
		link,
		strings.TrimSpace(html.UnescapeString(item.Title)),
		author(parsed, item),
		commentCount(item),
		post.Flags{},
	)
	p.FeedTitle = strings.TrimSpace(parsed.Title)
	p.Description = PlainText(body, maxDescription)
	p.CommentsURL = commentsURL(feedURL, item.Description)
	p.ThumbnailURL = thumbnail(feedURL, item, body)
	switch {
	case item.PublishedParsed != nil:
		p.Published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		p.Published = *item.UpdatedParsed
	}
	return p
}

var postNamespace = uuid.MustParse("5d1c8a3e-7f0b-4b6e-9a51-2f7e4c9d0b13")

// postID derives a stable ID from the feed and the item's GUID, or its link
// when the feed has no GUIDs.
func postID(feedURL string, item *gofeed.Item) string {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	return uuid.NewSHA1(postNamespace, []byte(feedURL+"\x00"+key)).String()
}

func author(parsed *gofeed.Feed, item *gofeed.Item) string {
	switch {
	case item.Author != nil && item.Author.Name != "":
		return item.Author.Name
	case len(item.Authors) > 0 && item.Authors[0] != nil:
		return item.Authors[0].Name
	case ext(item, "dc", "creator") != "":
		return ext(item, "dc", "creator")
	case parsed.Author != nil:
		return parsed.Author.Name
	}
	return ""
}

func commentCount(item *gofeed.Item) int {
	n, err := strconv.Atoi(strings.TrimSpace(ext(item, "slash", "comments")))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func ext(item *gofeed.Item, ns, name string) string {
	if item.Extensions == nil {
		return ""
	}
	values := item.Extensions[ns][name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func extAttr(item *gofeed.Item, ns, name, attr string) string {
	if item.Extensions == nil {
		return ""
	}
	for _, v := range item.Extensions[ns][name] {
		if a := v.Attrs[attr]; a != "" {
			return a
		}
	}
	return ""
}

// thumbnail finds an image for the item: the item image, an image
// enclosure, Media RSS elements and finally the first image of the body.
func thumbnail(feedURL string, item *gofeed.Item, body string) string {
	if item.Image != nil && item.Image.URL != "" {
		return resolveURL(feedURL, item.Image.URL)
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return resolveURL(feedURL, enc.URL)
		}
	}
	if u := extAttr(item, "media", "thumbnail", "url"); u != "" {
		return resolveURL(feedURL, u)
	}
	for _, v := range item.Extensions["media"]["content"] {
		if strings.HasPrefix(v.Attrs["type"], "image/") || v.Attrs["medium"] == "image" {
			return resolveURL(feedURL, v.Attrs["url"])
		}
	}
	if body == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img[src]").First().Attr("src")
	return resolveURL(feedURL, src)
}

// commentsURL looks for a link to the discussion in the item description,
// as aggregators like Hacker News and Lobsters publish it.
func commentsURL(feedURL, description string) string {
	if description == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return ""
	}
	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.EqualFold(strings.TrimSpace(s.Text()), "comments") {
			found, _ = s.Attr("href")
			return false
		}
		return true
	})
	return resolveURL(feedURL, found)
}

// PlainText strips markup from s and collapses whitespace, truncating the
// result to limit runes when limit is positive.
func PlainText(s string, limit int) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(stripPolicy.Sanitize(s))
	text = strings.Join(strings.Fields(text), " ")
	if limit > 0 {
		if r := []rune(text); len(r) > limit {
			text = strings.TrimSpace(string(r[:limit-1])) + "…"
		}
	}
	return text
}

func resolveURL(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if u.IsAbs() {
		return u.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return b.ResolveReference(u).String()
}
