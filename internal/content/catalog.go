// Package content discovers and renders the markdown blog posts.
package content

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	xlog "folio/internal/log"
	"folio/internal/metrics"
)

const (
	// DateLayout is the ISO date format used for post dates.
	DateLayout    = "2006-01-02"
	UntitledTitle = "Untitled Post"
	wordsPerMin   = 200
)

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", DateLayout}

// Post is one blog post ready for a template.
type Post struct {
	Slug        string        `json:"slug"`
	Title       string        `json:"title"`
	Date        string        `json:"date"`
	Description string        `json:"description,omitempty"`
	Tags        []string      `json:"tags"`
	Draft       bool          `json:"draft,omitempty"`
	ReadingTime int           `json:"reading_time"`
	Content     template.HTML `json:"content"`

	Published time.Time `json:"-"`
}

// Options controls how a Catalog reads and renders posts.
type Options struct {
	// BasePath is the route prefix of post pages, "/blog" by default.
	BasePath      string
	Unsafe        bool
	IncludeDrafts bool
}

// Catalog lists the *.md files at the root of a content directory. Every
// query re-reads the directory.
type Catalog struct {
	fsys     fs.FS
	opts     Options
	renderer *Renderer
	now      func() time.Time
	logger   zerolog.Logger
}

// NewCatalog creates a catalog over fsys, typically os.DirFS("content/blog").
func NewCatalog(fsys fs.FS, opts Options) *Catalog {
	if opts.BasePath == "" {
		opts.BasePath = "/blog"
	}
	return &Catalog{
		fsys:     fsys,
		opts:     opts,
		renderer: NewRenderer(opts.BasePath, opts.Unsafe),
		now:      time.Now,
		logger:   xlog.WithComponent("content"),
	}
}

// ListPosts returns all posts, newest first. Files that cannot be extracted
// are logged and skipped. Posts without a date are dated today.
func (c *Catalog) ListPosts() []Post {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.logger.Error().Err(err).Msg("failed to read blog content directory")
		}
		return []Post{}
	}

	posts := make([]Post, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".md" {
			continue
		}
		post, err := c.load(name)
		if err != nil {
			c.logger.Warn().Err(err).Str("file", name).Msg("skipping blog post")
			metrics.RecordPostSkipped()
			continue
		}
		if post.Draft && !c.opts.IncludeDrafts {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Published.After(posts[j].Published)
	})
	return posts
}

// Post returns the post whose slug equals slug. The slug is only compared,
// never used to build a path.
func (c *Catalog) Post(slug string) (Post, bool) {
	for _, p := range c.ListPosts() {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

func (c *Catalog) load(name string) (Post, error) {
	raw, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return Post{}, err
	}
	if !utf8.Valid(raw) {
		return Post{}, errors.New("content file is not valid UTF-8")
	}
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return Post{}, err
	}

	post := Post{
		Slug:        strings.TrimSuffix(name, ".md"),
		Title:       UntitledTitle,
		Tags:        stringList(meta["tags"]),
		ReadingTime: readingTime(body),
	}
	if title, ok := meta["title"].(string); ok && strings.TrimSpace(title) != "" {
		post.Title = title
	}
	// excerpt takes precedence over description.
	if excerpt, ok := meta["excerpt"].(string); ok && excerpt != "" {
		post.Description = excerpt
	} else if desc, ok := meta["description"].(string); ok {
		post.Description = desc
	}
	if draft, ok := meta["draft"].(bool); ok {
		post.Draft = draft
	}

	published, err := c.publishedAt(meta["date"])
	if err != nil {
		return Post{}, err
	}
	post.Published = published
	post.Date = published.Format(DateLayout)

	post.Content, err = c.renderer.Render(body)
	if err != nil {
		return Post{}, err
	}
	return post, nil
}

// publishedAt interprets the front matter date. YAML yields strings, TOML
// yields local dates or timestamps. A missing date means today.
func (c *Catalog) publishedAt(v any) (time.Time, error) {
	switch d := v.(type) {
	case nil:
		return today(c.now()), nil
	case time.Time:
		return d, nil
	case toml.LocalDate:
		return d.AsTime(time.UTC), nil
	case toml.LocalDateTime:
		return d.AsTime(time.UTC), nil
	case string:
		if strings.TrimSpace(d) == "" {
			return today(c.now()), nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, d); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparsable date %q, use YYYY-MM-DD or RFC 3339", d)
	}
	return time.Time{}, fmt.Errorf("unsupported date value of type %T", v)
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stringList accepts a list of strings or a comma separated string.
func stringList(v any) []string {
	out := []string{}
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, t...)
	case string:
		for _, s := range strings.Split(t, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func readingTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMin - 1) / wordsPerMin
	if minutes < 1 {
		return 1
	}
	return minutes
}
