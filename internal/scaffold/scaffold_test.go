package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/config"
	"folio/internal/content"
)

func TestCreateNewSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	var out bytes.Buffer
	require.NoError(t, CreateNewSite(&out, dir))

	for _, name := range []string{config.SiteFile, config.ProjectsFile, archetypePath, filepath.Join(BlogDir, "hello-world.md")} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.DirExists(t, filepath.Join(dir, "static"))
	assert.Contains(t, out.String(), "folio serve")

	doc, err := config.LoadDocument(config.FileSource{Dir: dir}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc.Owner.Name)

	posts := content.NewCatalog(os.DirFS(filepath.Join(dir, BlogDir)), content.Options{}).ListPosts()
	require.Len(t, posts, 1)
	assert.Equal(t, "hello-world", posts[0].Slug)
	assert.Equal(t, "The first post on this site.", posts[0].Description)
}

func TestCreateNewSite_KeepsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.SiteFile), []byte("[site]\ntitle = \"Mine\"\n"), 0644))

	require.NoError(t, CreateNewSite(&bytes.Buffer{}, dir))

	data, err := os.ReadFile(filepath.Join(dir, config.SiteFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mine")
}

func TestCreateNewPost(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CreateNewSite(&bytes.Buffer{}, dir))
	now := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)

	path, err := CreateNewPost(config.FileSource{Dir: dir}, dir, "Crème Brûlée Recipes", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, BlogDir, "creme-brulee-recipes.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Crème Brûlée Recipes")
	assert.Contains(t, string(data), "date: 2025-06-07")
	assert.Contains(t, string(data), "author: Jane Doe")

	catalog := content.NewCatalog(os.DirFS(filepath.Join(dir, BlogDir)), content.Options{IncludeDrafts: true})
	post, ok := catalog.Post("creme-brulee-recipes")
	require.True(t, ok)
	assert.True(t, post.Draft)
	assert.Equal(t, "2025-06-07", post.Date)

	_, err = CreateNewPost(config.FileSource{Dir: dir}, dir, "Crème Brûlée Recipes", now)
	assert.ErrorContains(t, err, "already exists")
}

func TestCreateNewPost_WithoutProject(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateNewPost(config.BundledSource{}, dir, "Notes", time.Now())
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = CreateNewPost(config.BundledSource{}, dir, "???", time.Now())
	assert.Error(t, err)
}

func TestCreateNewPost_AuthorFromSource(t *testing.T) {
	dir := t.TempDir()
	static := filepath.Join(dir, "static")
	require.NoError(t, os.MkdirAll(static, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(static, config.SiteFile), []byte("[owner]\nname = \"Prod Author\"\n"), 0644))

	path, err := CreateNewPost(config.NewFileSource(dir, config.Production), dir, "Release notes", time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "author: Prod Author")
}

func TestCreateNewPost_TitlesNeedingQuotes(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC)
	catalog := content.NewCatalog(os.DirFS(filepath.Join(dir, BlogDir)), content.Options{IncludeDrafts: true})

	titles := []string{
		`Why "go vet" matters`,
		`C:\ paths on Windows`,
		`Colons: a field guide`,
		`# not a comment`,
		`2025`,
		`yes`,
	}
	for _, title := range titles {
		path, err := CreateNewPost(config.BundledSource{}, dir, title, now)
		require.NoError(t, err, title)

		slug := strings.TrimSuffix(filepath.Base(path), ".md")
		post, ok := catalog.Post(slug)
		require.True(t, ok, "post %q is listed", title)
		assert.Equal(t, title, post.Title)
	}
}
