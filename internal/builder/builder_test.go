package builder

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/config"
	"folio/internal/content"
	"folio/internal/pages"
	"folio/internal/theme"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func newTestLoader(t *testing.T) *pages.Loader {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, config.SiteFile), `
[site]
title = "Builder Test"
language = "en"
copyright_year = 2024

[theme]
primary_color = "#111111"
card_background = "linear-gradient(145deg, #1C2128 0%, #22272E 100%)"
`)
	writeFile(t, filepath.Join(root, config.ProjectsFile), `
[[projects]]
name = "Widget"
technologies = ["Go", "TOML"]
`)
	posts := fstest.MapFS{
		"hello.md": &fstest.MapFile{Data: []byte("---\ntitle: Hello World\ndate: 2024-03-01\n---\nFirst **post**.\n")},
	}
	return pages.NewLoader(config.NewStore(config.FileSource{Dir: root}), content.NewCatalog(posts, content.Options{}))
}

func readOutput(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestBuildSite(t *testing.T) {
	tmpl, err := LoadTemplates(DefaultTemplates())
	require.NoError(t, err)

	out := t.TempDir()
	writeFile(t, filepath.Join(out, "stale.html"), "old")

	userStatic := fstest.MapFS{"css/style.css": &fstest.MapFile{Data: []byte("body{}")}}
	assets := append([]fs.FS{userStatic}, Assets(filepath.Join(t.TempDir(), "missing"))...)

	n, err := BuildSite(out, newTestLoader(t), tmpl, assets, BuildOptions{CleanDestination: true})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.NoFileExists(t, filepath.Join(out, "stale.html"))

	home := readOutput(t, out, "index.html")
	assert.Contains(t, home, "<title>Builder Test</title>")
	assert.Contains(t, home, `data-mode="static"`)
	assert.NotContains(t, home, `class="dark"`)
	assert.Contains(t, home, "linear-gradient(145deg")

	assert.Contains(t, readOutput(t, out, filepath.Join("projects", "index.html")), "Go, TOML")
	assert.Contains(t, readOutput(t, out, filepath.Join("blog", "index.html")), `href="/blog/hello"`)

	post := readOutput(t, out, filepath.Join("blog", "hello", "index.html"))
	assert.Contains(t, post, "<strong>post</strong>")
	assert.Contains(t, post, "Hello World | Builder Test")

	assert.Contains(t, readOutput(t, out, "404.html"), "Page not found")

	assert.Equal(t, "body{}", readOutput(t, out, filepath.Join("static", "css", "style.css")), "project assets override embedded ones")
	assert.FileExists(t, filepath.Join(out, "static", "js", "theme.js"))
}

func TestNewPageData_MirrorsTheme(t *testing.T) {
	layout := pages.LayoutData{Features: config.Features{EnableDarkMode: true}}
	ctrl := theme.NewController(nil, nil)
	ctrl.Init(true)
	ctrl.Toggle()

	p := NewPageData(layout, ctrl, PageHome, "", nil)
	assert.Equal(t, theme.Dark, p.Theme)
	assert.Equal(t, "dark", p.HTMLClass)

	layout.Features.EnableDarkMode = false
	p = NewPageData(layout, ctrl, PageHome, "", nil)
	assert.Equal(t, theme.Light, p.Theme)
	assert.Empty(t, p.HTMLClass)
}

func TestTemplates_RenderUnknownPage(t *testing.T) {
	tmpl, err := LoadTemplates(DefaultTemplates())
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.Error(t, tmpl.Render(&buf, "missing", PageData{}))
}

func TestIsCleanSlug(t *testing.T) {
	assert.True(t, isCleanSlug("hello-world"))
	for _, s := range []string{"", ".", "..", "a/b", `a\b`} {
		assert.False(t, isCleanSlug(s), s)
	}
}

func TestTemplatesDir_OverridesSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "notfound.html"), `{{ define "content" }}<p>custom missing page</p>{{ end }}`)

	tmpl, err := LoadTemplates(TemplatesDir(dir))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.Render(&buf, PageNotFound, PageData{}))
	assert.Contains(t, buf.String(), "custom missing page")
	assert.Contains(t, buf.String(), "<!DOCTYPE html>")
}

func TestThemeScript_ValidatesStoredValueAndUpdatesButton(t *testing.T) {
	script, err := fs.ReadFile(AssetFS(Assets(filepath.Join(t.TempDir(), "missing"))), "js/theme.js")
	require.NoError(t, err)
	assert.Contains(t, string(script), `value === "dark" || value === "light"`)
	assert.Contains(t, string(script), "button.textContent")
}
