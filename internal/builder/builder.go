// internal/builder/builder.go
package builder

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	xlog "folio/internal/log"
	"folio/internal/pages"
	"folio/internal/theme"
)

type BuildOptions struct {
	CleanDestination bool
}

// BuildSite renders every route of the site into outputDir and copies the
// static assets under outputDir/static. It returns the number of pages written.
func BuildSite(outputDir string, loader *pages.Loader, tmpl *Templates, assets []fs.FS, opts BuildOptions) (int, error) {
	logger := xlog.WithComponent("builder")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, err
	}
	if opts.CleanDestination {
		logger.Info().Str("dir", outputDir).Msg("cleaning destination directory")
		entries, err := os.ReadDir(outputDir)
		if err != nil {
			return 0, err
		}
		for _, entry := range entries {
			if err := os.RemoveAll(filepath.Join(outputDir, entry.Name())); err != nil {
				return 0, err
			}
		}
	}

	// A static export is not an interactive surface: it always starts light
	// and the browser script takes over from there.
	ctrl := theme.NewController(nil, nil)
	ctrl.Init(false)

	layout := loader.Layout()
	page := func(route, title string, data any) PageData {
		p := NewPageData(layout, ctrl, route, title, data)
		p.Static = true
		return p
	}

	type output struct {
		path string
		name string
		data PageData
	}
	outputs := []output{
		{path: "index.html", name: PageHome, data: page(PageHome, "", loader.Home())},
		{path: filepath.Join("projects", "index.html"), name: PageProjects, data: page(PageProjects, "Projects", loader.Projects())},
		{path: filepath.Join("blog", "index.html"), name: PageBlog, data: page(PageBlog, "Blog", loader.BlogList())},
		{path: "404.html", name: PageNotFound, data: page(PageNotFound, "Not found", &pages.NotFoundError{Status: 404, Message: "Page not found"})},
	}
	for _, post := range loader.BlogList().Posts {
		if !isCleanSlug(post.Slug) {
			logger.Warn().Str("slug", post.Slug).Msg("skipping post with unsafe slug")
			continue
		}
		data := page(PageBlog, post.Title, pages.BlogPostData{Post: post})
		data.Description = post.Description
		outputs = append(outputs, output{
			path: filepath.Join("blog", post.Slug, "index.html"),
			name: PagePost,
			data: data,
		})
	}

	for _, out := range outputs {
		target := filepath.Join(outputDir, out.path)
		if err := renderPage(tmpl, target, out.name, out.data); err != nil {
			return 0, fmt.Errorf("failed to render page %s: %w", out.path, err)
		}
		logger.Debug().Str("path", target).Msg("page written")
	}

	if err := copyStaticAssets(assets, filepath.Join(outputDir, "static")); err != nil {
		return 0, fmt.Errorf("failed to copy static assets: %w", err)
	}
	return len(outputs), nil
}

// isCleanSlug rejects slugs that would escape their blog/<slug> directory.
func isCleanSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

// renderPage executes the template into a pending file and atomically
// replaces outPath with it.
func renderPage(tmpl *Templates, outPath, name string, data PageData) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return err
	}
	pending, err := renameio.NewPendingFile(outPath, renameio.WithPermissions(0644))
	if err != nil {
		return err
	}
	defer pending.Cleanup()

	if err := tmpl.Render(pending, name, data); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}

// copyStaticAssets copies every layer into outputDir. Layers are copied
// lowest priority first so the project's own files win.
func copyStaticAssets(layers []fs.FS, outputDir string) error {
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		err := fs.WalkDir(layer, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			dest := filepath.Join(outputDir, filepath.FromSlash(path))
			if d.IsDir() {
				return os.MkdirAll(dest, 0755)
			}
			return copyFile(layer, path, dest)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(fsys fs.FS, name, dest string) error {
	src, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	pending, err := renameio.NewPendingFile(dest, renameio.WithPermissions(0644))
	if err != nil {
		return err
	}
	defer pending.Cleanup()

	if _, err := io.Copy(pending, src); err != nil {
		return err
	}
	return pending.CloseAtomicallyReplace()
}
