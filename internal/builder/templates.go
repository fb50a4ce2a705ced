// internal/builder/templates.go
package builder

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"strings"
)

// Page template names. Each names a file <name>.html defining "content".
const (
	PageHome     = "home"
	PageProjects = "projects"
	PageBlog     = "blog"
	PagePost     = "post"
	PageNotFound = "notfound"
)

var pageNames = []string{PageHome, PageProjects, PageBlog, PagePost, PageNotFound}

var (
	//go:embed templates/*.html
	embeddedTemplates embed.FS

	//go:embed static
	embeddedStatic embed.FS
)

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	// css marks a theme token from site.toml as a trusted CSS value.
	"css": func(s string) template.CSS { return template.CSS(s) },
}

// Templates holds one parsed template set per page.
type Templates struct {
	pages map[string]*template.Template
}

// DefaultTemplates returns the templates compiled into the binary.
func DefaultTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// TemplatesDir layers the files in dir over the embedded templates, so a
// project only needs to carry the templates it changes.
func TemplatesDir(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return layeredFS{os.DirFS(dir), DefaultTemplates()}
	}
	return DefaultTemplates()
}

// LoadTemplates parses layout.html, header.html and footer.html from fsys,
// then clones that base once per page template.
func LoadTemplates(fsys fs.FS) (*Templates, error) {
	base, err := template.New("layout").Funcs(templateFuncs).ParseFS(fsys, "layout.html", "header.html", "footer.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}
	t := &Templates{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := clone.ParseFS(fsys, name+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s.html: %w", name, err)
		}
		t.pages[name] = clone
	}
	return t, nil
}

// Render executes the "main" layout with the named page's content.
func (t *Templates) Render(w io.Writer, page string, data PageData) error {
	tmpl, ok := t.pages[page]
	if !ok {
		return fmt.Errorf("unknown page template %q", page)
	}
	return tmpl.ExecuteTemplate(w, "main", data)
}

// layeredFS resolves names against each layer in order.
type layeredFS []fs.FS

func (l layeredFS) Open(name string) (fs.File, error) {
	for _, layer := range l {
		f, err := layer.Open(name)
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}

// Assets returns the static asset layers, highest priority first: the
// project's static directory when present, then the embedded defaults.
func Assets(staticDir string) []fs.FS {
	embedded, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		return []fs.FS{os.DirFS(staticDir), embedded}
	}
	return []fs.FS{embedded}
}

// AssetFS merges the layers returned by Assets into one file system.
func AssetFS(layers []fs.FS) fs.FS {
	return layeredFS(layers)
}
