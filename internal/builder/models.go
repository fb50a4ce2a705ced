// internal/builder/models.go
package builder

import (
	"folio/internal/pages"
	"folio/internal/theme"
)

// PageData is the struct passed to templates. Data holds the route's own
// loader output (pages.HomeData, pages.BlogPostData, ...).
type PageData struct {
	Layout      pages.LayoutData
	Route       string
	Title       string
	Description string
	Theme       theme.Theme
	HTMLClass   string
	Static      bool
	Data        any
}

// NewPageData snapshots the controller's theme into the page. The class
// attribute is produced by the theme.Mirror subscriber only.
func NewPageData(layout pages.LayoutData, ctrl *theme.Controller, route, title string, data any) PageData {
	p := PageData{
		Layout: layout,
		Route:  route,
		Title:  title,
		Theme:  theme.Light,
		Data:   data,
	}
	if !layout.Features.EnableDarkMode {
		return p
	}
	classes := theme.ClassSet{}
	unsubscribe := ctrl.Subscribe(theme.Mirror(classes))
	defer unsubscribe()

	p.Theme = ctrl.Current()
	p.HTMLClass = classes.String()
	return p
}
