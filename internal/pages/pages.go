// Package pages assembles the data each route's template consumes.
package pages

import (
	"net/http"

	"folio/internal/config"
	"folio/internal/content"
)

// ConfigProvider is the subset of config.Store the loaders read.
type ConfigProvider interface {
	Config() config.Document
	Projects() []config.Project
}

// PostCatalog is the subset of content.Catalog the loaders read.
type PostCatalog interface {
	ListPosts() []content.Post
	Post(slug string) (content.Post, bool)
}

// LayoutData is shared by every page: header, navigation, footer and meta tags.
type LayoutData struct {
	Site       config.Site       `json:"site"`
	Owner      config.Owner      `json:"owner"`
	Social     config.Social     `json:"social"`
	Navigation config.Navigation `json:"navigation"`
	Features   config.Features   `json:"features"`
	SEO        config.SEO        `json:"seo"`
	Theme      config.Theme      `json:"theme"`
	Contact    config.Contact    `json:"contact"`
}

type HomeData struct {
	Site     config.Site     `json:"site"`
	Owner    config.Owner    `json:"owner"`
	Skills   config.Skills   `json:"skills"`
	Features config.Features `json:"features"`
}

type ProjectsData struct {
	Site     config.Site      `json:"site"`
	Owner    config.Owner     `json:"owner"`
	Projects []config.Project `json:"projects"`
}

type BlogListData struct {
	Posts []content.Post `json:"posts"`
}

type BlogPostData struct {
	Post content.Post `json:"post"`
}

// NotFoundError reports a lookup miss with the HTTP status to render.
type NotFoundError struct {
	Status  int
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Loader builds page data from the config store and the post catalog.
type Loader struct {
	config  ConfigProvider
	catalog PostCatalog
}

func NewLoader(cfg ConfigProvider, catalog PostCatalog) *Loader {
	return &Loader{config: cfg, catalog: catalog}
}

func (l *Loader) Layout() LayoutData {
	doc := l.config.Config()
	return LayoutData{
		Site:       doc.Site,
		Owner:      doc.Owner,
		Social:     doc.Social,
		Navigation: doc.Navigation,
		Features:   doc.Features,
		SEO:        doc.SEO,
		Theme:      doc.Theme,
		Contact:    doc.Contact,
	}
}

func (l *Loader) Home() HomeData {
	doc := l.config.Config()
	return HomeData{Site: doc.Site, Owner: doc.Owner, Skills: doc.Skills, Features: doc.Features}
}

func (l *Loader) Projects() ProjectsData {
	doc := l.config.Config()
	return ProjectsData{Site: doc.Site, Owner: doc.Owner, Projects: l.config.Projects()}
}

func (l *Loader) BlogList() BlogListData {
	return BlogListData{Posts: l.catalog.ListPosts()}
}

// BlogPost returns the post for slug, or a *NotFoundError with status 404.
func (l *Loader) BlogPost(slug string) (BlogPostData, error) {
	post, ok := l.catalog.Post(slug)
	if !ok {
		return BlogPostData{}, &NotFoundError{Status: http.StatusNotFound, Message: "Post not found"}
	}
	return BlogPostData{Post: post}, nil
}
