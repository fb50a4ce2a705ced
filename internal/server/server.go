// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"folio/internal/builder"
	xlog "folio/internal/log"
	"folio/internal/metrics"
	"folio/internal/pages"
	"folio/internal/theme"
)

// Reloader drops cached configuration; implemented by *config.Store.
type Reloader interface {
	Reload()
}

// Options configures the HTTP site.
type Options struct {
	Addr string
	// LiveReload enables the /ws endpoint, the injected reload script and
	// the file watcher.
	LiveReload bool
	// WatchPaths are the files and directories that trigger a reload.
	WatchPaths []string
	// Templates returns the template file system; it is re-read on reload.
	Templates func() fs.FS
	Assets    fs.FS
	// ToggleLimit is the number of theme toggles allowed per IP per minute.
	ToggleLimit int
}

// Server renders the site on every request.
type Server struct {
	opts      Options
	config    Reloader
	loader    *pages.Loader
	templates atomic.Pointer[builder.Templates]
	hub       *Hub
	logger    zerolog.Logger
}

// New parses the templates and wires the server.
func New(cfg Reloader, loader *pages.Loader, opts Options) (*Server, error) {
	if opts.Templates == nil {
		opts.Templates = builder.DefaultTemplates
	}
	if opts.ToggleLimit <= 0 {
		opts.ToggleLimit = 30
	}
	s := &Server{
		opts:   opts,
		config: cfg,
		loader: loader,
		hub:    newHub(),
		logger: xlog.WithComponent("server"),
	}
	if err := s.reloadTemplates(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) reloadTemplates() error {
	tmpl, err := builder.LoadTemplates(s.opts.Templates())
	if err != nil {
		return err
	}
	s.templates.Store(tmpl)
	return nil
}

// Handler returns the site's router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(clientHints)

	r.Get("/", s.handleHome)
	r.Get("/projects", s.handleProjects)
	r.Get("/blog", s.handleBlogList)
	r.Get("/blog/{slug}", s.handleBlogPost)
	r.With(httprate.Limit(
		s.opts.ToggleLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
		}),
	)).Post("/theme/toggle", s.handleThemeToggle)

	if s.opts.Assets != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.opts.Assets))))
	}
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	if s.opts.LiveReload {
		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			serveWs(s.hub, w, r)
		})
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.renderNotFound(w, r, &pages.NotFoundError{Status: http.StatusNotFound, Message: "Page not found"})
	})
	return r
}

// Run serves until ctx is cancelled. With LiveReload it also watches the
// project for changes.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.opts.LiveReload {
		w, err := newWatcher(s.opts.WatchPaths, s.logger)
		if err != nil {
			return fmt.Errorf("could not create file watcher: %w", err)
		}
		defer w.Close()
		go w.run(ctx, s.onChange)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.opts.Addr).Bool("live_reload", s.opts.LiveReload).Msg("serving site")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// onChange drops cached config, re-parses templates and tells browsers to reload.
func (s *Server) onChange(path string) {
	s.logger.Info().Str("path", path).Msg("change detected, reloading")
	s.config.Reload()
	if err := s.reloadTemplates(); err != nil {
		s.logger.Error().Err(err).Msg("template reload failed, keeping previous templates")
		return
	}
	s.hub.broadcastMessage([]byte("reload"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, builder.PageHome, "", s.loader.Home())
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, builder.PageProjects, "Projects", s.loader.Projects())
}

func (s *Server) handleBlogList(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, builder.PageBlog, "Blog", s.loader.BlogList())
}

func (s *Server) handleBlogPost(w http.ResponseWriter, r *http.Request) {
	data, err := s.loader.BlogPost(chi.URLParam(r, "slug"))
	var nf *pages.NotFoundError
	if errors.As(err, &nf) {
		s.renderNotFound(w, r, nf)
		return
	}
	s.renderPage(w, r, http.StatusOK, builder.PagePost, builder.PageBlog, data.Post.Title, data.Post.Description, data)
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := theme.ForRequest(w, r).Toggle()
	s.logger.Debug().Stringer("theme", next).Msg("theme toggled")
	http.Redirect(w, r, backTo(r), http.StatusSeeOther)
}

// backTo returns the local path of the Referer, or "/". Only the path and
// query are kept so the redirect never leaves the site.
func backTo(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || ref.Path[0] != '/' || (len(ref.Path) > 1 && ref.Path[1] == '/') {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	out := ref.Path
	if ref.RawQuery != "" {
		out += "?" + ref.RawQuery
	}
	return out
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, nf *pages.NotFoundError) {
	s.render(w, r, nf.Status, builder.PageNotFound, "Not found", nf)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	s.renderPage(w, r, status, page, page, title, "", data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page, route, title, description string, data any) {
	ctrl := theme.ForRequest(w, r)
	pd := builder.NewPageData(s.loader.Layout(), ctrl, route, title, data)
	pd.Description = description

	var buf bytes.Buffer
	if err := s.templates.Load().Render(&buf, page, pd); err != nil {
		s.logger.Error().Err(err).Str("page", page).Msg("failed to render page")
		metrics.RecordPageRendered(page, "error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	if s.opts.LiveReload {
		body = bytes.Replace(body, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	}

	outcome := "ok"
	if status == http.StatusNotFound {
		outcome = "not_found"
	}
	metrics.RecordPageRendered(page, outcome)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", fmt.Sprint(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// clientHints asks the browser to send its colour scheme preference.
func clientHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", theme.ClientHintHeader)
		w.Header().Add("Vary", theme.ClientHintHeader)
		w.Header().Add("Vary", "Cookie")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

const liveReloadScript = `
<script>
  (function() {
    var socket = new WebSocket("ws://" + window.location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection error. Please restart 'folio serve'.");
    };
  })();
</script>
`
