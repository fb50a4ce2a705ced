package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/content"
	xlog "folio/internal/log"
	"folio/internal/pages"
	"folio/internal/scaffold"
)

const (
	templateDir = "templates"
	staticDir   = "static"
	outputDir   = "public"
)

var version = "dev"

var flags struct {
	mode     string
	root     string
	source   string
	logLevel string
	unsafe   bool
}

// mode is resolved once per invocation from --mode, then FOLIO_MODE.
var mode config.Mode

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - a personal portfolio and blog site",
	Long: `folio serves a portfolio and blog built from site.toml, projects.toml
and Markdown posts in content/blog, or exports it as static HTML.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(filepath.Join(flags.root, ".env")); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		raw := flags.mode
		if raw == "" {
			raw = os.Getenv("FOLIO_MODE")
		}
		m, err := config.ParseMode(raw)
		if err != nil {
			return err
		}
		mode = m
		xlog.Configure(xlog.Config{
			Level:  flags.logLevel,
			Output: cmd.ErrOrStderr(),
			Pretty: mode == config.Development,
		})
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.mode, "mode", "", "development or production (default $FOLIO_MODE, then development)")
	pf.StringVar(&flags.root, "root", ".", "project root directory")
	pf.StringVar(&flags.source, "source", "file", "config source: file, or bundled for the copies compiled into the binary")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (default $LOG_LEVEL, then info)")
	pf.BoolVar(&flags.unsafe, "unsafe", false, "disable HTML sanitization of post bodies")
}

func configSource() (config.Source, error) {
	switch flags.source {
	case "file":
		return config.NewFileSource(flags.root, mode), nil
	case "bundled":
		return config.BundledSource{}, nil
	}
	return nil, fmt.Errorf("unknown config source %q (want file or bundled)", flags.source)
}

// openSite wires the config store and post catalog for the project root.
func openSite(includeDrafts bool) (*config.Store, *pages.Loader, error) {
	src, err := configSource()
	if err != nil {
		return nil, nil, err
	}
	store := config.NewStore(src)
	store.Initialize()
	catalog := content.NewCatalog(os.DirFS(projectPath(scaffold.BlogDir)), content.Options{
		Unsafe:        flags.unsafe,
		IncludeDrafts: includeDrafts,
	})
	return store, pages.NewLoader(store, catalog), nil
}

func projectPath(elem ...string) string {
	return filepath.Join(append([]string{flags.root}, elem...)...)
}
