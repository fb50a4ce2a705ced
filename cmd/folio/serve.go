package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folio/internal/builder"
	"folio/internal/config"
	"folio/internal/scaffold"
	"folio/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Serve renders every page on request. In development mode drafts are
listed, and edits to the config, posts, templates or static files reload
connected browsers.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 1313, "port for the HTTP server")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	dev := mode == config.Development
	store, loader, err := openSite(dev)
	if err != nil {
		return err
	}

	srv, err := server.New(store, loader, server.Options{
		Addr:       fmt.Sprintf(":%d", servePort),
		LiveReload: dev,
		WatchPaths: []string{
			projectPath(config.SiteFile),
			projectPath(config.ProjectsFile),
			projectPath(scaffold.BlogDir),
			projectPath(templateDir),
			projectPath(staticDir),
		},
		Templates: func() fs.FS { return builder.TemplatesDir(projectPath(templateDir)) },
		Assets:    builder.AssetFS(builder.Assets(projectPath(staticDir))),
	})
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
