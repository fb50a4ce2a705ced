package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/builder"
)

var genOutput string

var genCmd = &cobra.Command{
	Use:     "gen",
	Aliases: []string{"build"},
	Short:   "Generate the static site",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, loader, err := openSite(false)
		if err != nil {
			return err
		}
		tmpl, err := builder.LoadTemplates(builder.TemplatesDir(projectPath(templateDir)))
		if err != nil {
			return fmt.Errorf("failed to load templates: %w", err)
		}
		out := genOutput
		if out == "" {
			out = projectPath(outputDir)
		}
		n, err := builder.BuildSite(out, loader, tmpl, builder.Assets(projectPath(staticDir)), builder.BuildOptions{CleanDestination: true})
		if err != nil {
			return fmt.Errorf("site generation failed: %w", err)
		}
		cmd.Printf("Generated %d pages in %s\n", n, out)
		return nil
	},
}

func init() {
	genCmd.Flags().StringVarP(&genOutput, "output", "o", "", "output directory (default <root>/public)")
	rootCmd.AddCommand(genCmd)
}
