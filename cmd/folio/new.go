package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"folio/internal/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new site or post",
}

var newSiteCmd = &cobra.Command{
	Use:   "site <dir>",
	Short: "Create a new site scaffold",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return scaffold.CreateNewSite(cmd.OutOrStdout(), args[0])
	},
}

var newPostCmd = &cobra.Command{
	Use:   "post <title>",
	Short: "Create a draft post from the archetype",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := configSource()
		if err != nil {
			return err
		}
		path, err := scaffold.CreateNewPost(src, flags.root, strings.Join(args, " "), time.Now())
		if err != nil {
			return err
		}
		cmd.Println("Created:", path)
		return nil
	},
}

func init() {
	newCmd.AddCommand(newSiteCmd, newPostCmd)
	rootCmd.AddCommand(newCmd)
}
