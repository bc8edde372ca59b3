package main

import (
	"github.com/spf13/cobra"

	"hassak.dev/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the portfolio in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		a := newApp(cfg, logger)
		return tui.Run(a.projects.Mount(), cfg.Title, cfg.Heading)
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
