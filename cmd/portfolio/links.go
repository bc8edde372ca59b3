package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print the resolved links of every project",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		defer logger.Sync()

		a := newApp(cfg, logger)
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tREPO\tPAGE\tREADME")
		for _, p := range a.projects.List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Name, p.Repo, orDash(p.RepoPageURL), orDash(p.RawReadmeURL))
		}
		return tw.Flush()
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
