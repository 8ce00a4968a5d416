package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/votechain/cmd/votechain/cmd/candidate"
)

var (
	candidateCmd *cobra.Command
)

func init() {
	candidateCmd = &cobra.Command{
		Use:   "candidate",
		Short: "Register and inspect candidates",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	candidateCmd.AddCommand(candidate.RegisterCmd)
	candidateCmd.AddCommand(candidate.ListCmd)
	candidateCmd.AddCommand(candidate.ShowCmd)
	rootCmd.AddCommand(candidateCmd)
}
