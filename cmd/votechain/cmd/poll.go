package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/votechain/cmd/votechain/cmd/poll"
)

var (
	pollCmd *cobra.Command
)

func init() {
	pollCmd = &cobra.Command{
		Use:   "poll",
		Short: "Create and inspect polls",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	pollCmd.AddCommand(poll.CreateCmd)
	pollCmd.AddCommand(poll.ShowCmd)
	rootCmd.AddCommand(pollCmd)
}
