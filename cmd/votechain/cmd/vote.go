package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/transition"
)

var (
	voteCmd   *cobra.Command
	voteFlags = cmdcommon.NewClientFlags()
)

func init() {
	voteCmd = &cobra.Command{
		Use:   "vote <poll id> <candidate name>",
		Short: "Cast a vote for a candidate",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			payload, err := parseVoteArgs(voteFlags, args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<args>", err)
			}

			receipt, err := voteFlags.Submit(payload)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if err := voteFlags.Print(receipt); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	voteFlags.AddSubmitFlags(voteCmd.Flags())
	rootCmd.AddCommand(voteCmd)
}

func parseVoteArgs(flags *cmdcommon.ClientFlags, args []string) (payload transition.CastVote, err error) {
	var pollID uint64
	if pollID, err = cmdcommon.ParsePollID(args[0]); err != nil {
		return
	}

	payload = transition.NewCastVote(flags.Config(), pollID, strings.Join(args[1:], " "))
	err = payload.IsWellFormed(flags.Config())

	return
}
