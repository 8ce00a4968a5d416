package poll

import (
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/transition"
)

var CreateCmd *cobra.Command

func init() {
	CreateCmd = &cobra.Command{
		Use:   "create <poll id> <poll start> <poll end> [<description>]",
		Short: "Create a poll",
		Args:  cobra.MinimumNArgs(3),
		Run: func(c *cobra.Command, args []string) {
			payload, err := parseCreateArgs(args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<args>", err)
			}

			receipt, err := flags.Submit(payload)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if err := flags.Print(receipt); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flags.AddSubmitFlags(CreateCmd.Flags())
}

func parseCreateArgs(args []string) (payload transition.CreatePoll, err error) {
	var pollID uint64
	if pollID, err = cmdcommon.ParsePollID(args[0]); err != nil {
		return
	}

	var start, end int64
	if start, err = parseTimestamp(args[1]); err != nil {
		return
	}
	if end, err = parseTimestamp(args[2]); err != nil {
		return
	}

	description := strings.Join(args[3:], " ")

	payload = transition.NewCreatePoll(flags.Config(), pollID, start, end, description)
	err = payload.IsWellFormed(flags.Config())

	return
}
