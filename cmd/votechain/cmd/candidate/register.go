package candidate

import (
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/transition"
)

var RegisterCmd *cobra.Command

func init() {
	RegisterCmd = &cobra.Command{
		Use:   "register <poll id> <candidate name>",
		Short: "Register a candidate to a poll",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			pollID, err := cmdcommon.ParsePollID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<poll id>", err)
			}

			config := flags.Config()
			payload := transition.NewRegisterCandidate(config, pollID, strings.Join(args[1:], " "))
			if err := payload.IsWellFormed(config); err != nil {
				cmdcommon.PrintFlagsError(c, "<candidate name>", err)
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

	flags.AddSubmitFlags(RegisterCmd.Flags())
}
