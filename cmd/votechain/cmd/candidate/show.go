package candidate

import (
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
)

var ShowCmd *cobra.Command

func init() {
	ShowCmd = &cobra.Command{
		Use:   "show <poll id> <candidate name>",
		Short: "Show a candidate and its votes",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			pollID, err := cmdcommon.ParsePollID(args[0])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<poll id>", err)
			}

			cl, err := flags.Client()
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			defer cl.HTTP.Close()

			candidate, err := cl.LoadCandidate(pollID, strings.Join(args[1:], " "))
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if err := flags.Print(candidate); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flags.AddReadFlags(ShowCmd.Flags())
}
