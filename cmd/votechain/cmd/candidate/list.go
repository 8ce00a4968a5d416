package candidate

import (
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/client"
)

var (
	ListCmd *cobra.Command

	flagLimit   uint64
	flagCursor  string
	flagReverse bool
)

func init() {
	ListCmd = &cobra.Command{
		Use:   "list <poll id>",
		Short: "List the candidates of a poll in registration order",
		Args:  cobra.ExactArgs(1),
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

			page, err := cl.LoadCandidates(pollID, listQueries()...)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if err := flags.Print(page.Embedded.Records); err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flags.AddReadFlags(ListCmd.Flags())
	ListCmd.Flags().Uint64Var(&flagLimit, "limit", flagLimit, "maximum number of candidates; the node default if 0")
	ListCmd.Flags().StringVar(&flagCursor, "cursor", flagCursor, "index of the candidate to list after")
	ListCmd.Flags().BoolVar(&flagReverse, "reverse", flagReverse, "latest registration first")
}

func listQueries() (queries []client.Q) {
	if flagLimit > 0 {
		queries = append(queries, client.Q{Key: client.QueryLimit, Value: strconv.FormatUint(flagLimit, 10)})
	}
	if len(flagCursor) > 0 {
		queries = append(queries, client.Q{Key: client.QueryCursor, Value: flagCursor})
	}
	if flagReverse {
		queries = append(queries, client.Q{Key: client.QueryReverse, Value: "true"})
	}

	return
}
