package poll

import (
	"context"
	"io"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/client"
)

var (
	ShowCmd *cobra.Command

	flagStream bool
)

func init() {
	ShowCmd = &cobra.Command{
		Use:   "show <poll id>",
		Short: "Show a poll",
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

			if flagStream {
				err = streamPoll(cl, pollID)
			} else {
				var poll client.Poll
				if poll, err = cl.LoadPoll(pollID); err == nil {
					err = flags.Print(poll)
				}
			}

			if err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	flags.AddReadFlags(ShowCmd.Flags())
	ShowCmd.Flags().BoolVar(&flagStream, "stream", flagStream, "keep printing the updates of the poll")
}

// streamPoll prints the poll and its candidates as they change, until
// interrupted.
func streamPoll(cl *client.Client, pollID uint64) error {
	ctx, cancel := context.WithCancel(context.Background())

	var streamErr, printErr error
	var g run.Group
	{
		g.Add(func() error {
			streamErr = cl.StreamPoll(ctx, pollID, func(e client.PollEvent) {
				if e.Poll != nil {
					printErr = flags.Print(e.Poll)
				} else {
					printErr = flags.Print(e.Candidate)
				}
				if printErr != nil {
					cancel()
				}
			})
			return streamErr
		}, func(error) {
			cancel()
		})
	}
	{
		interrupted := make(chan struct{})
		g.Add(func() error {
			return cmdcommon.Interrupt(interrupted)
		}, func(error) {
			close(interrupted)
		})
	}

	g.Run()

	if streamErr != nil && streamErr != io.EOF {
		return streamErr
	}

	return printErr
}
