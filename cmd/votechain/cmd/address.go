package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
)

var (
	addressCmd         *cobra.Command
	flagAddressProgram string = common.GetENVValue("VOTECHAIN_PROGRAM_ID", common.DefaultProgramID)
)

func init() {
	addressCmd = &cobra.Command{
		Use:   "address",
		Short: "Derive the address of a poll or a candidate",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	pollAddressCmd := &cobra.Command{
		Use:   "poll <poll id>",
		Short: "Print the address of a poll",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			s, err := deriveAddress(flagAddressProgram, args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<poll id>", err)
			}
			fmt.Println(s)
		},
	}

	candidateAddressCmd := &cobra.Command{
		Use:   "candidate <poll id> <candidate name>",
		Short: "Print the address of a candidate",
		Args:  cobra.MinimumNArgs(2),
		Run: func(c *cobra.Command, args []string) {
			s, err := deriveAddress(flagAddressProgram, args)
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<poll id>", err)
			}
			fmt.Println(s)
		},
	}

	addressCmd.PersistentFlags().StringVar(&flagAddressProgram, "program-id", flagAddressProgram, "program id")

	addressCmd.AddCommand(pollAddressCmd)
	addressCmd.AddCommand(candidateAddressCmd)
	rootCmd.AddCommand(addressCmd)
}

// deriveAddress is the poll address for `<poll id>`, the candidate address
// for `<poll id> <candidate name>`.
func deriveAddress(programID string, args []string) (string, error) {
	pollID, err := cmdcommon.ParsePollID(args[0])
	if err != nil {
		return "", err
	}

	if len(args) < 2 {
		return address.PollAddress([]byte(programID), pollID), nil
	}

	return address.CandidateAddress([]byte(programID), pollID, strings.Join(args[1:], " ")), nil
}
