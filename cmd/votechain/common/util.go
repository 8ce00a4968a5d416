package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/votechain/lib/client"
	"boscoin.io/votechain/lib/errors"
)

func errorString(err error) string {
	switch e := err.(type) {
	case *errors.Error:
		return e.Message
	case client.Error:
		return e.Error()
	default:
		return err.Error()
	}
}

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// ParsePollID reads a poll id argument; separators like in "1_000" are
// skipped.
func ParsePollID(input string) (uint64, error) {
	s := strings.Replace(input, ",", "", -1)
	s = strings.Replace(s, "_", "", -1)

	return strconv.ParseUint(s, 10, 64)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
