package poll

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/errors"
)

func TestParseTimestamp(t *testing.T) {
	ts, err := parseTimestamp("1762368705")
	require.NoError(t, err)
	require.Equal(t, int64(1762368705), ts)

	ts, err = parseTimestamp("2025-11-05T18:51:45Z")
	require.NoError(t, err)
	require.Equal(t, int64(1762368705), ts)

	_, err = parseTimestamp("tomorrow")
	require.Error(t, err)
}

func TestParseCreateArgs(t *testing.T) {
	payload, err := parseCreateArgs([]string{"1", "1762368705", "2025-11-05T18:55:05Z", "where", "to", "eat"})
	require.NoError(t, err)
	require.Equal(t, uint64(1), payload.PollID)
	require.Equal(t, int64(1762368705), payload.PollStart)
	require.Equal(t, int64(1762368905), payload.PollEnd)
	require.Equal(t, "where to eat", payload.Description)
	require.Equal(t, address.PollAddress(flags.Config().ProgramID, 1), payload.Poll)

	// an empty description is fine
	payload, err = parseCreateArgs([]string{"2", "1", "2"})
	require.NoError(t, err)
	require.Empty(t, payload.Description)

	_, err = parseCreateArgs([]string{"x", "1", "2"})
	require.Error(t, err)

	_, err = parseCreateArgs([]string{"1", "1", "end"})
	require.Error(t, err)

	_, err = parseCreateArgs([]string{"1", "1", "2", strings.Repeat("a", flags.Config().DescriptionMaxLength+1)})
	require.True(t, errors.Is(err, errors.DescriptionTooLong))
}
