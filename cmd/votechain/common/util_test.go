package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePollID(t *testing.T) {
	id, err := ParsePollID("1")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	id, err = ParsePollID("1_000,000")
	require.NoError(t, err)
	require.Equal(t, uint64(1000000), id)

	_, err = ParsePollID("-1")
	require.Error(t, err)

	_, err = ParsePollID("showme")
	require.Error(t, err)
}

func TestListFlags(t *testing.T) {
	var l ListFlags
	require.NoError(t, l.Set("a=127.0.0.1:6379"))
	require.NoError(t, l.Set("b=127.0.0.1:6380"))

	require.Equal(t, ListFlags{"a=127.0.0.1:6379", "b=127.0.0.1:6380"}, l)
	require.Equal(t, "a=127.0.0.1:6379 b=127.0.0.1:6380", l.String())
	require.Equal(t, "list", l.Type())
}
