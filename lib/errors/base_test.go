package errors

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	require.Equal(t, PollAlreadyExists, PollAlreadyExists)

	e := PollAlreadyExists.Clone()
	e0 := e.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e.Code = 200
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
		require.Empty(t, PollAlreadyExists.Data)
	}
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(PollAlreadyExists)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(PollAlreadyExists)
		require.NoError(t, err)

		e := PollAlreadyExists.Clone()
		e.SetData("findme", "killme")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}

func TestErrorsWithAddress(t *testing.T) {
	e := WithAddress(CandidateNotFound, "findme")

	require.Equal(t, "findme", e.GetData("address"))
	require.Nil(t, CandidateNotFound.GetData("address"))
	require.True(t, Is(e, CandidateNotFound))
	require.False(t, Is(e, PollNotFound))
	require.False(t, Is(fmt.Errorf("killme"), PollNotFound))
}

func TestErrorsKind(t *testing.T) {
	cases := []struct {
		err  *Error
		kind Kind
	}{
		{PollAlreadyExists, KindAlreadyExists},
		{CandidateAlreadyExists, KindAlreadyExists},
		{PollNotFound, KindNotFound},
		{CandidateNotFound, KindNotFound},
		{DescriptionTooLong, KindMalformedInput},
		{AddressMismatch, KindMalformedInput},
		{PollEnded, KindRejected},
		{StorageCoreError, KindInternal},
	}

	for _, c := range cases {
		require.Equal(t, c.kind, c.err.Kind(), c.err.Message)
		require.Equal(t, c.kind, WithAddress(c.err, "a").Kind(), c.err.Message)
	}

	require.Equal(t, KindInternal, KindOf(fmt.Errorf("unknown")))
	require.Equal(t, KindNotFound, KindOf(PollNotFound))
}

func TestErrorsKindsRegistered(t *testing.T) {
	// every catalogue entry has its own code
	require.Equal(t, 25, len(kinds))
}
