package common

import (
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"
)

type hashableRecord struct {
	Name  string
	Count uint64
}

type unsignedOnly struct {
	I int64
}

func TestMakeObjectHash(t *testing.T) {
	a := hashableRecord{Name: "Alice", Count: 1}
	b := hashableRecord{Name: "Alice", Count: 2}

	ha, err := MakeObjectHash(a)
	require.NoError(t, err)
	require.Equal(t, 32, len(ha))

	hb, err := MakeObjectHash(b)
	require.NoError(t, err)
	require.NotEqual(t, ha, hb)

	again, err := MakeObjectHash(a)
	require.NoError(t, err)
	require.Equal(t, ha, again)
}

func TestMakeObjectHashString(t *testing.T) {
	s, err := MakeObjectHashString(hashableRecord{Name: "Sumiel"})
	require.NoError(t, err)
	require.Equal(t, MustMakeObjectHash(hashableRecord{Name: "Sumiel"}), base58.Decode(s))
}

func TestMakeObjectHashSignedInteger(t *testing.T) {
	_, err := MakeObjectHash(unsignedOnly{I: -1})
	require.Error(t, err)
}
