package common

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequentialUUID(t *testing.T) {
	var ids []string
	for i := 0; i < 1000; i++ {
		ids = append(ids, GetUniqueIDFromUUID())
	}

	require.Equal(t, 1000, len(ids))
	require.NotEqual(t, ids[0], ids[1])
}

func TestInStringArray(t *testing.T) {
	ids := []string{GenerateUUID(), GenerateUUID(), GenerateUUID()}
	sorted := make([]string, len(ids))
	copy(sorted, ids)
	sort.Strings(sorted)

	index, found := InStringArray(ids, ids[1])
	require.True(t, found)
	require.Equal(t, 1, index)

	index, found = InStringArray(ids, "not-there")
	require.False(t, found)
	require.Equal(t, -1, index)
}

func TestGetENVValue(t *testing.T) {
	key := "VOTECHAIN_UNITTEST_ENV"
	os.Unsetenv(key)
	require.Equal(t, "default", GetENVValue(key, "default"))

	os.Setenv(key, "")
	defer os.Unsetenv(key)
	require.Equal(t, "", GetENVValue(key, "default"))
}

func TestEncodeJSONValueWithoutEscapeHTML(t *testing.T) {
	b, err := EncodeJSONValue(map[string]string{"description": "<Human Rights & Justice>"})
	require.NoError(t, err)
	require.Equal(t, `{"description":"<Human Rights & Justice>"}`, string(b))

	var decoded map[string]string
	require.NoError(t, DecodeJSONValue(b, &decoded))
	require.Equal(t, "<Human Rights & Justice>", decoded["description"])
}

func TestUint64ToLittleEndian(t *testing.T) {
	require.Equal(t, []byte{1, 0, 0, 0, 0, 0, 0, 0}, Uint64ToLittleEndian(1))
	require.Equal(t, []byte{0x01, 0x02, 0, 0, 0, 0, 0, 0}, Uint64ToLittleEndian(0x0201))
}
