package storage

import (
	"fmt"
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
)

func TestNewConfigFromString(t *testing.T) {
	config, err := NewConfigFromString("memory://")
	require.NoError(t, err)
	require.Equal(t, "memory", config.Scheme)
	require.Equal(t, "memory://", config.String())

	config, err = NewConfigFromString("file:///tmp/votechain-db")
	require.NoError(t, err)
	require.Equal(t, "file", config.Scheme)
	require.Equal(t, "/tmp/votechain-db", config.Path)

	_, err = NewConfigFromString("file://")
	require.Error(t, err)

	_, err = NewConfigFromString("redis://localhost")
	require.Error(t, err)
}

func TestLevelDBBackendInitFileStorage(t *testing.T) {
	path, _ := ioutil.TempDir("", "votechain")
	defer CleanDB(path)

	config, err := NewConfigFromString("file://" + path)
	require.NoError(t, err)

	st, err := NewStorage(config)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.New("showme", "findme"))
}

func TestLevelDBBackendNew(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	key := "showme"
	input := map[string]string{"90": "99", "91": "91"}
	require.NoError(t, st.New(key, input))

	fetched := map[string]string{}
	require.NoError(t, st.Get(key, &fetched))
	require.Equal(t, input, fetched)

	err := st.New(key, input)
	require.Equal(t, errors.StorageRecordAlreadyExists, err)
}

func TestLevelDBBackendNews(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	var items []Item
	for i := 0; i < 10; i++ {
		items = append(items, Item{Key: fmt.Sprintf("key%d", i), Value: i})
	}
	require.NoError(t, st.News(items...))

	for i := 0; i < 10; i++ {
		var fetched int
		require.NoError(t, st.Get(fmt.Sprintf("key%d", i), &fetched))
		require.Equal(t, i, fetched)
	}

	err := st.News(Item{Key: "new", Value: 1}, Item{Key: "key0", Value: 1})
	require.Equal(t, errors.StorageRecordAlreadyExists, err)

	exists, err := st.Has("new")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestLevelDBBackendSetAndRemove(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	require.Equal(t, errors.StorageRecordDoesNotExist, st.Set("killme", 1))

	require.NoError(t, st.New("killme", 1))
	require.NoError(t, st.Set("killme", 2))

	var fetched int
	require.NoError(t, st.Get("killme", &fetched))
	require.Equal(t, 2, fetched)

	require.NoError(t, st.Remove("killme"))
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Get("killme", &fetched))
	require.Equal(t, errors.StorageRecordDoesNotExist, st.Remove("killme"))
}

func TestLevelDBBackendTransaction(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	{ // discarded
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.True(t, ts.IsTransaction())
		require.NoError(t, ts.New("a", 1))

		exists, _ := ts.Has("a")
		require.True(t, exists)
		exists, _ = st.Has("a")
		require.False(t, exists)

		require.NoError(t, ts.Discard())
		exists, _ = st.Has("a")
		require.False(t, exists)
	}

	{ // committed
		ts, err := st.OpenTransaction()
		require.NoError(t, err)
		require.NoError(t, ts.New("a", 1))
		require.NoError(t, ts.Commit())

		exists, _ := st.Has("a")
		require.True(t, exists)
	}

	require.Error(t, st.Commit())
	require.Error(t, st.Discard())
}

func TestLevelDBBackendTransactionNested(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	defer ts.Discard()

	_, err = ts.OpenTransaction()
	require.Error(t, err)
}

func TestLevelDBBackendIterator(t *testing.T) {
	st := NewTestStorage()
	defer st.Close()

	for i := 0; i < 10; i++ {
		require.NoError(t, st.New(fmt.Sprintf("item-%03d", i), i))
	}
	require.NoError(t, st.New("other-000", 100))

	collect := func(option *ListOptions) (values []int) {
		iterFunc, closeFunc := st.GetIterator("item-", option)
		defer closeFunc()
		for {
			item, hasNext := iterFunc()
			if !hasNext {
				break
			}
			var v int
			require.NoError(t, common.DecodeJSONValue(item.Value, &v))
			values = append(values, v)
		}
		return
	}

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, collect(nil))
	require.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, collect(&ListOptions{Reverse: true}))
	require.Equal(t, []int{0, 1, 2}, collect(&ListOptions{Limit: 3}))
	require.Equal(t, []int{4, 5}, collect(&ListOptions{Cursor: []byte("item-003"), Limit: 2}))
	require.Equal(t, []int{2, 1, 0}, collect(&ListOptions{Cursor: []byte("item-003"), Reverse: true}))
}
