package common

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnvFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "votechain-env")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "node.env")
	require.NoError(t, ioutil.WriteFile(
		path,
		[]byte("VOTECHAIN_TEST_NETWORK_ID=findme\nVOTECHAIN_TEST_KEPT=fromfile\n"),
		0600,
	))

	os.Setenv("VOTECHAIN_TEST_KEPT", "fromenv")
	defer os.Unsetenv("VOTECHAIN_TEST_KEPT")
	defer os.Unsetenv("VOTECHAIN_TEST_NETWORK_ID")

	require.NoError(t, LoadEnvFile(path))
	require.Equal(t, "findme", os.Getenv("VOTECHAIN_TEST_NETWORK_ID"))
	require.Equal(t, "fromenv", os.Getenv("VOTECHAIN_TEST_KEPT"))

	require.Error(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
}
