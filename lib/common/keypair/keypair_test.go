package keypair

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var networkID = []byte("votechain-test-network")

func TestSignatureRoundTrip(t *testing.T) {
	kp := Random()
	hash := "3Kd8GjvB1E8cGxAaFz2dPbJ9pLk1MqB5nZ"

	signature, err := MakeSignatureString(kp, networkID, hash)
	require.NoError(t, err)

	require.NoError(t, VerifySignature(kp.Address(), networkID, hash, signature))
}

func TestSignatureOtherNetwork(t *testing.T) {
	kp := Random()
	hash := "findme"

	signature, err := MakeSignatureString(kp, networkID, hash)
	require.NoError(t, err)

	require.Error(t, VerifySignature(kp.Address(), []byte("another-network"), hash, signature))
}

func TestSignatureOtherSigner(t *testing.T) {
	kp, other := Random(), Random()
	hash := "findme"

	signature, err := MakeSignatureString(kp, networkID, hash)
	require.NoError(t, err)

	require.Error(t, VerifySignature(other.Address(), networkID, hash, signature))
}

func TestIsAddress(t *testing.T) {
	kp := Random()

	require.True(t, IsAddress(kp.Address()))
	require.False(t, IsAddress(kp.Seed()))
	require.False(t, IsAddress("not-an-address"))
}
