package transition

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/errors"
)

func TestTransitionWellFormed(t *testing.T) {
	config := common.NewTestConfig()
	kp := keypair.Random()

	for _, tr := range []Transition{
		TestMakeCreatePoll(config, kp, 1, 1762368705, 1762368905),
		TestMakeRegisterCandidate(config, kp, 1, "alice"),
		TestMakeCastVote(config, kp, 1, "alice"),
	} {
		require.NoError(t, tr.IsWellFormed(config), tr.Type())
	}
}

func TestTransitionJSON(t *testing.T) {
	config := common.NewTestConfig()
	kp := keypair.Random()

	tr := TestMakeRegisterCandidate(config, kp, 7, "alice")
	b, err := tr.Serialize()
	require.NoError(t, err)

	var raw map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Equal(t, "register-candidate", raw["B"]["type"])
	require.Equal(t, kp.Address(), raw["B"]["source"])
	require.Equal(t, tr.H.Hash, raw["H"]["hash"])

	decoded, err := NewTransitionFromJSON(b)
	require.NoError(t, err)
	require.Equal(t, tr, decoded)
	require.NoError(t, decoded.IsWellFormed(config))
}

func TestTransitionJSONUnknownType(t *testing.T) {
	b := []byte(`{"H":{"version":"1"},"B":{"source":"G","type":"transfer","body":{}}}`)
	_, err := NewTransitionFromJSON(b)
	require.True(t, errors.Is(err, errors.UnknownTransitionType))

	_, err = NewTransitionFromJSON([]byte(`{"H":`))
	require.True(t, errors.Is(err, errors.BadRequestParameter))
}

func TestTransitionSameRequestDifferentHash(t *testing.T) {
	config := common.NewTestConfig()
	kp := keypair.Random()

	a := TestMakeCastVote(config, kp, 1, "alice")
	b := TestMakeCastVote(config, kp, 1, "alice")
	require.NotEqual(t, a.GetHash(), b.GetHash())
}

func TestTransitionHashCoversWindow(t *testing.T) {
	config := common.NewTestConfig()

	a := NewCreatePoll(config, 1, -5, 10, "")
	b := NewCreatePoll(config, 1, 5, 10, "")
	require.NotEqual(t, common.MustMakeObjectHash(a), common.MustMakeObjectHash(b))
}

func TestTransitionTampered(t *testing.T) {
	config := common.NewTestConfig()
	kp := keypair.Random()

	{ // body changed after signing
		tr := TestMakeCastVote(config, kp, 1, "alice")
		tr.B.Payload = NewCastVote(config, 1, "bob")
		require.True(t, errors.Is(tr.IsWellFormed(config), errors.HashMismatch))
	}

	{ // signed by another key
		tr := TestMakeCastVote(config, kp, 1, "alice")
		other := keypair.Random()
		tr.H.Signature, _ = keypair.MakeSignatureString(other, config.NetworkID, tr.H.Hash)
		require.True(t, errors.Is(tr.IsWellFormed(config), errors.InvalidSignature))
	}

	{ // signed for another network
		tr := TestMakeCastVote(config, kp, 1, "alice")
		require.NoError(t, tr.Sign(kp, []byte("another-network")))
		require.True(t, errors.Is(tr.IsWellFormed(config), errors.InvalidSignature))
	}

	{ // type does not match the payload
		tr := TestMakeCastVote(config, kp, 1, "alice")
		tr.B.Type = TypeRegisterCandidate
		require.NoError(t, tr.Sign(kp, config.NetworkID))
		require.True(t, errors.Is(tr.IsWellFormed(config), errors.UnknownTransitionType))
	}

	{ // version
		tr := TestMakeCastVote(config, kp, 1, "alice")
		tr.H.Version = "2"
		require.True(t, errors.Is(tr.IsWellFormed(config), errors.InvalidTransitionVersion))
	}
}

func TestTransitionInvalidSource(t *testing.T) {
	config := common.NewTestConfig()
	kp := keypair.Random()

	tr := TestMakeCastVote(config, kp, 1, "alice")
	tr.B.Source = kp.Seed()
	require.True(t, errors.Is(tr.IsWellFormed(config), errors.InvalidSource))

	tr.B.Source = "showme"
	require.True(t, errors.Is(tr.IsWellFormed(config), errors.InvalidSource))
}

func TestCreatePollWellFormed(t *testing.T) {
	config := common.NewTestConfig()

	require.NoError(t, NewCreatePoll(config, 1, 0, 10, strings.Repeat("a", config.DescriptionMaxLength)).IsWellFormed(config))

	err := NewCreatePoll(config, 1, 0, 10, strings.Repeat("a", config.DescriptionMaxLength+1)).IsWellFormed(config)
	require.True(t, errors.Is(err, errors.DescriptionTooLong))

	err = NewCreatePoll(config, 1, 0, 10, "Human \xff Rights").IsWellFormed(config)
	require.True(t, errors.Is(err, errors.InvalidText))
	require.Equal(t, "description", err.(*errors.Error).GetData("field"))

	// the window is not checked here
	require.NoError(t, NewCreatePoll(config, 1, 10, 10, "").IsWellFormed(config))

	o := NewCreatePoll(config, 1, 0, 10, "")
	o.Poll = address.PollAddress(config.ProgramID, 2)
	err = o.IsWellFormed(config)
	require.True(t, errors.Is(err, errors.AddressMismatch))
	require.Equal(t, o.Poll, err.(*errors.Error).GetData("address"))
}

func TestCandidateNameWellFormed(t *testing.T) {
	config := common.NewTestConfig()

	require.NoError(t, NewRegisterCandidate(config, 1, strings.Repeat("a", config.CandidateNameMaxLength)).IsWellFormed(config))

	err := NewRegisterCandidate(config, 1, strings.Repeat("a", config.CandidateNameMaxLength+1)).IsWellFormed(config)
	require.True(t, errors.Is(err, errors.CandidateNameTooLong))

	err = NewRegisterCandidate(config, 1, "").IsWellFormed(config)
	require.True(t, errors.Is(err, errors.CandidateNameEmpty))

	err = NewCastVote(config, 1, "").IsWellFormed(config)
	require.True(t, errors.Is(err, errors.CandidateNameEmpty))

	for _, name := range []string{"\xff", "\xfe", "Alice\xc3"} {
		err = NewRegisterCandidate(config, 1, name).IsWellFormed(config)
		require.True(t, errors.Is(err, errors.InvalidText), name)
		require.Equal(t, address.PollAddress(config.ProgramID, 1), err.(*errors.Error).GetData("address"))

		err = NewCastVote(config, 1, name).IsWellFormed(config)
		require.True(t, errors.Is(err, errors.InvalidText), name)
	}
	require.NoError(t, NewRegisterCandidate(config, 1, "수미엘").IsWellFormed(config))
}

func TestCandidateTargetMismatch(t *testing.T) {
	config := common.NewTestConfig()

	o := NewRegisterCandidate(config, 1, "alice")
	o.Candidate = address.CandidateAddress(config.ProgramID, 1, "bob")
	require.True(t, errors.Is(o.IsWellFormed(config), errors.AddressMismatch))

	v := NewCastVote(config, 1, "alice")
	v.Poll = address.PollAddress(config.ProgramID, 2)
	require.True(t, errors.Is(v.IsWellFormed(config), errors.AddressMismatch))
}
