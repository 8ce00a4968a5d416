package transition

import (
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
)

func TestMakeTransition(config common.Config, kp *keypair.Full, payload Payload) Transition {
	tr, err := NewTransition(kp.Address(), payload)
	if err != nil {
		panic(err)
	}
	if err = tr.Sign(kp, config.NetworkID); err != nil {
		panic(err)
	}

	return tr
}

func TestMakeCreatePoll(config common.Config, kp *keypair.Full, pollID uint64, start, end int64) Transition {
	return TestMakeTransition(config, kp, NewCreatePoll(config, pollID, start, end, "test poll"))
}

func TestMakeRegisterCandidate(config common.Config, kp *keypair.Full, pollID uint64, name string) Transition {
	return TestMakeTransition(config, kp, NewRegisterCandidate(config, pollID, name))
}

func TestMakeCastVote(config common.Config, kp *keypair.Full, pollID uint64, name string) Transition {
	return TestMakeTransition(config, kp, NewCastVote(config, pollID, name))
}
