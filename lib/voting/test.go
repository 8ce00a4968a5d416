package voting

import (
	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
)

func TestMakePoll(config common.Config, pollID uint64, start, end int64) *Poll {
	return NewPoll(
		address.PollAddress(config.ProgramID, pollID),
		keypair.Random().Address(),
		pollID,
		start,
		end,
		"test poll",
	)
}

func TestMakeCandidate(config common.Config, poll *Poll, name string) *Candidate {
	return NewCandidate(
		address.CandidateAddress(config.ProgramID, poll.PollID, name),
		poll,
		name,
		poll.NextCandidateIndex(),
	)
}
