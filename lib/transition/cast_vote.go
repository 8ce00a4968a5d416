package transition

import (
	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
)

type CastVote struct {
	CandidateName string `json:"candidate_name"`
	PollID        uint64 `json:"poll_id"`
	Poll          string `json:"poll"`
	Candidate     string `json:"candidate"`
}

func NewCastVote(config common.Config, pollID uint64, name string) CastVote {
	return CastVote{
		CandidateName: name,
		PollID:        pollID,
		Poll:          address.PollAddress(config.ProgramID, pollID),
		Candidate:     address.CandidateAddress(config.ProgramID, pollID, name),
	}
}

func (o CastVote) IsWellFormed(config common.Config) error {
	return checkCandidateTarget(config, o.PollID, o.CandidateName, o.Poll, o.Candidate)
}

func (o CastVote) Addresses() []string {
	return []string{o.Poll, o.Candidate}
}

func (o CastVote) TargetPoll() string {
	return o.Poll
}

func (o CastVote) TargetCandidate() string {
	return o.Candidate
}
