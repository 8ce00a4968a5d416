package transition

import (
	"unicode/utf8"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
)

type RegisterCandidate struct {
	CandidateName string `json:"candidate_name"`
	PollID        uint64 `json:"poll_id"`
	Poll          string `json:"poll"`
	Candidate     string `json:"candidate"`
}

func NewRegisterCandidate(config common.Config, pollID uint64, name string) RegisterCandidate {
	return RegisterCandidate{
		CandidateName: name,
		PollID:        pollID,
		Poll:          address.PollAddress(config.ProgramID, pollID),
		Candidate:     address.CandidateAddress(config.ProgramID, pollID, name),
	}
}

func (o RegisterCandidate) IsWellFormed(config common.Config) error {
	return checkCandidateTarget(config, o.PollID, o.CandidateName, o.Poll, o.Candidate)
}

func (o RegisterCandidate) Addresses() []string {
	return []string{o.Poll, o.Candidate}
}

func (o RegisterCandidate) TargetPoll() string {
	return o.Poll
}

func (o RegisterCandidate) TargetCandidate() string {
	return o.Candidate
}

func checkCandidateName(config common.Config, name string) error {
	if len(name) < 1 {
		return errors.CandidateNameEmpty
	}
	if len(name) > config.CandidateNameMaxLength {
		return errors.CandidateNameTooLong.Clone().
			SetData("length", len(name)).
			SetData("max", config.CandidateNameMaxLength)
	}

	return nil
}

func checkCandidateTarget(config common.Config, pollID uint64, name, poll, candidate string) error {
	if err := checkCandidateName(config, name); err != nil {
		return err
	}
	if !utf8.ValidString(name) {
		return errors.WithAddress(errors.InvalidText, poll).SetData("field", "candidate_name")
	}

	if expected := address.PollAddress(config.ProgramID, pollID); poll != expected {
		return errors.WithAddress(errors.AddressMismatch, poll).SetData("expected", expected)
	}
	if expected := address.CandidateAddress(config.ProgramID, pollID, name); candidate != expected {
		return errors.WithAddress(errors.AddressMismatch, candidate).SetData("expected", expected)
	}

	return nil
}
