package ledger

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/observer"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
	"boscoin.io/votechain/lib/transition"
	"boscoin.io/votechain/lib/voting"
)

// TransitionChecker applies one well formed transition inside an open
// storage transaction. Any error discards the whole transaction.
type TransitionChecker struct {
	common.DefaultChecker

	Config     common.Config
	Policy     Policy
	Now        int64
	Committed  string
	Storage    *storage.LevelDBBackend
	Transition transition.Transition

	Poll      *voting.Poll
	Candidate *voting.Candidate
	Ballot    *voting.Ballot
	Receipt   Receipt

	// notifications are triggered once the storage transaction commits
	notifications []notification

	Log logging.Logger
}

type notification struct {
	event  string
	record interface{}
}

func (c *TransitionChecker) notify(record interface{}, events ...observer.Event) {
	c.notifications = append(c.notifications, notification{
		event:  observer.Events(events...),
		record: record,
	})
}

var TransitionCheckerFuncs = map[transition.Type][]common.CheckerFunc{
	transition.TypeCreatePoll: []common.CheckerFunc{
		CheckTransitionNotCommitted,
		CheckPollWindow,
		CheckPollNotExists,
		FinishCreatePoll,
		SaveReceipt,
	},
	transition.TypeRegisterCandidate: []common.CheckerFunc{
		CheckTransitionNotCommitted,
		LoadPoll,
		CheckCandidateNotExists,
		FinishRegisterCandidate,
		SaveReceipt,
	},
	transition.TypeCastVote: []common.CheckerFunc{
		CheckTransitionNotCommitted,
		LoadPoll,
		LoadCandidate,
		CheckVotingWindow,
		CheckOneVotePerSigner,
		FinishCastVote,
		SaveReceipt,
	},
}

// CheckTransitionNotCommitted rejects a replay of a committed transition.
func CheckTransitionNotCommitted(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)

	var exists bool
	if exists, err = ExistsReceipt(checker.Storage, checker.Transition.GetHash()); err != nil {
		return
	} else if exists {
		checker.Log.Debug("transition already committed")
		return errors.TransitionAlreadyExists.Clone().SetData("hash", checker.Transition.GetHash())
	}

	return
}

func CheckPollWindow(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	if !checker.Policy.RequireValidWindow {
		return
	}

	body := checker.Transition.Payload().(transition.CreatePoll)
	if body.PollStart >= body.PollEnd {
		return errors.WithAddress(errors.InvalidPollWindow, body.Poll).
			SetData("poll_start", body.PollStart).
			SetData("poll_end", body.PollEnd)
	}

	return
}

func CheckPollNotExists(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	body := checker.Transition.Payload().(transition.CreatePoll)

	var exists bool
	if exists, err = voting.ExistsPoll(checker.Storage, body.Poll); err != nil {
		return
	} else if exists {
		return errors.WithAddress(errors.PollAlreadyExists, body.Poll)
	}

	return
}

func FinishCreatePoll(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	body := checker.Transition.Payload().(transition.CreatePoll)

	poll := voting.NewPoll(
		body.Poll,
		checker.Transition.Source(),
		body.PollID,
		body.PollStart,
		body.PollEnd,
		body.Description,
	)
	if err = poll.Save(checker.Storage); err != nil {
		return
	}
	checker.Poll = poll

	checker.notify(
		poll,
		observer.NewEvent(observer.ResourcePoll, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, poll.Address),
	)
	checker.Log.Debug("poll created", "poll", poll.Address)

	return
}

func LoadPoll(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	target := checker.Transition.Payload().(transition.CandidateTarget)

	checker.Poll, err = voting.GetPoll(checker.Storage, target.TargetPoll())

	return
}

func CheckCandidateNotExists(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	target := checker.Transition.Payload().(transition.CandidateTarget)

	var exists bool
	if exists, err = voting.ExistsCandidate(checker.Storage, target.TargetCandidate()); err != nil {
		return
	} else if exists {
		return errors.WithAddress(errors.CandidateAlreadyExists, target.TargetCandidate())
	}

	return
}

func FinishRegisterCandidate(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	body := checker.Transition.Payload().(transition.RegisterCandidate)

	candidate := voting.NewCandidate(
		body.Candidate,
		checker.Poll,
		body.CandidateName,
		checker.Poll.NextCandidateIndex(),
	)
	if err = candidate.Save(checker.Storage); err != nil {
		return
	}
	if err = checker.Poll.Save(checker.Storage); err != nil {
		return
	}
	checker.Candidate = candidate

	checker.notify(
		candidate,
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionAddress, candidate.Address),
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionPoll, candidate.Poll),
	)
	checker.notify(
		checker.Poll,
		observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, checker.Poll.Address),
	)
	checker.Log.Debug(
		"candidate registered",
		"candidate", candidate.Address,
		"poll", candidate.Poll,
		"index", candidate.Index,
	)

	return
}

func LoadCandidate(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	target := checker.Transition.Payload().(transition.CandidateTarget)

	checker.Candidate, err = voting.GetCandidate(checker.Storage, target.TargetCandidate())

	return
}

func CheckVotingWindow(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	if !checker.Policy.EnforceVotingWindow {
		return
	}

	if err = checker.Poll.CheckWindow(checker.Now); err != nil {
		return err.(*errors.Error).SetData("address", checker.Poll.Address)
	}

	return
}

func CheckOneVotePerSigner(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)
	if !checker.Policy.OneVotePerSigner {
		return
	}

	ballotAddress := address.BallotAddress(
		checker.Config.ProgramID,
		checker.Poll.PollID,
		checker.Transition.Source(),
	)

	var exists bool
	if exists, err = voting.ExistsBallot(checker.Storage, ballotAddress); err != nil {
		return
	} else if exists {
		return errors.WithAddress(errors.AlreadyVoted, ballotAddress)
	}

	checker.Ballot = voting.NewBallot(
		ballotAddress,
		checker.Poll.PollID,
		checker.Transition.Source(),
		checker.Candidate.Address,
		checker.Transition.GetHash(),
	)

	return
}

func FinishCastVote(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)

	if err = checker.Candidate.AddVote(); err != nil {
		return
	}
	if err = checker.Candidate.Save(checker.Storage); err != nil {
		return
	}

	if checker.Ballot != nil {
		if err = checker.Ballot.Save(checker.Storage); err != nil {
			return
		}
		checker.notify(
			checker.Ballot,
			observer.NewEvent(observer.ResourceBallot, observer.ConditionAddress, checker.Ballot.Address),
			observer.NewEvent(observer.ResourceBallot, observer.ConditionPoll, checker.Poll.Address),
		)
	}

	checker.notify(
		checker.Candidate,
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionAll, ""),
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionAddress, checker.Candidate.Address),
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionPoll, checker.Candidate.Poll),
	)
	checker.Log.Debug(
		"vote cast",
		"candidate", checker.Candidate.Address,
		"votes", checker.Candidate.CandidateVotes,
	)

	return
}

// SaveReceipt writes the receipt and moves the ledger height; it must be
// the last step of every transition.
func SaveReceipt(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*TransitionChecker)

	var height uint64
	if height, err = GetHeight(checker.Storage); err != nil {
		return
	}
	height++

	receipt := NewReceipt(checker.Transition, height, checker.Committed)

	if err = receipt.Save(checker.Storage); err != nil {
		return
	}
	if err = setHeight(checker.Storage, height); err != nil {
		return
	}
	checker.Receipt = receipt

	return
}
