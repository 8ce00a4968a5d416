package ledger

import (
	"context"
	"sync"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/observer"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/metrics"
	"boscoin.io/votechain/lib/storage"
	"boscoin.io/votechain/lib/transition"
	"boscoin.io/votechain/lib/voting"
)

// Ledger applies transitions one at a time. Each transition runs in its own
// storage transaction and is either fully committed or fully discarded.
// Reads go to the committed state and do not wait for a running transition.
type Ledger struct {
	sync.Mutex

	st     *storage.LevelDBBackend
	config common.Config
	policy Policy
	clock  common.Clock
	closed bool

	log logging.Logger
}

func NewLedger(st *storage.LevelDBBackend, config common.Config, policy Policy) *Ledger {
	return &Ledger{
		st:     st,
		config: config,
		policy: policy,
		clock:  common.DefaultClock,
		log:    log.New(logging.Ctx{"program": string(config.ProgramID)}),
	}
}

func (l *Ledger) SetClock(clock common.Clock) *Ledger {
	l.clock = clock
	return l
}

func (l *Ledger) Config() common.Config {
	return l.config
}

func (l *Ledger) Policy() Policy {
	return l.policy
}

func (l *Ledger) Storage() *storage.LevelDBBackend {
	return l.st
}

func (l *Ledger) Now() time.Time {
	return l.clock()
}

// Close stops accepting transitions; the one running finishes first. The
// storage is left open for the owner to close.
func (l *Ledger) Close() {
	l.Lock()
	defer l.Unlock()

	l.closed = true
}

// Submit validates and applies `tr`. The context is only checked before the
// transition is admitted; once admitted it runs to commit or discard.
func (l *Ledger) Submit(ctx context.Context, tr transition.Transition) (receipt Receipt, err error) {
	select {
	case <-ctx.Done():
		return Receipt{}, ctx.Err()
	default:
	}

	begin := time.Now()
	t := string(tr.Type())
	logger := l.log.New(logging.Ctx{"transition": tr.GetHash(), "type": t, "source": tr.Source()})

	defer func() {
		metrics.Ledger.ObserveDurationSeconds(begin, t)
		if err != nil {
			metrics.Ledger.AddTransition(t, string(errors.KindOf(err)))
			logger.Debug("transition rejected", "error", err)
			return
		}
		metrics.Ledger.AddTransition(t, metrics.ResultCommitted)
	}()

	if err = tr.IsWellFormed(l.config); err != nil {
		return
	}

	var checker *TransitionChecker
	if checker, err = l.apply(tr, logger); err != nil {
		return
	}

	l.afterCommit(checker)
	logger.Debug("transition committed", "height", checker.Receipt.Height)

	return checker.Receipt, nil
}

func (l *Ledger) apply(tr transition.Transition, logger logging.Logger) (checker *TransitionChecker, err error) {
	funcs, found := TransitionCheckerFuncs[tr.Type()]
	if !found {
		return nil, errors.UnknownTransitionType.Clone().SetData("type", string(tr.Type()))
	}

	l.Lock()
	defer l.Unlock()

	if l.closed {
		return nil, errors.LedgerClosed
	}

	var ts *storage.LevelDBBackend
	if ts, err = l.st.OpenTransaction(); err != nil {
		return
	}

	now := l.clock()
	checker = &TransitionChecker{
		DefaultChecker: common.DefaultChecker{Funcs: funcs},
		Config:         l.config,
		Policy:         l.policy,
		Now:            now.Unix(),
		Committed:      common.FormatISO8601(now),
		Storage:        ts,
		Transition:     tr,
		Log:            logger,
	}

	if err = common.RunChecker(checker); err != nil {
		ts.Discard()
		return nil, err
	}

	if err = ts.Commit(); err != nil {
		ts.Discard()
		logger.Error("failed to commit transition", "error", err)
		return nil, err
	}

	return checker, nil
}

func (l *Ledger) afterCommit(checker *TransitionChecker) {
	metrics.Ledger.SetHeight(checker.Receipt.Height)
	switch checker.Transition.Type() {
	case transition.TypeCreatePoll:
		metrics.Ledger.AddPoll()
	case transition.TypeRegisterCandidate:
		metrics.Ledger.AddCandidate()
	case transition.TypeCastVote:
		metrics.Ledger.AddVote()
	}

	for _, n := range checker.notifications {
		observer.RecordObserver.Trigger(n.event, n.record)
	}

	observer.TransitionObserver.Trigger(
		observer.Events(
			observer.NewEvent(observer.ResourceTransition, observer.ConditionAll, ""),
			observer.NewEvent(observer.ResourceTransition, observer.ConditionType, string(checker.Receipt.Type)),
		),
		checker.Receipt,
	)
}

func (l *Ledger) Height() (uint64, error) {
	return GetHeight(l.st)
}

func (l *Ledger) GetReceipt(hash string) (Receipt, error) {
	return GetReceipt(l.st, hash)
}

func (l *Ledger) GetReceiptByHeight(height uint64) (Receipt, error) {
	return GetReceiptByHeight(l.st, height)
}

func (l *Ledger) GetPoll(pollAddress string) (*voting.Poll, error) {
	return voting.GetPoll(l.st, pollAddress)
}

func (l *Ledger) GetPollByID(pollID uint64) (*voting.Poll, error) {
	return l.GetPoll(address.PollAddress(l.config.ProgramID, pollID))
}

func (l *Ledger) GetCandidate(candidateAddress string) (*voting.Candidate, error) {
	return voting.GetCandidate(l.st, candidateAddress)
}

func (l *Ledger) GetCandidateByName(pollID uint64, name string) (*voting.Candidate, error) {
	return l.GetCandidate(address.CandidateAddress(l.config.ProgramID, pollID, name))
}

// GetCandidates lists the candidates of an existing poll in registration
// order.
func (l *Ledger) GetCandidates(pollAddress string, options *storage.ListOptions) (candidates []*voting.Candidate, err error) {
	var exists bool
	if exists, err = voting.ExistsPoll(l.st, pollAddress); err != nil {
		return
	} else if !exists {
		return nil, errors.WithAddress(errors.PollNotFound, pollAddress)
	}

	iterFunc, closeFunc := voting.GetCandidatesByPoll(l.st, pollAddress, options)
	defer closeFunc()

	candidates = []*voting.Candidate{}
	for {
		c, hasNext, iterErr := iterFunc()
		if iterErr != nil {
			return nil, iterErr
		}
		if !hasNext {
			break
		}
		candidates = append(candidates, c)
	}

	return
}
