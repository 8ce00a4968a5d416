package ledger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/common/observer"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
	"boscoin.io/votechain/lib/transition"
	"boscoin.io/votechain/lib/voting"
)

type testLedger struct {
	*Ledger
	t  *testing.T
	kp *keypair.Full
}

func newTestLedger(t *testing.T, policy Policy) *testLedger {
	return &testLedger{Ledger: NewTestLedger(policy), t: t, kp: keypair.Random()}
}

func (tl *testLedger) submit(payload transition.Payload) (Receipt, error) {
	tr := transition.TestMakeTransition(tl.config, tl.kp, payload)
	return tl.Submit(context.Background(), tr)
}

func (tl *testLedger) createPoll(pollID uint64, description string) {
	_, err := tl.submit(transition.NewCreatePoll(tl.config, pollID, TestPollStart, TestPollEnd, description))
	require.NoError(tl.t, err)
}

func (tl *testLedger) register(pollID uint64, name string) {
	_, err := tl.submit(transition.NewRegisterCandidate(tl.config, pollID, name))
	require.NoError(tl.t, err)
}

func (tl *testLedger) vote(pollID uint64, name string) {
	_, err := tl.submit(transition.NewCastVote(tl.config, pollID, name))
	require.NoError(tl.t, err)
}

func TestScenarioCreatePoll(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "Human Rights Justice")

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, uint64(1), poll.PollID)
	require.Equal(t, TestPollStart, poll.PollStart)
	require.Equal(t, TestPollEnd, poll.PollEnd)
	require.Equal(t, "Human Rights Justice", poll.Description)
	require.Equal(t, uint64(0), poll.CandidateAmount)
	require.Equal(t, tl.kp.Address(), poll.Creator)
	require.Equal(t, address.PollAddress(tl.config.ProgramID, 1), poll.Address)
}

func TestScenarioRegisterCandidates(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "Human Rights Justice")
	tl.register(1, "Alice")
	tl.register(1, "Sumiel")

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, uint64(2), poll.CandidateAmount)

	alice, err := tl.GetCandidateByName(1, "Alice")
	require.NoError(t, err)
	require.Equal(t, uint64(0), alice.CandidateVotes)
	require.Equal(t, uint64(1), alice.PollID)
	require.Equal(t, poll.Address, alice.Poll)
	require.Equal(t, uint64(0), alice.Index)

	candidates, err := tl.GetCandidates(poll.Address, nil)
	require.NoError(t, err)
	require.Equal(t, 2, len(candidates))
	require.Equal(t, "Alice", candidates[0].CandidateName)
	require.Equal(t, "Sumiel", candidates[1].CandidateName)
}

func TestScenarioCastVote(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(2, "")
	tl.register(2, "Alice")
	tl.vote(2, "Alice")

	alice, err := tl.GetCandidateByName(2, "Alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1), alice.CandidateVotes)

	// registering again fails and changes nothing
	_, err = tl.submit(transition.NewRegisterCandidate(tl.config, 2, "Alice"))
	require.True(t, errors.Is(err, errors.CandidateAlreadyExists))
	require.Equal(t, errors.KindAlreadyExists, errors.KindOf(err))
	require.Equal(t, alice.Address, err.(*errors.Error).GetData("address"))

	poll, err := tl.GetPollByID(2)
	require.NoError(t, err)
	require.Equal(t, uint64(1), poll.CandidateAmount)

	alice, err = tl.GetCandidateByName(2, "Alice")
	require.NoError(t, err)
	require.Equal(t, uint64(1), alice.CandidateVotes)
}

func TestCreatePollTwice(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "first")
	tl.register(1, "Alice")

	_, err := tl.submit(transition.NewCreatePoll(tl.config, 1, TestPollStart-100, TestPollEnd+100, "second"))
	require.True(t, errors.Is(err, errors.PollAlreadyExists))

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, "first", poll.Description)
	require.Equal(t, TestPollStart, poll.PollStart)
	require.Equal(t, uint64(1), poll.CandidateAmount)
}

func TestRegisterCandidateCounts(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")

	n := 20
	for i := 0; i < n; i++ {
		tl.register(1, fmt.Sprintf("candidate-%d", i))
	}

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, uint64(n), poll.CandidateAmount)

	candidates, err := tl.GetCandidates(poll.Address, nil)
	require.NoError(t, err)
	require.Equal(t, n, len(candidates))
	for i, c := range candidates {
		require.Equal(t, uint64(i), c.Index)
		require.Equal(t, fmt.Sprintf("candidate-%d", i), c.CandidateName)
	}
}

func TestRegisterCandidateWithoutPoll(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	_, err := tl.submit(transition.NewRegisterCandidate(tl.config, 1, "Alice"))
	require.True(t, errors.Is(err, errors.PollNotFound))
	require.Equal(t, errors.KindNotFound, errors.KindOf(err))

	exists, err := ExistsReceipt(tl.st, "")
	require.NoError(t, err)
	require.False(t, exists)

	height, err := tl.Height()
	require.NoError(t, err)
	require.Equal(t, uint64(0), height)
}

func TestCastVoteCounts(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")
	tl.register(1, "Sumiel")

	m := 7
	for i := 0; i < m; i++ {
		tl.vote(1, "Alice")
	}
	tl.vote(1, "Sumiel")

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(m), alice.CandidateVotes)
	sumiel, _ := tl.GetCandidateByName(1, "Sumiel")
	require.Equal(t, uint64(1), sumiel.CandidateVotes)
}

func TestCastVoteMissingRecords(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	_, err := tl.submit(transition.NewCastVote(tl.config, 1, "Alice"))
	require.True(t, errors.Is(err, errors.PollNotFound))

	tl.createPoll(1, "")
	_, err = tl.submit(transition.NewCastVote(tl.config, 1, "Alice"))
	require.True(t, errors.Is(err, errors.CandidateNotFound))
	require.Equal(t, address.CandidateAddress(tl.config.ProgramID, 1, "Alice"), err.(*errors.Error).GetData("address"))
}

func TestCastVoteWindow(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")

	tl.SetClock(common.NewFixedClock(time.Unix(TestPollStart-1, 0)))
	_, err := tl.submit(transition.NewCastVote(tl.config, 1, "Alice"))
	require.True(t, errors.Is(err, errors.PollNotStarted))
	require.Equal(t, errors.KindRejected, errors.KindOf(err))

	tl.SetClock(common.NewFixedClock(time.Unix(TestPollEnd+1, 0)))
	_, err = tl.submit(transition.NewCastVote(tl.config, 1, "Alice"))
	require.True(t, errors.Is(err, errors.PollEnded))

	// both ends are inclusive
	tl.SetClock(common.NewFixedClock(time.Unix(TestPollStart, 0)))
	tl.vote(1, "Alice")
	tl.SetClock(common.NewFixedClock(time.Unix(TestPollEnd, 0)))
	tl.vote(1, "Alice")

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(2), alice.CandidateVotes)
}

func TestCastVoteWindowNotEnforced(t *testing.T) {
	tl := newTestLedger(t, PermissivePolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")

	tl.SetClock(common.NewFixedClock(time.Unix(TestPollEnd+1000, 0)))
	tl.vote(1, "Alice")

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(1), alice.CandidateVotes)
}

func TestCreatePollWindow(t *testing.T) {
	{
		tl := newTestLedger(t, DefaultPolicy())
		_, err := tl.submit(transition.NewCreatePoll(tl.config, 1, 100, 100, ""))
		require.True(t, errors.Is(err, errors.InvalidPollWindow))
		require.Equal(t, errors.KindMalformedInput, errors.KindOf(err))

		_, err = tl.submit(transition.NewCreatePoll(tl.config, 1, 200, 100, ""))
		require.True(t, errors.Is(err, errors.InvalidPollWindow))
		tl.st.Close()
	}

	{
		tl := newTestLedger(t, PermissivePolicy())
		_, err := tl.submit(transition.NewCreatePoll(tl.config, 1, 200, 100, ""))
		require.NoError(t, err)

		poll, err := tl.GetPollByID(1)
		require.NoError(t, err)
		require.Equal(t, int64(200), poll.PollStart)
		require.Equal(t, int64(100), poll.PollEnd)
		tl.st.Close()
	}
}

func TestOneVotePerSigner(t *testing.T) {
	policy := DefaultPolicy()
	policy.OneVotePerSigner = true

	tl := newTestLedger(t, policy)
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")
	tl.register(1, "Sumiel")
	tl.createPoll(2, "")
	tl.register(2, "Alice")

	tl.vote(1, "Alice")

	_, err := tl.submit(transition.NewCastVote(tl.config, 1, "Sumiel"))
	require.True(t, errors.Is(err, errors.AlreadyVoted))
	require.Equal(t, address.BallotAddress(tl.config.ProgramID, 1, tl.kp.Address()), err.(*errors.Error).GetData("address"))

	// the same signer in another poll
	tl.vote(2, "Alice")

	// another signer in the same poll
	other := keypair.Random()
	_, err = tl.Submit(context.Background(), transition.TestMakeCastVote(tl.config, other, 1, "Sumiel"))
	require.NoError(t, err)

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(1), alice.CandidateVotes)
	sumiel, _ := tl.GetCandidateByName(1, "Sumiel")
	require.Equal(t, uint64(1), sumiel.CandidateVotes)
}

func TestRepeatedVotesCountSeparately(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")
	tl.vote(1, "Alice")
	tl.vote(1, "Alice")

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(2), alice.CandidateVotes)
}

func TestReplayedTransition(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")

	tr := transition.TestMakeCastVote(tl.config, tl.kp, 1, "Alice")
	receipt, err := tl.Submit(context.Background(), tr)
	require.NoError(t, err)

	_, err = tl.Submit(context.Background(), tr)
	require.True(t, errors.Is(err, errors.TransitionAlreadyExists))

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(1), alice.CandidateVotes)

	fetched, err := tl.GetReceipt(tr.GetHash())
	require.NoError(t, err)
	require.Equal(t, receipt, fetched)
}

func TestTamperedTransitionRejected(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")

	tr := transition.TestMakeCastVote(tl.config, tl.kp, 1, "Alice")
	tr.B.Payload = transition.NewCastVote(tl.config, 2, "Alice")
	_, err := tl.Submit(context.Background(), tr)
	require.True(t, errors.Is(err, errors.HashMismatch))

	tr = transition.TestMakeCastVote(tl.config, tl.kp, 1, "Alice")
	tr.H.Signature = ""
	_, err = tl.Submit(context.Background(), tr)
	require.True(t, errors.Is(err, errors.InvalidSignature))

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(0), alice.CandidateVotes)
}

// Names are stored as JSON, so text which is not valid UTF-8 would not
// derive back to its own address.
func TestInvalidTextRejected(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	_, err := tl.submit(transition.NewCreatePoll(tl.config, 1, TestPollStart, TestPollEnd, "\xff"))
	require.True(t, errors.Is(err, errors.InvalidText))
	require.Equal(t, errors.KindMalformedInput, errors.KindOf(err))

	tl.createPoll(1, "")
	for _, name := range []string{"\xff", "\xfe"} {
		_, err = tl.submit(transition.NewRegisterCandidate(tl.config, 1, name))
		require.True(t, errors.Is(err, errors.InvalidText), name)
	}

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), poll.CandidateAmount)

	candidates, err := tl.GetCandidates(poll.Address, nil)
	require.NoError(t, err)
	require.Equal(t, 0, len(candidates))
}

// A failure in the last step discards the candidate, its index entry and
// the poll counter written before it.
func TestRegisterCandidateAtomic(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")

	// occupy the receipt slot of the next height
	require.NoError(t, tl.st.New(GetReceiptHeightKey(2), "occupied"))

	_, err := tl.submit(transition.NewRegisterCandidate(tl.config, 1, "Alice"))
	require.Error(t, err)

	_, err = tl.GetCandidateByName(1, "Alice")
	require.True(t, errors.Is(err, errors.CandidateNotFound))

	poll, err := tl.GetPollByID(1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), poll.CandidateAmount)

	candidates, err := tl.GetCandidates(poll.Address, nil)
	require.NoError(t, err)
	require.Equal(t, 0, len(candidates))

	height, _ := tl.Height()
	require.Equal(t, uint64(1), height)
}

func TestReceipts(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tr := transition.TestMakeCreatePoll(tl.config, tl.kp, 1, TestPollStart, TestPollEnd)
	receipt, err := tl.Submit(context.Background(), tr)
	require.NoError(t, err)

	require.Equal(t, tr.GetHash(), receipt.Hash)
	require.Equal(t, transition.TypeCreatePoll, receipt.Type)
	require.Equal(t, tl.kp.Address(), receipt.Source)
	require.Equal(t, []string{address.PollAddress(tl.config.ProgramID, 1)}, receipt.Addresses)
	require.Equal(t, uint64(1), receipt.Height)
	require.Equal(t, common.FormatISO8601(time.Unix(TestNow, 0)), receipt.Committed)

	byHeight, err := tl.GetReceiptByHeight(1)
	require.NoError(t, err)
	require.Equal(t, receipt, byHeight)

	_, err = tl.GetReceipt("unknown")
	require.True(t, errors.Is(err, errors.TransitionNotFound))
	_, err = tl.GetReceiptByHeight(2)
	require.True(t, errors.Is(err, errors.TransitionNotFound))
}

func TestSubmitCanceledContext(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tl.Submit(ctx, transition.TestMakeCreatePoll(tl.config, tl.kp, 1, TestPollStart, TestPollEnd))
	require.Equal(t, context.Canceled, err)

	_, err = tl.GetPollByID(1)
	require.True(t, errors.Is(err, errors.PollNotFound))
}

func TestSubmitClosedLedger(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.Close()
	_, err := tl.submit(transition.NewCreatePoll(tl.config, 1, TestPollStart, TestPollEnd, ""))
	require.True(t, errors.Is(err, errors.LedgerClosed))
}

func TestConcurrentVotes(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")

	n := 30
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tl.Submit(context.Background(), transition.TestMakeCastVote(tl.config, keypair.Random(), 1, "Alice"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	alice, _ := tl.GetCandidateByName(1, "Alice")
	require.Equal(t, uint64(n), alice.CandidateVotes)

	height, _ := tl.Height()
	require.Equal(t, uint64(n+2), height)
}

func TestGetCandidatesPollNotFound(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	_, err := tl.GetCandidates(address.PollAddress(tl.config.ProgramID, 1), nil)
	require.True(t, errors.Is(err, errors.PollNotFound))
}

func TestGetCandidatesMissingCandidate(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")
	tl.register(1, "Sumiel")

	sumiel := address.CandidateAddress(tl.config.ProgramID, 1, "Sumiel")
	require.NoError(t, tl.st.Remove(voting.GetCandidateKey(sumiel)))

	candidates, err := tl.GetCandidates(address.PollAddress(tl.config.ProgramID, 1), nil)
	require.True(t, errors.Is(err, errors.CandidateNotFound))
	require.Nil(t, candidates)
}

func TestGetCandidatesListOptions(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	for _, name := range []string{"a", "b", "c", "d"} {
		tl.register(1, name)
	}
	pollAddress := address.PollAddress(tl.config.ProgramID, 1)

	candidates, err := tl.GetCandidates(pollAddress, &storage.ListOptions{Reverse: true, Limit: 2})
	require.NoError(t, err)
	require.Equal(t, 2, len(candidates))
	require.Equal(t, "d", candidates[0].CandidateName)
	require.Equal(t, "c", candidates[1].CandidateName)
}

func TestObserverAfterCommit(t *testing.T) {
	tl := newTestLedger(t, DefaultPolicy())
	defer tl.st.Close()

	tl.createPoll(1, "")
	tl.register(1, "Alice")
	pollAddress := address.PollAddress(tl.config.ProgramID, 1)

	candidates := make(chan *voting.Candidate, 10)
	event := observer.NewEvent(observer.ResourceCandidate, observer.ConditionPoll, pollAddress).String()
	onFunc := func(args ...interface{}) {
		candidates <- args[0].(*voting.Candidate)
	}
	observer.RecordObserver.On(event, onFunc)
	defer observer.RecordObserver.Off(event, onFunc)

	receipts := make(chan Receipt, 10)
	transitionEvent := observer.NewEvent(observer.ResourceTransition, observer.ConditionType, string(transition.TypeCastVote)).String()
	onTransition := func(args ...interface{}) {
		receipts <- args[0].(Receipt)
	}
	observer.TransitionObserver.On(transitionEvent, onTransition)
	defer observer.TransitionObserver.Off(transitionEvent, onTransition)

	tl.vote(1, "Alice")

	select {
	case c := <-candidates:
		require.Equal(t, "Alice", c.CandidateName)
		require.Equal(t, uint64(1), c.CandidateVotes)
	case <-time.After(time.Second):
		require.Fail(t, "candidate event not triggered")
	}

	select {
	case r := <-receipts:
		require.Equal(t, transition.TypeCastVote, r.Type)
	case <-time.After(time.Second):
		require.Fail(t, "transition event not triggered")
	}

	// rejected transitions trigger nothing
	tl.SetClock(common.NewFixedClock(time.Unix(TestPollEnd+1, 0)))
	_, err := tl.submit(transition.NewCastVote(tl.config, 1, "Alice"))
	require.Error(t, err)

	select {
	case <-candidates:
		require.Fail(t, "rejected vote triggered an event")
	case <-time.After(100 * time.Millisecond):
	}
}
