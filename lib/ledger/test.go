package ledger

import (
	"time"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/storage"
)

const (
	TestPollStart int64 = 1762368705
	TestPollEnd   int64 = 1762368905

	// TestNow is inside [TestPollStart, TestPollEnd]
	TestNow int64 = 1762368800
)

func NewTestLedger(policy Policy) *Ledger {
	return NewLedger(storage.NewTestStorage(), common.NewTestConfig(), policy).
		SetClock(common.NewFixedClock(time.Unix(TestNow, 0)))
}
