package transition

import (
	"io"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/rlp"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
)

type CreatePoll struct {
	PollID      uint64 `json:"poll_id"`
	PollStart   int64  `json:"poll_start"`
	PollEnd     int64  `json:"poll_end"`
	Description string `json:"description"`
	Poll        string `json:"poll"`
}

func NewCreatePoll(config common.Config, pollID uint64, start, end int64, description string) CreatePoll {
	return CreatePoll{
		PollID:      pollID,
		PollStart:   start,
		PollEnd:     end,
		Description: description,
		Poll:        address.PollAddress(config.ProgramID, pollID),
	}
}

// IsWellFormed does not look at the window; whether `PollStart < PollEnd`
// is required is up to the ledger policy.
func (o CreatePoll) IsWellFormed(config common.Config) error {
	if len(o.Description) > config.DescriptionMaxLength {
		return errors.DescriptionTooLong.Clone().
			SetData("length", len(o.Description)).
			SetData("max", config.DescriptionMaxLength)
	}
	if !utf8.ValidString(o.Description) {
		return errors.WithAddress(errors.InvalidText, o.Poll).SetData("field", "description")
	}

	if expected := address.PollAddress(config.ProgramID, o.PollID); o.Poll != expected {
		return errors.WithAddress(errors.AddressMismatch, o.Poll).SetData("expected", expected)
	}

	return nil
}

func (o CreatePoll) Addresses() []string {
	return []string{o.Poll}
}

// EncodeRLP keeps the two's complement bits of the window, rlp does not
// encode signed integers.
func (o CreatePoll) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []interface{}{
		o.PollID,
		uint64(o.PollStart),
		uint64(o.PollEnd),
		o.Description,
		o.Poll,
	})
}
