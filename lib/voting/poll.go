package voting

import (
	"fmt"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
)

// Poll is stored by its derived address. models
//  * 'address'
// 	- 'poll-<Poll.Address>': `Poll`
const PollPrefixAddress string = "poll-"

type Poll struct {
	PollID          uint64 `json:"poll_id"`
	PollStart       int64  `json:"poll_start"`
	PollEnd         int64  `json:"poll_end"`
	Description     string `json:"description"`
	CandidateAmount uint64 `json:"candidate_amount"`
	Address         string `json:"address"`
	Creator         string `json:"creator"`
}

func NewPoll(address, creator string, pollID uint64, start, end int64, description string) *Poll {
	return &Poll{
		PollID:          pollID,
		PollStart:       start,
		PollEnd:         end,
		Description:     description,
		CandidateAmount: 0,
		Address:         address,
		Creator:         creator,
	}
}

func (p *Poll) String() string {
	return string(common.MustMarshalJSON(p))
}

func (p *Poll) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(p)
	return
}

func (p *Poll) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, p)
}

func (p *Poll) Save(st *storage.LevelDBBackend) (err error) {
	key := GetPollKey(p.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		return st.Set(key, p)
	}

	return st.New(key, p)
}

// NextCandidateIndex hands out the registration index of a new candidate and
// counts it.
func (p *Poll) NextCandidateIndex() uint64 {
	index := p.CandidateAmount
	p.CandidateAmount++

	return index
}

// CheckWindow reports whether `now`, in unix seconds, falls in
// [PollStart, PollEnd].
func (p *Poll) CheckWindow(now int64) error {
	if now < p.PollStart {
		return errors.PollNotStarted.Clone().SetData("poll_start", p.PollStart).SetData("now", now)
	}
	if now > p.PollEnd {
		return errors.PollEnded.Clone().SetData("poll_end", p.PollEnd).SetData("now", now)
	}

	return nil
}

func GetPollKey(address string) string {
	return fmt.Sprintf("%s%s", PollPrefixAddress, address)
}

func ExistsPoll(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetPollKey(address))
}

func GetPoll(st *storage.LevelDBBackend, address string) (p *Poll, err error) {
	if err = st.Get(GetPollKey(address), &p); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.WithAddress(errors.PollNotFound, address)
		}
		return
	}

	return
}
