package voting

import (
	"fmt"
	"math"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
)

// Candidate is stored by its derived address and indexed under its poll in
// registration order. models
//  * 'address'
// 	- 'candidate-<Candidate.Address>': `Candidate`
//  * 'poll'
// 	- 'poll-candidates-<Candidate.Poll>-<Candidate.Index>': `Candidate.Address`
const (
	CandidatePrefixAddress string = "candidate-"
	CandidatePrefixPoll    string = "poll-candidates-"
)

type Candidate struct {
	CandidateName  string `json:"candidate_name"`
	PollID         uint64 `json:"poll_id"`
	CandidateVotes uint64 `json:"candidate_votes"`
	Address        string `json:"address"`
	Poll           string `json:"poll"`
	Index          uint64 `json:"index"`
}

func NewCandidate(address string, poll *Poll, name string, index uint64) *Candidate {
	return &Candidate{
		CandidateName:  name,
		PollID:         poll.PollID,
		CandidateVotes: 0,
		Address:        address,
		Poll:           poll.Address,
		Index:          index,
	}
}

func (c *Candidate) String() string {
	return string(common.MustMarshalJSON(c))
}

func (c *Candidate) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(c)
	return
}

func (c *Candidate) Deserialize(encoded []byte) (err error) {
	return common.DecodeJSONValue(encoded, c)
}

// Save writes the candidate; a new candidate also gets its poll index entry.
func (c *Candidate) Save(st *storage.LevelDBBackend) (err error) {
	key := GetCandidateKey(c.Address)

	var exists bool
	if exists, err = st.Has(key); err != nil {
		return
	}

	if exists {
		return st.Set(key, c)
	}

	return st.News(
		storage.Item{Key: key, Value: c},
		storage.Item{Key: GetPollCandidateKey(c.Poll, c.Index), Value: c.Address},
	)
}

func (c *Candidate) AddVote() error {
	if c.CandidateVotes == math.MaxUint64 {
		return errors.WithAddress(errors.VoteOverflow, c.Address)
	}
	c.CandidateVotes++

	return nil
}

func GetCandidateKey(address string) string {
	return fmt.Sprintf("%s%s", CandidatePrefixAddress, address)
}

func GetPollCandidatePrefix(pollAddress string) string {
	return fmt.Sprintf("%s%s-", CandidatePrefixPoll, pollAddress)
}

func GetPollCandidateKey(pollAddress string, index uint64) string {
	return fmt.Sprintf("%s%020d", GetPollCandidatePrefix(pollAddress), index)
}

func ExistsCandidate(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetCandidateKey(address))
}

func GetCandidate(st *storage.LevelDBBackend, address string) (c *Candidate, err error) {
	if err = st.Get(GetCandidateKey(address), &c); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.WithAddress(errors.CandidateNotFound, address)
		}
		return
	}

	return
}

// GetCandidateAddressesByPoll iterates the candidate addresses of a poll in
// registration order, or reversed with `options.Reverse`.
func GetCandidateAddressesByPoll(st *storage.LevelDBBackend, pollAddress string, options *storage.ListOptions) (func() (string, bool), func()) {
	iterFunc, closeFunc := st.GetIterator(GetPollCandidatePrefix(pollAddress), options)

	return (func() (string, bool) {
			item, hasNext := iterFunc()
			if !hasNext {
				return "", false
			}

			var address string
			common.DecodeJSONValue(item.Value, &address)
			return address, hasNext
		}), (func() {
			closeFunc()
		})
}

// GetCandidatesByPoll loads the candidates of GetCandidateAddressesByPoll. An
// index entry whose candidate can not be loaded ends the iteration with its
// error.
func GetCandidatesByPoll(st *storage.LevelDBBackend, pollAddress string, options *storage.ListOptions) (func() (*Candidate, bool, error), func()) {
	iterFunc, closeFunc := GetCandidateAddressesByPoll(st, pollAddress, options)

	return (func() (*Candidate, bool, error) {
			address, hasNext := iterFunc()
			if !hasNext {
				return nil, false, nil
			}

			c, err := GetCandidate(st, address)
			if err != nil {
				return nil, false, err
			}
			return c, hasNext, nil
		}), (func() {
			closeFunc()
		})
}
