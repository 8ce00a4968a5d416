package voting

import (
	"fmt"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
)

// Ballot records that a voter voted in a poll; one per (poll, voter).
//  * 'address'
// 	- 'ballot-<Ballot.Address>': `Ballot`
const BallotPrefixAddress string = "ballot-"

type Ballot struct {
	PollID     uint64 `json:"poll_id"`
	Voter      string `json:"voter"`
	Candidate  string `json:"candidate"`
	Transition string `json:"transition"`
	Address    string `json:"address"`
}

func NewBallot(address string, pollID uint64, voter, candidate, transition string) *Ballot {
	return &Ballot{
		PollID:     pollID,
		Voter:      voter,
		Candidate:  candidate,
		Transition: transition,
		Address:    address,
	}
}

func (b *Ballot) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(b)
	return
}

// Save never overwrites; a second ballot at the same address is
// `errors.AlreadyVoted`.
func (b *Ballot) Save(st *storage.LevelDBBackend) error {
	err := st.New(GetBallotKey(b.Address), b)
	if errors.Is(err, errors.StorageRecordAlreadyExists) {
		return errors.WithAddress(errors.AlreadyVoted, b.Address)
	}

	return err
}

func GetBallotKey(address string) string {
	return fmt.Sprintf("%s%s", BallotPrefixAddress, address)
}

func ExistsBallot(st *storage.LevelDBBackend, address string) (bool, error) {
	return st.Has(GetBallotKey(address))
}

func GetBallot(st *storage.LevelDBBackend, address string) (b *Ballot, err error) {
	err = st.Get(GetBallotKey(address), &b)
	return
}
