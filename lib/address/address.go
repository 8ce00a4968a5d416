// Package address derives the deterministic record addresses of the ledger.
//
// An address is fully determined by the program id and an ordered list of
// seeds, so a poll or a candidate can be located without any lookup.
package address

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/sha3"

	"boscoin.io/votechain/lib/common"
)

const (
	Marker string = "ProgramDerivedAddress"
	Length int    = 32

	BallotSeed string = "ballot"
)

// Derive hashes every seed prefixed with its length, then the program id and
// the marker. The length prefix keeps ("ab", "c") apart from ("a", "bc").
func Derive(programID []byte, seeds ...[]byte) string {
	h := sha3.New256()

	prefix := make([]byte, binary.MaxVarintLen64)
	for _, seed := range seeds {
		n := binary.PutUvarint(prefix, uint64(len(seed)))
		h.Write(prefix[:n])
		h.Write(seed)
	}
	h.Write(programID)
	h.Write([]byte(Marker))

	return base58.Encode(h.Sum(nil))
}

func PollSeeds(pollID uint64) [][]byte {
	return [][]byte{common.Uint64ToLittleEndian(pollID)}
}

func CandidateSeeds(pollID uint64, name string) [][]byte {
	return [][]byte{common.Uint64ToLittleEndian(pollID), []byte(name)}
}

func BallotSeeds(pollID uint64, voter string) [][]byte {
	return [][]byte{common.Uint64ToLittleEndian(pollID), []byte(BallotSeed), []byte(voter)}
}

func PollAddress(programID []byte, pollID uint64) string {
	return Derive(programID, PollSeeds(pollID)...)
}

func CandidateAddress(programID []byte, pollID uint64, name string) string {
	return Derive(programID, CandidateSeeds(pollID, name)...)
}

func BallotAddress(programID []byte, pollID uint64, voter string) string {
	return Derive(programID, BallotSeeds(pollID, voter)...)
}

func IsValid(address string) bool {
	return len(base58.Decode(address)) == Length
}
