package ledger

import (
	"fmt"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/storage"
	"boscoin.io/votechain/lib/transition"
)

// Receipt acknowledges a committed transition. models
//  * 'hash'
// 	- 'receipt-<Receipt.Hash>': `Receipt`
//  * 'height'
// 	- 'receipt-height-<Receipt.Height>': `Receipt.Hash`
const (
	ReceiptPrefixHash   string = "receipt-"
	ReceiptPrefixHeight string = "receipt-height-"
	LedgerHeightKey     string = "ledger-height"
)

type Receipt struct {
	Hash      string          `json:"hash"`
	Type      transition.Type `json:"type"`
	Source    string          `json:"source"`
	Addresses []string        `json:"addresses"`
	Height    uint64          `json:"height"`
	Committed string          `json:"committed"`
}

func NewReceipt(tr transition.Transition, height uint64, committed string) Receipt {
	return Receipt{
		Hash:      tr.GetHash(),
		Type:      tr.Type(),
		Source:    tr.Source(),
		Addresses: tr.Addresses(),
		Height:    height,
		Committed: committed,
	}
}

func (r Receipt) Serialize() (encoded []byte, err error) {
	encoded, err = common.EncodeJSONValue(r)
	return
}

func (r Receipt) String() string {
	return string(common.MustMarshalJSON(r))
}

func (r Receipt) Save(st *storage.LevelDBBackend) (err error) {
	err = st.News(
		storage.Item{Key: GetReceiptKey(r.Hash), Value: r},
		storage.Item{Key: GetReceiptHeightKey(r.Height), Value: r.Hash},
	)
	if errors.Is(err, errors.StorageRecordAlreadyExists) {
		err = errors.TransitionAlreadyExists.Clone().SetData("hash", r.Hash)
	}

	return
}

func GetReceiptKey(hash string) string {
	return fmt.Sprintf("%s%s", ReceiptPrefixHash, hash)
}

func GetReceiptHeightKey(height uint64) string {
	return fmt.Sprintf("%s%020d", ReceiptPrefixHeight, height)
}

func ExistsReceipt(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetReceiptKey(hash))
}

func GetReceipt(st *storage.LevelDBBackend, hash string) (r Receipt, err error) {
	if err = st.Get(GetReceiptKey(hash), &r); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.TransitionNotFound.Clone().SetData("hash", hash)
		}
		return
	}

	return
}

func GetReceiptByHeight(st *storage.LevelDBBackend, height uint64) (r Receipt, err error) {
	var hash string
	if err = st.Get(GetReceiptHeightKey(height), &hash); err != nil {
		if errors.Is(err, errors.StorageRecordDoesNotExist) {
			err = errors.TransitionNotFound.Clone().SetData("height", height)
		}
		return
	}

	return GetReceipt(st, hash)
}

// GetHeight is the number of committed transitions, 0 for a new ledger.
func GetHeight(st *storage.LevelDBBackend) (height uint64, err error) {
	if err = st.Get(LedgerHeightKey, &height); errors.Is(err, errors.StorageRecordDoesNotExist) {
		return 0, nil
	}

	return
}

func setHeight(st *storage.LevelDBBackend, height uint64) error {
	if height == 1 {
		return st.New(LedgerHeightKey, height)
	}

	return st.Set(LedgerHeightKey, height)
}
