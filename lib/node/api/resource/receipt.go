package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/ledger"
)

type Receipt struct {
	r ledger.Receipt
}

func NewReceipt(r ledger.Receipt) *Receipt {
	return &Receipt{r: r}
}

func (r Receipt) GetMap() hal.Entry {
	return hal.Entry{
		"hash":      r.r.Hash,
		"type":      r.r.Type,
		"source":    r.r.Source,
		"addresses": r.r.Addresses,
		"height":    r.r.Height,
		"committed": r.r.Committed,
	}
}

func (r Receipt) Resource() *hal.Resource {
	return hal.NewResource(r, r.LinkSelf())
}

func (r Receipt) LinkSelf() string {
	return strings.Replace(URLTransitionByHash, "{id}", r.r.Hash, -1)
}

func (r Receipt) MarshalJSON() ([]byte, error) {
	res := r.Resource()
	return common.JSONMarshalWithoutEscapeHTML(res.GetMap())
}
