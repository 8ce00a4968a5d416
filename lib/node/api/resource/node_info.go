package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/ledger"
)

type NodeInfo struct {
	NodeID    string        `json:"node_id"`
	Version   string        `json:"version"`
	NetworkID string        `json:"network_id"`
	ProgramID string        `json:"program_id"`
	Address   string        `json:"address_scheme"`
	Policy    ledger.Policy `json:"policy"`
	Height    uint64        `json:"height"`
	Started   string        `json:"started"`
}

func (n NodeInfo) GetMap() hal.Entry {
	return hal.Entry{
		"node_id":        n.NodeID,
		"version":        n.Version,
		"network_id":     n.NetworkID,
		"program_id":     n.ProgramID,
		"address_scheme": n.Address,
		"policy":         n.Policy,
		"height":         n.Height,
		"started":        n.Started,
	}
}

func (n NodeInfo) Resource() *hal.Resource {
	r := hal.NewResource(n, n.LinkSelf())
	r.AddLink("transitions", hal.NewLink(URLTransitions))
	r.AddLink("transition", hal.NewLink(URLTransitionByHash, hal.LinkAttr{"templated": true}))
	r.AddLink("poll", hal.NewLink(URLPolls, hal.LinkAttr{"templated": true}))
	return r
}

func (n NodeInfo) LinkSelf() string {
	return URLNodeInfo
}

func (n NodeInfo) MarshalJSON() ([]byte, error) {
	r := n.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
