package node

import (
	"boscoin.io/votechain/lib/ledger"
	"boscoin.io/votechain/lib/network"
)

func NewTestNodeRunner(policy ledger.Policy) *NodeRunner {
	conf := NewNodeRunnerConfiguration("test-node")
	nr, err := NewNodeRunner(conf, ledger.NewTestLedger(policy), network.NewTestHTTP2Network())
	if err != nil {
		panic(err)
	}

	return nr
}
