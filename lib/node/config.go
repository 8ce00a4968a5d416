package node

import (
	"boscoin.io/votechain/lib/network/httpcache"
)

var (
	DefaultCORSAllowedOrigins = []string{"*"}
	DefaultCORSAllowedMethods = []string{"GET", "POST"}
	DefaultCORSAllowedHeaders = []string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"}
)

// NodeRunnerConfiguration is the local setting of one node; it does not
// change how transitions are validated.
type NodeRunnerConfiguration struct {
	NodeID             string
	Cache              httpcache.Config
	CORSAllowedOrigins []string
	ExposeMetrics      bool
}

func NewNodeRunnerConfiguration(nodeID string) *NodeRunnerConfiguration {
	return &NodeRunnerConfiguration{
		NodeID:             nodeID,
		Cache:              httpcache.Config{Adapter: httpcache.AdapterMemory, PoolSize: httpcache.DefaultPoolSize},
		CORSAllowedOrigins: DefaultCORSAllowedOrigins,
		ExposeMetrics:      true,
	}
}
