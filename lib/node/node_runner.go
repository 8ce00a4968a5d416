package node

import (
	"time"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/votechain/lib/address"
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/ledger"
	"boscoin.io/votechain/lib/metrics"
	"boscoin.io/votechain/lib/network"
	"boscoin.io/votechain/lib/network/httpcache"
	"boscoin.io/votechain/lib/node/api"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/version"
)

// NodeRunner wires the ledger to the http network.
type NodeRunner struct {
	Conf *NodeRunnerConfiguration

	ledger  *ledger.Ledger
	network *network.HTTP2Network
	cache   httpcache.Handler
	started time.Time

	log logging.Logger
}

func NewNodeRunner(conf *NodeRunnerConfiguration, l *ledger.Ledger, nw *network.HTTP2Network) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		Conf:    conf,
		ledger:  l,
		network: nw,
		started: l.Now(),
		log:     log.New(logging.Ctx{"node": conf.NodeID}),
	}

	if nr.cache, err = httpcache.NewHandler(conf.Cache, httpcache.WithLogger(nr.log)); err != nil {
		return nil, err
	}

	return nr, nil
}

func (nr *NodeRunner) Ledger() *ledger.Ledger {
	return nr.ledger
}

func (nr *NodeRunner) Network() *network.HTTP2Network {
	return nr.network
}

// NodeInfo is the static part of the node information; the height and the
// policy are filled on each request.
func (nr *NodeRunner) NodeInfo() resource.NodeInfo {
	config := nr.ledger.Config()

	return resource.NodeInfo{
		NodeID:    nr.Conf.NodeID,
		Version:   version.Version,
		NetworkID: string(config.NetworkID),
		ProgramID: string(config.ProgramID),
		Address:   address.Marker,
		Policy:    nr.ledger.Policy(),
		Started:   common.FormatISO8601(nr.started),
	}
}

func (nr *NodeRunner) Ready() error {
	// BaseRouter's middlewares impact all sub routers.
	if err := nr.network.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("Middleware has an error", "error", err)
		return err
	}

	if err := nr.network.AddMiddleware(network.RouterNameAPI, network.MetricsMiddleware); err != nil {
		nr.log.Error("`network.MetricsMiddleware` for `RouterNameAPI` has an error", "error", err)
		return err
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins(nr.Conf.CORSAllowedOrigins)
		allowedMethods := ghandlers.AllowedMethods(DefaultCORSAllowedMethods)
		allowedHeaders := ghandlers.AllowedHeaders(DefaultCORSAllowedHeaders)

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		if err := nr.network.AddMiddleware(network.RouterNameAPI, cors); err != nil {
			nr.log.Error("Middleware has an error", "error", err)
			return err
		}
	}

	if nr.Conf.ExposeMetrics {
		nr.network.AddHandler(network.UrlPathPrefixMetric, promhttp.Handler().ServeHTTP)
	}

	apiHandler := api.NewNetworkHandlerAPI(
		nr.ledger,
		nr.cache,
		network.UrlPathPrefixAPI,
		nr.NodeInfo(),
	)
	apiHandler.AddRoutes(nr.network)

	metrics.SetVersion()

	return nr.network.Ready()
}

// Start blocks until the network stops.
func (nr *NodeRunner) Start() (err error) {
	nr.log.Debug("NodeRunner started", "endpoint", nr.network.Endpoint(), "info", nr.NodeInfo())

	if err = nr.Ready(); err != nil {
		return
	}

	return nr.network.Start()
}

// Stop closes the network, then the ledger; the storage stays with its owner.
func (nr *NodeRunner) Stop() {
	nr.network.Stop()
	nr.ledger.Close()
	nr.log.Debug("NodeRunner stopped")
}
