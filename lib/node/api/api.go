package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/ledger"
	"boscoin.io/votechain/lib/network/httpcache"
	"boscoin.io/votechain/lib/node/api/resource"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern                = "/"
	PostTransitionPattern             = "/transitions"
	GetTransitionByHashHandlerPattern = "/transitions/{id}"
	GetPollHandlerPattern             = "/polls/{id}"
	GetPollCandidatesHandlerPattern   = "/polls/{id}/candidates"
	GetPollCandidateHandlerPattern    = "/polls/{id}/candidates/{name}"
	GetPollStreamHandlerPattern       = "/polls/{id}/stream"
)

const DefaultMaxTransitionBodyLength int64 = 64 * 1024

type NetworkHandlerAPI struct {
	ledger    *ledger.Ledger
	cache     httpcache.Handler
	urlPrefix string
	version   string
	nodeInfo  resource.NodeInfo
}

func NewNetworkHandlerAPI(l *ledger.Ledger, cache httpcache.Handler, urlPrefix string, nodeInfo resource.NodeInfo) *NetworkHandlerAPI {
	if cache == nil {
		cache = httpcache.NewNopClient()
	}

	return &NetworkHandlerAPI{
		ledger:    l,
		cache:     cache,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

// Router is satisfied by `network.HTTP2Network`.
type Router interface {
	AddHandler(pattern string, handler http.HandlerFunc) *mux.Route
}

// AddRoutes registers every endpoint under the api prefix.
func (api NetworkHandlerAPI) AddRoutes(router Router) {
	router.AddHandler(api.HandlerURLPattern(GetNodeInfoPattern), api.GetNodeInfoHandler).Methods("GET", "OPTIONS")
	router.AddHandler(api.HandlerURLPattern(PostTransitionPattern), api.PostTransitionHandler).Methods("POST", "OPTIONS")
	router.AddHandler(
		api.HandlerURLPattern(GetTransitionByHashHandlerPattern),
		api.cache.WrapHandlerFunc(api.GetTransitionByHashHandler),
	).Methods("GET", "OPTIONS")
	router.AddHandler(api.HandlerURLPattern(GetPollHandlerPattern), api.GetPollHandler).Methods("GET", "OPTIONS")
	router.AddHandler(api.HandlerURLPattern(GetPollCandidatesHandlerPattern), api.GetPollCandidatesHandler).Methods("GET", "OPTIONS")
	router.AddHandler(api.HandlerURLPattern(GetPollCandidateHandlerPattern), api.GetPollCandidateHandler).Methods("GET", "OPTIONS")
	router.AddHandler(api.HandlerURLPattern(GetPollStreamHandlerPattern), api.GetPollStreamHandler).Methods("GET")
}

func parsePollID(r *http.Request) (uint64, error) {
	s := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("id", s)
	}

	return id, nil
}
