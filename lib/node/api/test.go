package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/ledger"
	"boscoin.io/votechain/lib/network/httpcache"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/transition"
)

const testURLPrefix = "/api"

type testRouter struct {
	*mux.Router
}

func (r testRouter) AddHandler(pattern string, handler http.HandlerFunc) *mux.Route {
	return r.HandleFunc(pattern, handler)
}

type testAPIServer struct {
	*httptest.Server
	ledger *ledger.Ledger
	kp     *keypair.Full
}

func prepareAPIServer(policy ledger.Policy, cache httpcache.Handler) *testAPIServer {
	l := ledger.NewTestLedger(policy)
	apiHandler := NewNetworkHandlerAPI(l, cache, testURLPrefix, resource.NodeInfo{
		NodeID:    "test-node",
		NetworkID: string(l.Config().NetworkID),
		ProgramID: string(l.Config().ProgramID),
	})

	router := testRouter{Router: mux.NewRouter()}
	apiHandler.AddRoutes(router)

	return &testAPIServer{
		Server: httptest.NewServer(router),
		ledger: l,
		kp:     keypair.Random(),
	}
}

func (ts *testAPIServer) close() {
	ts.Close()
	ts.ledger.Storage().Close()
}

func (ts *testAPIServer) url(pattern string) string {
	return ts.URL + testURLPrefix + "/" + APIVersionV1 + pattern
}

func (ts *testAPIServer) get(pattern string, streaming bool) (*http.Response, error) {
	req, err := http.NewRequest("GET", ts.url(pattern), nil)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", EventStreamContentType)
	}

	return ts.Client().Do(req)
}

func (ts *testAPIServer) getWithContext(ctx context.Context, pattern string) (*http.Response, error) {
	req, err := http.NewRequest("GET", ts.url(pattern), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", EventStreamContentType)

	return ts.Client().Do(req.WithContext(ctx))
}

func (ts *testAPIServer) post(pattern string, body io.Reader) (*http.Response, error) {
	return ts.Client().Post(ts.url(pattern), "application/json", body)
}

func (ts *testAPIServer) postTransition(payload transition.Payload) (*http.Response, transition.Transition, error) {
	tr := transition.TestMakeTransition(ts.ledger.Config(), ts.kp, payload)
	b, err := tr.Serialize()
	if err != nil {
		return nil, tr, err
	}

	resp, err := ts.post(PostTransitionPattern, bytes.NewReader(b))
	return resp, tr, err
}
