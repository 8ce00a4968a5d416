package network

import (
	"errors"
	"fmt"
	goLog "log"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"
	"golang.org/x/net/http2"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metrics"
)

var (
	UrlPathPrefixAPI    = fmt.Sprintf("/%s", RouterNameAPI)
	UrlPathPrefixMetric = fmt.Sprintf("/%s", RouterNameMetric)
)

var ErrorNotMatchHTTPRouter = errors.New("no router for the name")

// HTTP2Network serves the node. Handlers are grouped by url prefix into
// sub routers, so middlewares can be added per group.
type HTTP2Network struct {
	sync.RWMutex

	server    *http.Server
	router    *mux.Router
	rootRoute *mux.Route
	listener  net.Listener

	ready bool

	routers map[string]*mux.Router

	config *HTTP2NetworkConfig
	log    logging.Logger
}

func NewHTTP2Network(config *HTTP2NetworkConfig) (h2n *HTTP2Network) {
	httpLog := log.New(logging.Ctx{"module": "http", "node": config.NodeName})
	errorLog := goLog.New(HTTP2ErrorLog15Writer{httpLog}, "", 0)

	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          errorLog,
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	baseRouter := mux.NewRouter()

	h2n = &HTTP2Network{
		server: server,
		router: baseRouter,
		config: config,
		log:    httpLog,
	}
	h2n.routers = map[string]*mux.Router{
		RouterNameAPI:    baseRouter.PathPrefix(UrlPathPrefixAPI).Subrouter(),
		RouterNameMetric: baseRouter.PathPrefix(UrlPathPrefixMetric).Subrouter(),
	}

	h2n.setNotReadyHandler()

	return
}

func (t *HTTP2Network) Endpoint() string {
	t.RLock()
	defer t.RUnlock()

	if t.listener != nil {
		return fmt.Sprintf("%s://%s", t.config.Endpoint.Scheme, t.listener.Addr().String())
	}

	return fmt.Sprintf("%s://%s", t.config.Endpoint.Scheme, t.config.Addr)
}

// Router is the base router; its middlewares apply to every sub router.
func (t *HTTP2Network) Router() *mux.Router {
	return t.router
}

func (t *HTTP2Network) setNotReadyHandler() {
	t.rootRoute = t.router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if !t.IsReady() {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	})

	t.server.Handler = HTTP2Log15Handler{log: t.log, handler: t.router}
}

func (t *HTTP2Network) AddMiddleware(routerName string, mws ...mux.MiddlewareFunc) error {
	var r *mux.Router
	if len(routerName) < 1 {
		r = t.router
	} else {
		var ok bool
		if r, ok = t.routers[routerName]; !ok {
			return ErrorNotMatchHTTPRouter
		}
	}
	for _, mw := range mws {
		r.Use(mw)
	}
	return nil
}

// AddHandler routes `pattern` to the sub router of its prefix; the prefix is
// stripped from the pattern.
func (t *HTTP2Network) AddHandler(pattern string, handler http.HandlerFunc) (router *mux.Route) {
	var routerName string
	var prefix string
	switch {
	case strings.HasPrefix(pattern, UrlPathPrefixAPI):
		routerName = RouterNameAPI
		prefix = pattern[len(UrlPathPrefixAPI):]
	case strings.HasPrefix(pattern, UrlPathPrefixMetric):
		routerName = RouterNameMetric
		prefix = pattern[len(UrlPathPrefixMetric):]
	default:
		if pattern == "" || pattern == "/" {
			return t.rootRoute.Handler(handler)
		}
		return t.router.HandleFunc(pattern, handler)
	}

	r := t.routers[routerName]
	if prefix == "" {
		return r.Path("").Handler(handler)
	}

	return r.HandleFunc(prefix, handler)
}

func (t *HTTP2Network) Ready() error {
	t.Lock()
	defer t.Unlock()

	t.server.Handler = HTTP2Log15Handler{log: t.log, handler: t.router}
	t.ready = true

	return nil
}

func (t *HTTP2Network) IsReady() bool {
	t.RLock()
	defer t.RUnlock()

	return t.ready
}

// Start listens and serves until `Stop`. A closed server is not an error.
func (t *HTTP2Network) Start() (err error) {
	var listener net.Listener
	if listener, err = net.Listen("tcp", t.config.Addr); err != nil {
		return
	}

	t.Lock()
	t.listener = listener
	t.Unlock()

	t.log.Debug("start listening", "endpoint", t.Endpoint(), "https", t.config.IsHTTPS())

	if t.config.IsHTTPS() {
		err = t.server.ServeTLS(listener, t.config.TLSCertFile, t.config.TLSKeyFile)
	} else {
		err = t.server.Serve(listener)
	}

	if err == http.ErrServerClosed {
		err = nil
	}

	return
}

func (t *HTTP2Network) Stop() {
	t.server.Close()
}
