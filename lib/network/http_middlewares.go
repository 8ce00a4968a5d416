package network

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/metrics"
	"boscoin.io/votechain/lib/network/httputils"
)

func RecoverMiddleware(logger logging.Logger) mux.MiddlewareFunc {
	if logger == nil {
		logger = log
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rc := recover(); rc != nil {
					err, ok := rc.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rc)
					}
					httputils.WriteJSONError(w, err)
					logger.Error("recover an panic", "error", err, "stack", string(debug.Stack()))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// MetricsMiddleware counts requests by route template, so path variables do
// not make new series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}

		writer := NewHTTP2ResponseLog15Writer(w)
		next.ServeHTTP(writer, r)

		metrics.API.AddRequest(begin, endpoint, r.Method, strconv.Itoa(writer.Status()))
	})
}
