package httpcache

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"time"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/common"
)

// Client caches whole responses by url. Only methods in `methods` are
// cached, and by default only responses below 400.
type Client struct {
	adapter     Adapter
	ttl         time.Duration
	methods     map[string]bool
	statusCodes map[int]time.Duration
	logger      logging.Logger
}

type ClientOption func(c *Client) error

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		methods:     map[string]bool{"GET": true},
		statusCodes: map[int]time.Duration{},
		ttl:         time.Duration(0),
		logger:      common.NopLogger(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.adapter == nil {
		return nil, errors.New("cache client adapter is nil")
	}

	return c, nil
}

func WithAdapter(a Adapter) ClientOption {
	return func(c *Client) error {
		c.adapter = a
		return nil
	}
}

func WithExpire(ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.ttl = ttl
		return nil
	}
}

func WithMethods(methods ...string) ClientOption {
	return func(c *Client) error {
		for _, m := range methods {
			c.methods[m] = true
		}
		return nil
	}
}

// WithStatusCode caches responses of `code` for `ttl`, even at 400 and over.
func WithStatusCode(code int, ttl time.Duration) ClientOption {
	return func(c *Client) error {
		c.statusCodes[code] = ttl
		return nil
	}
}

func WithLogger(logger logging.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

func (c *Client) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ok := c.handleCache(next, w, r); !ok {
			c.logger.Debug("page not cached", "url", r.URL.String())
			next.ServeHTTP(w, r)
		}
	})
}

func (c *Client) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	next := c.Middleware(handlerFunc)
	return func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	}
}

func (c *Client) handleCache(next http.Handler, w http.ResponseWriter, r *http.Request) bool {
	if ok := c.methods[r.Method]; !ok {
		return false
	}

	key := cacheKey(r.URL)
	if resp, ok := c.adapter.Get(key); ok {
		if !resp.IsExpired(time.Now()) {
			writeResponse(w, resp.StatusCode, resp.Header, resp.Value)
			c.logger.Debug("return cache", "url", key)
			return true
		}
		c.adapter.Remove(key)
	}

	rec := httptest.NewRecorder()
	next.ServeHTTP(rec, r)

	var (
		result              = rec.Result()
		statusCode          = result.StatusCode
		value               = rec.Body.Bytes()
		expiration, caching = c.cachingExpiration(statusCode)
	)
	if caching {
		c.adapter.Set(key, &Response{
			Value:      value,
			StatusCode: statusCode,
			Header:     result.Header,
			Expiration: expiration,
		}, expiration)
		c.logger.Debug("page cached", "url", key, "code", statusCode, "expiration", expiration)
	}

	writeResponse(w, statusCode, result.Header, value)
	return true
}

func (c *Client) cachingExpiration(code int) (time.Time, bool) {
	if ttl, ok := c.statusCodes[code]; ok {
		return expiration(ttl), true
	} else if code < 400 {
		return expiration(c.ttl), true
	}
	return time.Time{}, false
}

func writeResponse(w http.ResponseWriter, statusCode int, header http.Header, value []byte) {
	for k, v := range header {
		w.Header()[k] = v
	}
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	w.WriteHeader(statusCode)
	w.Write(value)
}

func expiration(ttl time.Duration) time.Time {
	if ttl == 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

// cacheKey is the url with its query values sorted, so the order of the
// parameters does not matter.
func cacheKey(u *url.URL) string {
	params := u.Query()
	for _, p := range params {
		sort.Strings(p)
	}

	k := *u
	k.RawQuery = params.Encode()

	return k.String()
}
