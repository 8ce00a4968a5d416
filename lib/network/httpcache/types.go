package httpcache

import (
	"net/http"
	"time"
)

type Adapter interface {
	Get(key string) (*Response, bool)
	// Set stores `response`; a zero `expiration` never expires.
	Set(key string, response *Response, expiration time.Time)
	Remove(key string)
}

type Response struct {
	Value      []byte
	StatusCode int
	Header     http.Header
	Expiration time.Time
}

func (r *Response) IsExpired(now time.Time) bool {
	return !r.Expiration.IsZero() && !r.Expiration.After(now)
}

// Handler is satisfied by both `Client` and `NopClient`.
type Handler interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
}
