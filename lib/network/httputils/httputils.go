package httputils

import (
	"net/http"

	"boscoin.io/votechain/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	return r.Header.Get("Accept") == "text/event-stream"
}

var KindToStatus = map[errors.Kind]int{
	errors.KindAlreadyExists:  http.StatusConflict,
	errors.KindNotFound:       http.StatusNotFound,
	errors.KindMalformedInput: http.StatusBadRequest,
	errors.KindRejected:       http.StatusForbidden,
	errors.KindInternal:       http.StatusInternalServerError,
}

func StatusCode(err error) int {
	if p, ok := err.(Problem); ok && p.Status > 0 {
		return p.Status
	}

	if status, found := KindToStatus[errors.KindOf(err)]; found {
		return status
	}

	return http.StatusInternalServerError
}
