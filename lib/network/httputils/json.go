package httputils

import (
	"net/http"

	"github.com/nvellon/hal"

	"boscoin.io/votechain/lib/common"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	if h, ok := v.(HALResource); ok {
		w.Header().Set("Content-Type", "application/hal+json")
		v = h.Resource()
	} else if p, ok := v.(Problem); ok {
		w.Header().Set("Content-Type", "application/problem+json")
		v = p
	} else if e, ok := v.(error); ok {
		w.Header().Set("Content-Type", "application/problem+json")
		v = NewErrorProblem(e, code)
	} else {
		w.Header().Set("Content-Type", "application/json")
	}

	bs, err := common.EncodeJSONValue(v)
	if err != nil {
		return err
	}

	w.WriteHeader(code)
	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

// WriteJSONError writes `err` as problem with the status of its kind.
func WriteJSONError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusCode(err), err)
}
