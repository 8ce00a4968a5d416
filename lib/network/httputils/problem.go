package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/votechain/lib/errors"
)

const ProblemTypePrefix = "https://boscoin.io/votechain/problems/"

// Problem is the RFC 7807 error document.
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type.
	Type string `json:"type"`

	// "title" (string) - A short, human-readable summary of the problem
	// type.
	Title string `json:"title"`

	// "status" (number) - The HTTP status code ([RFC7231], Section 6)
	// generated by the origin server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	// "detail" (string) - A human-readable explanation specific to this
	// occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	// "instance" (string) - A URI reference that identifies the specific
	// occurrence of the problem.
	Instance string `json:"instance,omitempty"`

	// extensions
	Code uint                   `json:"code,omitempty"`
	Kind errors.Kind            `json:"kind,omitempty"`
	Data map[string]interface{} `json:"data,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Title: http.StatusText(status), Status: status}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem keeps the code, kind and data of a coded error; any other
// error only gives its message.
func NewErrorProblem(err error, status int) Problem {
	e, ok := err.(*errors.Error)
	if !ok {
		return NewDetailedStatusProblem(status, err.Error())
	}

	var data map[string]interface{}
	if len(e.Data) > 0 {
		data = e.Data
	}

	return Problem{
		Type:   fmt.Sprintf("%s%d", ProblemTypePrefix, e.Code),
		Title:  e.Message,
		Status: status,
		Code:   e.Code,
		Kind:   e.Kind(),
		Data:   data,
	}
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}

func (p Problem) Error() string {
	if len(p.Detail) > 0 {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}

	return p.Title
}
