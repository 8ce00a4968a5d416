package transition

import (
	"encoding/json"
	"reflect"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/errors"
)

type Type string

const (
	TypeCreatePoll        Type = "create-poll"
	TypeRegisterCandidate Type = "register-candidate"
	TypeCastVote          Type = "cast-vote"
)

func IsValidType(t string) bool {
	_, found := common.InStringArray([]string{
		string(TypeCreatePoll),
		string(TypeRegisterCandidate),
		string(TypeCastVote),
	}, t)
	return found
}

type Payload interface {
	//
	// Check that the payload is self consistent, without looking at storage
	//
	// Returns:
	//   An `error` if the payload is invalid, `nil` otherwise
	//
	IsWellFormed(common.Config) error

	// Addresses are the records this payload reads or writes.
	Addresses() []string
}

// CandidateTarget is a payload naming one candidate of one poll.
type CandidateTarget interface {
	Payload
	TargetPoll() string
	TargetCandidate() string
}

func TypeOf(payload Payload) (t Type, err error) {
	switch payload.(type) {
	case CreatePoll:
		t = TypeCreatePoll
	case RegisterCandidate:
		t = TypeRegisterCandidate
	case CastVote:
		t = TypeCastVote
	default:
		err = errors.UnknownTransitionType
	}

	return
}

func UnmarshalPayloadJSON(t Type, b []byte) (Payload, error) {
	if pi, err := newPayloadFromType(t); err != nil {
		return nil, err
	} else if err = json.Unmarshal(b, pi); err != nil {
		return nil, err
	} else {
		// values within interfaces are not addressable, so decode into the
		// pointer and hand back the value
		return reflect.ValueOf(pi).Elem().Interface().(Payload), nil
	}
}

func newPayloadFromType(t Type) (interface{}, error) {
	switch t {
	case TypeCreatePoll:
		return &CreatePoll{}, nil
	case TypeRegisterCandidate:
		return &RegisterCandidate{}, nil
	case TypeCastVote:
		return &CastVote{}, nil
	default:
		return nil, errors.UnknownTransitionType.Clone().SetData("type", string(t))
	}
}
