package observer

import (
	"fmt"
	"strings"

	"github.com/GianlucaGuarini/go-observable"
)

// RecordObserver is triggered after a transition commits, once per touched
// record. Handlers receive the event name and the record.
var RecordObserver = observable.New()

// TransitionObserver is triggered with the receipt of every committed
// transition.
var TransitionObserver = observable.New()

const (
	ResourcePoll      = "poll"
	ResourceCandidate = "candidate"
	ResourceBallot    = "ballot"

	ResourceTransition = "transition"

	ConditionAll     = "*"
	ConditionAddress = "address"
	ConditionPoll    = "poll"
	ConditionType    = "type"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	ID        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		ID:        id,
	}
}

// String is the observable event name, eg. "candidate-poll=<address>".
func (e Event) String() string {
	if e.Condition == ConditionAll {
		return fmt.Sprintf("%s-%s", e.Resource, ConditionAll)
	}

	return fmt.Sprintf("%s-%s=%s", e.Resource, e.Condition, e.ID)
}

// Events joins events with space, which observable treats as "any of".
func Events(events ...Event) string {
	var names []string
	for _, e := range events {
		names = append(names, e.String())
	}

	return strings.Join(names, " ")
}
