package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/GianlucaGuarini/go-observable"

	"boscoin.io/votechain/lib/common/observer"
	"boscoin.io/votechain/lib/metrics"
	"boscoin.io/votechain/lib/network/httputils"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/voting"
)

const EventStreamContentType = "text/event-stream"

// StreamBufferSize is how many events a stream may fall behind before it is
// closed.
var StreamBufferSize = 64

// GetPollStreamHandler sends the poll, then every update of the poll and of
// its candidates until the client goes away.
func (api NetworkHandlerAPI) GetPollStreamHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	poll, err := api.ledger.GetPollByID(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	events := []string{
		observer.NewEvent(observer.ResourcePoll, observer.ConditionAddress, poll.Address).String(),
		observer.NewEvent(observer.ResourceCandidate, observer.ConditionPoll, poll.Address).String(),
	}

	metrics.API.StreamsActive.Add(1)
	defer metrics.API.StreamsActive.Add(-1)

	es := NewEventStream(w, r, RenderRecordFunc, EventStreamContentType)
	run := es.Start(observer.RecordObserver, events...)
	es.Render(poll)
	run()
}

// RenderRecordFunc renders voting records as HAL resources.
var RenderRecordFunc = func(args ...interface{}) ([]byte, error) {
	if len(args) <= 1 {
		return nil, fmt.Errorf("render: value is empty")
	}

	switch v := args[1].(type) {
	case nil:
		return nil, nil
	case *voting.Poll:
		return json.Marshal(resource.NewPoll(v))
	case *voting.Candidate:
		return json.Marshal(resource.NewCandidate(v))
	}

	return json.Marshal(args[1])
}

// EventStream handles chunked responses of a observable trigger
//
// renderFunc uses on observable.On() and Render function
type EventStream struct {
	contentType string
	renderFunc  RenderFunc
	request     *http.Request
	writer      http.ResponseWriter
	flusher     http.Flusher
	err         error
	rendered    bool
}

type RenderFunc func(args ...interface{}) ([]byte, error)

// NewEventStream makes *EventStream and checks http.Flusher by type assertion.
func NewEventStream(w http.ResponseWriter, r *http.Request, renderFunc RenderFunc, ct string) *EventStream {
	es := &EventStream{
		request:     r,
		writer:      w,
		renderFunc:  renderFunc,
		contentType: ct,
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		es.err = fmt.Errorf("http: can't do chunked response")
	} else {
		es.flusher = flusher
	}

	return es
}

// Render writes one event made by RenderFunc and flushes it.
func (s *EventStream) Render(args ...interface{}) {
	if s.err != nil {
		return
	}

	renderArgs := append([]interface{}{"pre"}, args...)
	bs, err := s.renderFunc(renderArgs...)
	if err != nil {
		bs = s.errMessage(err)
	}

	s.write(bs)
}

// Run start observing events.
//
//	es := NewEventStream(w, r, RenderRecordFunc, EventStreamContentType)
//	es.Render(poll)
//	es.Run(observer.RecordObserver, event)
func (s *EventStream) Run(ob *observable.Observable, events ...string) {
	s.Start(ob, events...)()
}

// Start subscribes to the events and returns the loop writing them. Events
// triggered between Start and the loop are kept. Triggering never waits for
// the client; a stream which falls StreamBufferSize events behind is closed.
func (s *EventStream) Start(ob *observable.Observable, events ...string) func() {
	if s.err != nil {
		http.Error(s.writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return func() {}
	}

	event := strings.Join(events, " ")
	msg := make(chan []byte, StreamBufferSize)
	slow := make(chan struct{})
	var once sync.Once

	onFunc := func(args ...interface{}) {
		payload, err := s.renderFunc(append([]interface{}{event}, args...)...)
		if err != nil {
			payload = s.errMessage(err)
		}

		select {
		case msg <- payload:
		default:
			once.Do(func() { close(slow) })
		}
	}
	ob.On(event, onFunc)

	return func() {
		defer ob.Off(event, onFunc)

		for {
			select {
			case payload := <-msg:
				s.write(payload)
			case <-slow:
				return
			case <-s.request.Context().Done():
				return
			}
		}
	}
}

func (s *EventStream) write(payload []byte) {
	if !s.rendered {
		s.writer.Header().Set("Content-Type", s.contentType)
		s.writer.Header().Set("Cache-Control", "no-cache")
		s.rendered = true
	}

	if len(payload) > 0 {
		fmt.Fprintf(s.writer, "data: %s\n\n", payload)
	}
	s.flusher.Flush()
}

func (s *EventStream) errMessage(err error) []byte {
	p := httputils.NewErrorProblem(err, httputils.StatusCode(err))
	b, err := json.Marshal(p)
	if err != nil {
		b = []byte{}
	}
	return b
}
