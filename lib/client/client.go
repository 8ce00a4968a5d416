package client

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	neturl "net/url"
	"strconv"
	"strings"
	"time"

	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/transition"
)

const (
	UrlPrefixForAPIV1 = "/api/v1"

	UrlNodeInfo         = "/"
	UrlTransitions      = "/transitions"
	UrlTransitionByHash = "/transitions/{id}"
	UrlPoll             = "/polls/{id}"
	UrlPollCandidates   = "/polls/{id}/candidates"
	UrlPollCandidate    = "/polls/{id}/candidates/{name}"
	UrlPollStream       = "/polls/{id}/stream"
)

type QueryKey string

func (qk QueryKey) String() string {
	return string(qk)
}

const (
	QueryLimit   QueryKey = "limit"
	QueryReverse QueryKey = "reverse"
	QueryCursor  QueryKey = "cursor"
)

type Q struct {
	Key   QueryKey
	Value string
}

type Queries []Q

func (qs Queries) toQueryString() string {
	if len(qs) == 0 {
		return ""
	}

	urlValues := neturl.Values{}
	for _, q := range qs {
		switch q.Key {
		case QueryLimit, QueryReverse, QueryCursor:
			urlValues.Add(q.Key.String(), q.Value)
		}
	}
	return "?" + urlValues.Encode()
}

type Client struct {
	URL string

	HTTP *HTTP2Client
}

func NewClient(url string, timeout time.Duration, retrySetting *RetrySetting) (*Client, error) {
	return NewClientWithConfig(url, HTTP2ClientConfig{
		Timeout:   timeout,
		KeepAlive: true,
		Retry:     retrySetting,
	})
}

func NewClientWithConfig(url string, config HTTP2ClientConfig) (*Client, error) {
	httpClient, err := NewHTTP2Client(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		URL:  strings.TrimRight(url, "/"),
		HTTP: httpClient,
	}, nil
}

func (c *Client) toResponse(resp *http.Response, response interface{}) (err error) {
	defer resp.Body.Close()
	decoder := json.NewDecoder(resp.Body)

	if !(resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices) {
		var p Problem
		if err = decoder.Decode(&p); err != nil {
			return Error{Problem: Problem{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}}
		}
		return Error{Problem: p}
	}

	return decoder.Decode(response)
}

func (c *Client) Get(path string, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Get(c.URL+UrlPrefixForAPIV1+path, headers)
}

func (c *Client) Post(path string, body []byte, headers http.Header) (response *http.Response, err error) {
	return c.HTTP.Post(c.URL+UrlPrefixForAPIV1+path, body, headers)
}

func (c *Client) load(path string, v interface{}) error {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	resp, err := c.Get(path, headers)
	if err != nil {
		return err
	}

	return c.toResponse(resp, v)
}

func pollPath(pattern string, pollID uint64) string {
	return strings.Replace(pattern, "{id}", strconv.FormatUint(pollID, 10), -1)
}

func (c *Client) LoadNodeInfo() (info NodeInfo, err error) {
	err = c.load(UrlNodeInfo, &info)
	return
}

func (c *Client) SubmitTransition(tr transition.Transition) (receipt Receipt, err error) {
	var b []byte
	if b, err = tr.Serialize(); err != nil {
		return
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")

	var resp *http.Response
	if resp, err = c.Post(UrlTransitions, b, headers); err != nil {
		return
	}

	err = c.toResponse(resp, &receipt)

	// a retried request whose first attempt was committed
	if ce, ok := err.(Error); ok && ce.Problem.Code == errors.TransitionAlreadyExists.Code {
		return c.LoadReceipt(tr.GetHash())
	}

	return
}

func (c *Client) LoadReceipt(hash string) (receipt Receipt, err error) {
	err = c.load(strings.Replace(UrlTransitionByHash, "{id}", hash, -1), &receipt)
	return
}

func (c *Client) LoadPoll(pollID uint64) (poll Poll, err error) {
	err = c.load(pollPath(UrlPoll, pollID), &poll)
	return
}

func (c *Client) LoadCandidates(pollID uint64, queries ...Q) (page CandidatesPage, err error) {
	err = c.load(pollPath(UrlPollCandidates, pollID)+Queries(queries).toQueryString(), &page)
	return
}

func (c *Client) LoadCandidate(pollID uint64, name string) (candidate Candidate, err error) {
	path := strings.Replace(pollPath(UrlPollCandidate, pollID), "{name}", neturl.PathEscape(name), -1)
	err = c.load(path, &candidate)
	return
}

// Stream calls `handler` with the data of every event until `ctx` is done or
// the stream ends.
func (c *Client) Stream(ctx context.Context, path string, handler func(data []byte) error) (err error) {
	var req *http.Request
	if req, err = http.NewRequest("GET", c.URL+UrlPrefixForAPIV1+path, nil); err != nil {
		return
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.HTTP.Stream(req.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return c.toResponse(resp, nil)
	}
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		line = bytes.TrimSpace(line)
		if !bytes.HasPrefix(line, []byte("data:")) {
			continue
		}

		if err = handler(bytes.TrimSpace(line[len("data:"):])); err != nil {
			return err
		}
	}
}

func (c *Client) StreamPoll(ctx context.Context, pollID uint64, handler func(PollEvent)) (err error) {
	handlerFunc := func(b []byte) (err error) {
		var probe map[string]json.RawMessage
		if err = json.Unmarshal(b, &probe); err != nil {
			return err
		}

		var event PollEvent
		if _, isCandidate := probe["candidate_name"]; isCandidate {
			event.Candidate = &Candidate{}
			err = json.Unmarshal(b, event.Candidate)
		} else {
			event.Poll = &Poll{}
			err = json.Unmarshal(b, event.Poll)
		}
		if err != nil {
			return err
		}

		handler(event)
		return nil
	}

	return c.Stream(ctx, pollPath(UrlPollStream, pollID), handlerFunc)
}
