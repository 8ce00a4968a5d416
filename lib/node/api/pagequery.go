package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/storage"
	"boscoin.io/votechain/lib/voting"
)

const (
	DefaultLimit uint64 = 20
)

var MaxLimit uint64 = storage.DefaultMaxLimitListOptions

// PageQuery reads `cursor`, `limit` and `reverse` of a candidate listing.
// `cursor` is the registration index of the last candidate already seen.
type PageQuery struct {
	request   *http.Request
	cursor    uint64
	hasCursor bool
	reverse   bool
	limit     uint64
}

func NewPageQuery(r *http.Request) (*PageQuery, error) {
	p := &PageQuery{
		request: r,
		limit:   DefaultLimit,
	}
	err := p.parseRequest()
	return p, err
}

func (p *PageQuery) Limit() uint64 {
	return p.limit
}

func (p *PageQuery) Reverse() bool {
	return p.reverse
}

func (p *PageQuery) SelfLink() string {
	return p.request.URL.String()
}

func (p *PageQuery) PrevLink(c *voting.Candidate) string {
	return p.link(c, true)
}

func (p *PageQuery) NextLink(c *voting.Candidate) string {
	return p.link(c, false)
}

func (p *PageQuery) ListOptions(pollAddress string) *storage.ListOptions {
	options := &storage.ListOptions{
		Reverse: p.reverse,
		Limit:   p.limit,
	}
	if p.hasCursor {
		options.Cursor = []byte(voting.GetPollCandidateKey(pollAddress, p.cursor))
	}

	return options
}

func (p *PageQuery) ResourceList(rs []resource.Resource, first, last *voting.Candidate) *resource.ResourceList {
	if p.reverse {
		return resource.NewResourceList(rs, p.SelfLink(), p.NextLink(first), p.PrevLink(last))
	}

	return resource.NewResourceList(rs, p.SelfLink(), p.NextLink(last), p.PrevLink(first))
}

func (p *PageQuery) parseRequest() error {
	q := p.request.URL.Query()
	if r := q.Get("reverse"); r != "" {
		reverse, err := strconv.ParseBool(r)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("reverse", r)
		}
		p.reverse = reverse
	}

	if c := q.Get("cursor"); c != "" {
		cursor, err := strconv.ParseUint(c, 10, 64)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("cursor", c)
		}
		p.cursor = cursor
		p.hasCursor = true
	}

	if l := q.Get("limit"); l != "" {
		limit, err := strconv.ParseUint(l, 10, 64)
		if err != nil {
			return errors.BadRequestParameter.Clone().SetData("limit", l)
		}
		if limit == 0 || limit > MaxLimit {
			return errors.BadRequestParameter.Clone().SetData("limit", l).SetData("max", MaxLimit)
		}
		p.limit = limit
	}

	return nil
}

func (p *PageQuery) link(c *voting.Candidate, reverse bool) string {
	v := url.Values{
		"reverse": []string{strconv.FormatBool(reverse)},
	}
	if c != nil {
		v.Set("cursor", strconv.FormatUint(c.Index, 10))
	}
	if p.limit > 0 {
		v.Set("limit", strconv.FormatUint(p.limit, 10))
	}

	return fmt.Sprintf("%s?%s", p.request.URL.Path, v.Encode())
}
