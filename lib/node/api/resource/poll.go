package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/voting"
)

type Poll struct {
	p *voting.Poll
}

func NewPoll(p *voting.Poll) *Poll {
	return &Poll{p: p}
}

func (p Poll) GetMap() hal.Entry {
	return hal.Entry{
		"poll_id":          p.p.PollID,
		"poll_start":       p.p.PollStart,
		"poll_end":         p.p.PollEnd,
		"description":      p.p.Description,
		"candidate_amount": p.p.CandidateAmount,
		"address":          p.p.Address,
		"creator":          p.p.Creator,
	}
}

func (p Poll) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("candidates", hal.NewLink(pollURL(URLPollCandidates, p.p.PollID)+URLListQueryTemplate, hal.LinkAttr{"templated": true}))
	r.AddLink("candidate", hal.NewLink(pollURL(URLPollCandidates, p.p.PollID)+"/{name}", hal.LinkAttr{"templated": true}))
	r.AddLink("stream", hal.NewLink(pollURL(URLPollStream, p.p.PollID)))
	return r
}

func (p Poll) LinkSelf() string {
	return pollURL(URLPolls, p.p.PollID)
}

func (p Poll) MarshalJSON() ([]byte, error) {
	r := p.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
