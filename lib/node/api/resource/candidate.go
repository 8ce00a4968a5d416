package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/voting"
)

type Candidate struct {
	c *voting.Candidate
}

func NewCandidate(c *voting.Candidate) *Candidate {
	return &Candidate{c: c}
}

func (c Candidate) GetMap() hal.Entry {
	return hal.Entry{
		"candidate_name":  c.c.CandidateName,
		"poll_id":         c.c.PollID,
		"candidate_votes": c.c.CandidateVotes,
		"address":         c.c.Address,
		"poll":            c.c.Poll,
		"index":           c.c.Index,
	}
}

func (c Candidate) Resource() *hal.Resource {
	r := hal.NewResource(c, c.LinkSelf())
	r.AddLink("poll", hal.NewLink(pollURL(URLPolls, c.c.PollID)))
	return r
}

func (c Candidate) LinkSelf() string {
	return candidateURL(c.c.PollID, c.c.CandidateName)
}

func (c Candidate) MarshalJSON() ([]byte, error) {
	r := c.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
