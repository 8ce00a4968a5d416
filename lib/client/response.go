package client

import (
	"fmt"
)

type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Kind     string                 `json:"kind,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Error is a problem document returned by the node.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	if len(e.Problem.Detail) > 0 {
		return fmt.Sprintf("%d %s: %s", e.Problem.Status, e.Problem.Title, e.Problem.Detail)
	}

	return fmt.Sprintf("%d %s (code=%d)", e.Problem.Status, e.Problem.Title, e.Problem.Code)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type Policy struct {
	RequireValidWindow  bool `json:"require_valid_window"`
	EnforceVotingWindow bool `json:"enforce_voting_window"`
	OneVotePerSigner    bool `json:"one_vote_per_signer"`
}

type NodeInfo struct {
	Links struct {
		Self        Link `json:"self"`
		Transitions Link `json:"transitions"`
		Poll        Link `json:"poll"`
	} `json:"_links"`

	NodeID    string `json:"node_id"`
	Version   string `json:"version"`
	NetworkID string `json:"network_id"`
	ProgramID string `json:"program_id"`
	Address   string `json:"address_scheme"`
	Policy    Policy `json:"policy"`
	Height    uint64 `json:"height"`
	Started   string `json:"started"`
}

type Receipt struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Hash      string   `json:"hash"`
	Type      string   `json:"type"`
	Source    string   `json:"source"`
	Addresses []string `json:"addresses"`
	Height    uint64   `json:"height"`
	Committed string   `json:"committed"`
}

type Poll struct {
	Links struct {
		Self       Link `json:"self"`
		Candidates Link `json:"candidates"`
		Candidate  Link `json:"candidate"`
		Stream     Link `json:"stream"`
	} `json:"_links"`

	PollID          uint64 `json:"poll_id"`
	PollStart       int64  `json:"poll_start"`
	PollEnd         int64  `json:"poll_end"`
	Description     string `json:"description"`
	CandidateAmount uint64 `json:"candidate_amount"`
	Address         string `json:"address"`
	Creator         string `json:"creator"`
}

type Candidate struct {
	Links struct {
		Self Link `json:"self"`
		Poll Link `json:"poll"`
	} `json:"_links"`

	CandidateName  string `json:"candidate_name"`
	PollID         uint64 `json:"poll_id"`
	CandidateVotes uint64 `json:"candidate_votes"`
	Address        string `json:"address"`
	Poll           string `json:"poll"`
	Index          uint64 `json:"index"`
}

type CandidatesPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Candidate `json:"records"`
	} `json:"_embedded"`
}

// PollEvent is one record of a poll stream; exactly one of the two is set.
type PollEvent struct {
	Poll      *Poll
	Candidate *Candidate
}
