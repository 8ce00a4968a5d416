package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/votechain/lib/network/httputils"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/voting"
)

func (api NetworkHandlerAPI) GetPollHandler(w http.ResponseWriter, r *http.Request) {
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

	httputils.WriteJSON(w, http.StatusOK, resource.NewPoll(poll))
}

func (api NetworkHandlerAPI) GetPollCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	poll, err := api.ledger.GetPollByID(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	candidates, err := api.ledger.GetCandidates(poll.Address, p.ListOptions(poll.Address))
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var first, last *voting.Candidate
	for _, c := range candidates {
		if first == nil {
			first = c
		}
		last = c
		rs = append(rs, resource.NewCandidate(c))
	}

	httputils.WriteJSON(w, http.StatusOK, p.ResourceList(rs, first, last))
}

func (api NetworkHandlerAPI) GetPollCandidateHandler(w http.ResponseWriter, r *http.Request) {
	id, err := parsePollID(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	name := mux.Vars(r)["name"]
	if _, err = api.ledger.GetPollByID(id); err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	candidate, err := api.ledger.GetCandidateByName(id, name)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewCandidate(candidate))
}
