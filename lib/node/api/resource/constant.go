package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLNodeInfo          = APIPrefix + APIVersionV1 + "/"
	URLTransitions       = APIPrefix + APIVersionV1 + "/transitions"
	URLTransitionByHash  = APIPrefix + APIVersionV1 + "/transitions/{id}"
	URLPolls             = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollCandidates    = APIPrefix + APIVersionV1 + "/polls/{id}/candidates"
	URLPollCandidate     = APIPrefix + APIVersionV1 + "/polls/{id}/candidates/{name}"
	URLPollStream        = APIPrefix + APIVersionV1 + "/polls/{id}/stream"
	URLListQueryTemplate = "{?cursor,limit,reverse}"
)
