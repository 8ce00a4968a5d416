package ledger

// Policy switches the rules the ledger applies on top of the record
// invariants.
type Policy struct {
	// RequireValidWindow rejects a poll whose start is not before its end.
	RequireValidWindow bool `json:"require_valid_window"`

	// EnforceVotingWindow only accepts votes with
	// `poll_start <= now <= poll_end` by the ledger clock.
	EnforceVotingWindow bool `json:"enforce_voting_window"`

	// OneVotePerSigner keeps a ballot per (poll, signer) and rejects a second
	// vote of the same signer in the same poll.
	OneVotePerSigner bool `json:"one_vote_per_signer"`
}

func DefaultPolicy() Policy {
	return Policy{
		RequireValidWindow:  true,
		EnforceVotingWindow: true,
		OneVotePerSigner:    false,
	}
}

// PermissivePolicy stores and counts whatever is well formed.
func PermissivePolicy() Policy {
	return Policy{}
}
