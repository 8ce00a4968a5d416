package metrics

const (
	Namespace       = "votechain"
	LedgerSubsystem = "ledger"
	APISubsystem    = "api"
)

const (
	LedgerType   = "type"
	LedgerResult = "result"

	ResultCommitted = "committed"
)
