package errors

type Kind string

const (
	KindAlreadyExists  Kind = "already-exists"
	KindNotFound       Kind = "not-found"
	KindMalformedInput Kind = "malformed-input"
	KindRejected       Kind = "rejected"
	KindInternal       Kind = "internal"
)

var (
	// already exists
	StorageRecordAlreadyExists = NewError(100, "record already exists in storage")
	PollAlreadyExists          = NewError(101, "poll already exists")
	CandidateAlreadyExists     = NewError(102, "candidate already exists in poll")
	AlreadyVoted               = NewError(103, "signer already voted in poll")
	TransitionAlreadyExists    = NewError(104, "transition already committed")

	// not found
	StorageRecordDoesNotExist = NewError(120, "record does not exist in storage")
	PollNotFound              = NewError(121, "poll not found")
	CandidateNotFound         = NewError(122, "candidate not found")
	TransitionNotFound        = NewError(123, "transition not found")

	// malformed input
	BadRequestParameter      = NewError(140, "bad request parameter")
	UnknownTransitionType    = NewError(141, "unknown transition type")
	InvalidTransitionVersion = NewError(142, "invalid transition version")
	InvalidSource            = NewError(143, "source is not a valid public address")
	InvalidSignature         = NewError(144, "signature verification failed")
	HashMismatch             = NewError(145, "hash does not match the transition body")
	AddressMismatch          = NewError(146, "address does not match its seeds")
	DescriptionTooLong       = NewError(147, "description is too long")
	CandidateNameTooLong     = NewError(148, "candidate name is too long")
	CandidateNameEmpty       = NewError(149, "candidate name is empty")
	InvalidPollWindow        = NewError(150, "poll start must be before poll end")
	InvalidText              = NewError(151, "text is not valid UTF-8")

	// rejected by the ledger policy
	PollNotStarted = NewError(160, "poll is not started yet")
	PollEnded      = NewError(161, "poll already ended")
	VoteOverflow   = NewError(162, "candidate votes overflow")

	// internal
	StorageCoreError = NewError(180, "storage error")
	LedgerClosed     = NewError(181, "ledger is closed")
)

var kinds = map[uint]Kind{}

func init() {
	for kind, es := range map[Kind][]*Error{
		KindAlreadyExists: {
			StorageRecordAlreadyExists,
			PollAlreadyExists,
			CandidateAlreadyExists,
			AlreadyVoted,
			TransitionAlreadyExists,
		},
		KindNotFound: {
			StorageRecordDoesNotExist,
			PollNotFound,
			CandidateNotFound,
			TransitionNotFound,
		},
		KindMalformedInput: {
			BadRequestParameter,
			UnknownTransitionType,
			InvalidTransitionVersion,
			InvalidSource,
			InvalidSignature,
			HashMismatch,
			AddressMismatch,
			DescriptionTooLong,
			CandidateNameTooLong,
			CandidateNameEmpty,
			InvalidPollWindow,
			InvalidText,
		},
		KindRejected: {
			PollNotStarted,
			PollEnded,
			VoteOverflow,
		},
		KindInternal: {
			StorageCoreError,
			LedgerClosed,
		},
	} {
		for _, e := range es {
			kinds[e.Code] = kind
		}
	}
}
