package common

const (
	// DefaultProgramID is mixed into every derived address, so the same
	// seeds produce different addresses under different programs.
	DefaultProgramID string = "votechain"

	DefaultDescriptionMaxLength   int = 200
	DefaultCandidateNameMaxLength int = 32
)

//
// Config holds the values every node of a network should agree on: they
// change how transitions are hashed, signed and validated.
//
type Config struct {
	NetworkID []byte
	ProgramID []byte

	DescriptionMaxLength   int
	CandidateNameMaxLength int
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.NetworkID = networkID
	p.ProgramID = []byte(DefaultProgramID)
	p.DescriptionMaxLength = DefaultDescriptionMaxLength
	p.CandidateNameMaxLength = DefaultCandidateNameMaxLength

	return p
}
