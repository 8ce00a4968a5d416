package transition

import (
	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/errors"
)

type Checker struct {
	common.DefaultChecker

	Config     common.Config
	Transition Transition
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckVersion,
	CheckSource,
	CheckType,
	CheckHash,
	CheckPayload,
	CheckVerifySignature,
}

// IsWellFormed checks everything that does not need storage: the envelope,
// the payload limits and the target addresses, and the signature.
func (tr Transition) IsWellFormed(config common.Config) error {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Config:         config,
		Transition:     tr,
	}

	return common.RunChecker(checker)
}

func CheckVersion(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transition.H.Version != Version {
		return errors.InvalidTransitionVersion.Clone().SetData("version", checker.Transition.H.Version)
	}

	return nil
}

func CheckSource(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if !keypair.IsAddress(checker.Transition.B.Source) {
		return errors.WithAddress(errors.InvalidSource, checker.Transition.B.Source)
	}

	return nil
}

func CheckType(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	if checker.Transition.B.Payload == nil {
		return errors.UnknownTransitionType
	}
	t, err := TypeOf(checker.Transition.B.Payload)
	if err != nil {
		return err
	}
	if t != checker.Transition.B.Type {
		return errors.UnknownTransitionType.Clone().SetData("type", string(checker.Transition.B.Type))
	}

	return nil
}

func CheckHash(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	if checker.Transition.B.MakeHashString() != checker.Transition.H.Hash {
		return errors.HashMismatch.Clone().SetData("hash", checker.Transition.H.Hash)
	}

	return nil
}

func CheckPayload(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)
	return checker.Transition.B.Payload.IsWellFormed(checker.Config)
}

func CheckVerifySignature(c common.Checker, args ...interface{}) error {
	checker := c.(*Checker)

	err := keypair.VerifySignature(
		checker.Transition.B.Source,
		checker.Config.NetworkID,
		checker.Transition.H.Hash,
		checker.Transition.H.Signature,
	)
	if err != nil {
		return errors.InvalidSignature.Clone().SetData("hash", checker.Transition.H.Hash)
	}

	return nil
}
