//
// Encapsulate Stellar's keypair package
//
// Provides additional wrapper and convenience functions,
// suited for usage as the signer identity of transitions
//
package keypair

import (
	"github.com/btcsuite/btcutil/base58"
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type FromAddress = stellar.FromAddress
type KP = stellar.KP

// Aliases to stellar functions
var Master = stellar.Master
var Parse = stellar.Parse
var RandomCanFail = stellar.Random

// MakeSignature makes signature from given hash string
func MakeSignature(kp KP, networkID []byte, hash string) ([]byte, error) {
	return kp.Sign(signingMessage(networkID, hash))
}

// MakeSignatureString is `MakeSignature` in base58.
func MakeSignatureString(kp KP, networkID []byte, hash string) (string, error) {
	signature, err := MakeSignature(kp, networkID, hash)
	if err != nil {
		return "", err
	}

	return base58.Encode(signature), nil
}

// VerifySignature checks the base58 `signature` of `hash` was made by the
// owner of `address` for `networkID`.
func VerifySignature(address string, networkID []byte, hash, signature string) error {
	kp, err := Parse(address)
	if err != nil {
		return err
	}

	return kp.Verify(signingMessage(networkID, hash), base58.Decode(signature))
}

func signingMessage(networkID []byte, hash string) []byte {
	return append(append([]byte{}, networkID...), []byte(hash)...)
}

// IsAddress reports whether `s` parses as a public address, not a seed.
func IsAddress(s string) bool {
	kp, err := Parse(s)
	if err != nil {
		return false
	}
	_, ok := kp.(*FromAddress)

	return ok
}
