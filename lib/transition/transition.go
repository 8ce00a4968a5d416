package transition

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/errors"
)

const Version string = "1"

// Transition is a signed request to change the ledger state. `H.Hash`
// covers all of `B`; `H.Signature` signs the network id and the hash.
type Transition struct {
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

// Body carries a nonce, so repeating the same request yields another hash.
type Body struct {
	Source  string  `json:"source"`
	Type    Type    `json:"type"`
	Nonce   string  `json:"nonce"`
	Payload Payload `json:"body"`
}

func (tb Body) MakeHash() []byte {
	return common.MustMakeObjectHash(tb)
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

func NewTransition(source string, payload Payload) (tr Transition, err error) {
	var t Type
	if t, err = TypeOf(payload); err != nil {
		return
	}

	body := Body{
		Source:  source,
		Type:    t,
		Nonce:   common.GetUniqueIDFromUUID(),
		Payload: payload,
	}

	tr = Transition{
		H: Header{
			Version: Version,
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}

	return
}

func (tr *Transition) Sign(kp keypair.KP, networkID []byte) (err error) {
	tr.H.Hash = tr.B.MakeHashString()
	tr.H.Signature, err = keypair.MakeSignatureString(kp, networkID, tr.H.Hash)

	return
}

func (tr Transition) GetHash() string {
	return tr.H.Hash
}

func (tr Transition) Source() string {
	return tr.B.Source
}

func (tr Transition) Type() Type {
	return tr.B.Type
}

func (tr Transition) Payload() Payload {
	return tr.B.Payload
}

// Addresses are the records touched by the payload.
func (tr Transition) Addresses() []string {
	if tr.B.Payload == nil {
		return nil
	}

	return tr.B.Payload.Addresses()
}

func (tr Transition) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tr)
	return
}

func (tr Transition) String() string {
	encoded, _ := json.MarshalIndent(tr, "", "  ")
	return string(encoded)
}

type bodyEnvelope struct {
	Source  string          `json:"source"`
	Type    Type            `json:"type"`
	Nonce   string          `json:"nonce"`
	Payload json.RawMessage `json:"body"`
}

func (tb *Body) UnmarshalJSON(b []byte) (err error) {
	var env bodyEnvelope
	if err = json.Unmarshal(b, &env); err != nil {
		return
	}

	var payload Payload
	if payload, err = UnmarshalPayloadJSON(env.Type, env.Payload); err != nil {
		return
	}

	tb.Source = env.Source
	tb.Type = env.Type
	tb.Nonce = env.Nonce
	tb.Payload = payload

	return nil
}

// NewTransitionFromJSON decodes a transition; any decoding failure is
// `errors.BadRequestParameter` unless it is already a coded error.
func NewTransitionFromJSON(b []byte) (tr Transition, err error) {
	if err = json.Unmarshal(b, &tr); err != nil {
		if _, ok := err.(*errors.Error); !ok {
			err = errors.BadRequestParameter.Clone().SetData("error", err.Error())
		}
		return
	}

	return
}
