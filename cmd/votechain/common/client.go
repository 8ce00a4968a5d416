package common

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"boscoin.io/votechain/lib/client"
	votechaincommon "boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/keypair"
	"boscoin.io/votechain/lib/transition"
)

const DefaultClientTimeout = 10 * time.Second

// ClientFlags are shared by the commands talking to a running node.
type ClientFlags struct {
	Endpoint   string
	NetworkID  string
	ProgramID  string
	SecretSeed string
	Format     string
	Timeout    time.Duration
	NoRetry    bool
	Insecure   bool
}

func NewClientFlags() *ClientFlags {
	return &ClientFlags{
		Endpoint:   votechaincommon.GetENVValue("VOTECHAIN_ENDPOINT", "http://127.0.0.1:12345"),
		NetworkID:  votechaincommon.GetENVValue("VOTECHAIN_NETWORK_ID", ""),
		ProgramID:  votechaincommon.GetENVValue("VOTECHAIN_PROGRAM_ID", votechaincommon.DefaultProgramID),
		SecretSeed: votechaincommon.GetENVValue("VOTECHAIN_SECRET_SEED", ""),
		Format:     "prettyjson",
		Timeout:    DefaultClientTimeout,
	}
}

// AddReadFlags registers the flags needed to query a node.
func (f *ClientFlags) AddReadFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.Endpoint, "endpoint", f.Endpoint, "endpoint of the node")
	fs.StringVar(&f.Format, "format", f.Format, "format={json, prettyjson, yaml}")
	fs.DurationVar(&f.Timeout, "timeout", f.Timeout, "request timeout")
	fs.BoolVar(&f.NoRetry, "no-retry", f.NoRetry, "do not retry failed requests")
	fs.BoolVar(&f.Insecure, "insecure", f.Insecure, "skip the verification of the node certificate")
}

// AddSubmitFlags registers the flags needed to sign and submit transitions.
func (f *ClientFlags) AddSubmitFlags(fs *pflag.FlagSet) {
	f.AddReadFlags(fs)

	fs.StringVar(&f.NetworkID, "network-id", f.NetworkID, "network id")
	fs.StringVar(&f.ProgramID, "program-id", f.ProgramID, "program id")
	fs.StringVar(&f.SecretSeed, "secret-seed", f.SecretSeed, "secret seed of the signer")
}

func (f *ClientFlags) Config() votechaincommon.Config {
	config := votechaincommon.NewConfig([]byte(f.NetworkID))
	config.ProgramID = []byte(f.ProgramID)

	return config
}

func (f *ClientFlags) Keypair() (*keypair.Full, error) {
	if len(f.SecretSeed) < 1 {
		return nil, errors.New("--secret-seed must be given")
	}

	kp, err := keypair.Parse(f.SecretSeed)
	if err != nil {
		return nil, err
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, errors.New("provided key is an address, not a secret seed")
	}

	return full, nil
}

func (f *ClientFlags) Client() (*client.Client, error) {
	var retry *client.RetrySetting
	if !f.NoRetry {
		retry = client.DefaultRetrySetting
	}

	return client.NewClientWithConfig(f.Endpoint, client.HTTP2ClientConfig{
		Timeout:            f.Timeout,
		KeepAlive:          true,
		InsecureSkipVerify: f.Insecure,
		Retry:              retry,
	})
}

// Submit signs a transition carrying `payload` and sends it to the node.
func (f *ClientFlags) Submit(payload transition.Payload) (receipt client.Receipt, err error) {
	if len(f.NetworkID) < 1 {
		err = errors.New("--network-id must be given")
		return
	}

	var kp *keypair.Full
	if kp, err = f.Keypair(); err != nil {
		return
	}

	var tr transition.Transition
	if tr, err = transition.NewTransition(kp.Address(), payload); err != nil {
		return
	}
	if err = tr.Sign(kp, []byte(f.NetworkID)); err != nil {
		return
	}

	var c *client.Client
	if c, err = f.Client(); err != nil {
		return
	}
	defer c.HTTP.Close()

	return c.SubmitTransition(tr)
}

func (f *ClientFlags) Print(v interface{}) error {
	if err := EncodeTo(f.Format, v, os.Stdout); err != nil {
		return fmt.Errorf("failed to print: %v", err)
	}

	return nil
}
