package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/votechain/cmd/votechain/common"
	"boscoin.io/votechain/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type (
	keyPair struct {
		Seed       string  `json:"seed" yaml:"seed"`
		Address    string  `json:"address" yaml:"address"`
		Passphrase *string `json:"passphrase,omitempty" yaml:"passphrase,omitempty"`
	}
)

var defaultTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"valueString": func(input *string) string {
		if input == nil {
			return ""
		}
		return *input
	},
}).Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}{{ if valueString .Passphrase }}
    Passphrase: "{{ .Passphrase|valueString }}"{{ end }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

var encoders = map[string]common.Encode{
	"json":       common.DefaultEncodes["json"],
	"prettyjson": common.DefaultEncodes["prettyjson"],
	"yaml":       common.DefaultEncodes["yaml"],
	"default":    defaultEncode,
	"oneline":    onelineEncode,
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<passphrase> | --parse <secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))

			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			if err := printKeyPair(os.Stdout, flagFormat, kp, input, flagParse); err != nil {
				common.PrintFlagsError(c, "--format", err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

func printKeyPair(w io.Writer, format string, kp *keypair.Full, input string, parsed bool) error {
	encode, ok := encoders[format]
	if !ok {
		return fmt.Errorf(`"%s" not recognized`, format)
	}

	var passphrase *string
	if !parsed && len(input) > 0 {
		passphrase = &input
	}

	return encode(keyPair{Seed: kp.Seed(), Address: kp.Address(), Passphrase: passphrase}, w)
}

// generateKP makes a random keypair, or the keypair of a passphrase, or parses
// a secret seed with `fromSeed`.
func generateKP(seedOrPassphrase string, fromSeed bool) (full *keypair.Full, err error) {
	if len(seedOrPassphrase) == 0 {
		full, err = keypair.RandomCanFail()
	} else if fromSeed {
		var kp keypair.KP

		if kp, err = keypair.Parse(seedOrPassphrase); err == nil {
			if kf, ok := kp.(*keypair.Full); ok {
				full = kf
			} else {
				err = fmt.Errorf("not a secret seed")
			}
		}
	} else {
		full = keypair.Master(seedOrPassphrase).(*keypair.Full)
	}

	return
}
