package common

import (
	"os"

	"github.com/joho/godotenv"
)

const DefaultEnvFile = ".env"

// The flag defaults are read from the environment while the commands are
// declared, so the env file is loaded when this package is initialized.
func init() {
	if err := LoadEnvFile(os.Getenv("VOTECHAIN_ENV_FILE")); err != nil {
		os.Stderr.WriteString("error: failed to load env file; " + err.Error() + "\n")
		os.Exit(1)
	}
}

// LoadEnvFile sets the `VOTECHAIN_*` variables found in `path`, or in
// `.env` of the current directory when `path` is empty. Variables already
// set in the environment are kept. A missing `.env` is not an error.
func LoadEnvFile(path string) error {
	if len(path) < 1 {
		if _, err := os.Stat(DefaultEnvFile); os.IsNotExist(err) {
			return nil
		}
		path = DefaultEnvFile
	}

	return godotenv.Load(path)
}
