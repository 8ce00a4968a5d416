// Package test holds helpers shared by the tests of several packages.
package test

import (
	"os"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/common"
)

// LogHandler picks the handler for test logs from `VOTECHAIN_LOG_HANDLER`:
// "null" (default), "stdout" or "json".
func LogHandler() logging.Handler {
	handlers := map[string]func() logging.Handler{
		"null": logging.DiscardHandler,
		"stdout": func() logging.Handler {
			return logging.CallerStackHandler("%+v", logging.StdoutHandler)
		},
		"json": func() logging.Handler {
			return logging.StreamHandler(os.Stdout, common.JsonFormatEx(false, true))
		},
	}

	handler := handlers["null"]
	if h, ok := handlers[os.Getenv("VOTECHAIN_LOG_HANDLER")]; ok {
		handler = h
	}

	return handler()
}
