package poll

import (
	"fmt"
	"strconv"
	"time"

	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
)

var flags = cmdcommon.NewClientFlags()

// parseTimestamp reads unix seconds or an RFC 3339 time.
func parseTimestamp(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("unix seconds or RFC 3339 time expected: '%s'", s)
	}

	return t.Unix(), nil
}
