package candidate

import (
	cmdcommon "boscoin.io/votechain/cmd/votechain/common"
)

var flags = cmdcommon.NewClientFlags()
