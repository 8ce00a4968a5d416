package node

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/votechain/lib/common"
	"boscoin.io/votechain/lib/common/test"
)

func init() {
	common.SetLogging(log, logging.LvlDebug, test.LogHandler())
}
