package api

import (
	"net/http"

	"boscoin.io/votechain/lib/network/httputils"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	height, err := api.ledger.Height()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	info := api.nodeInfo
	info.Height = height
	info.Policy = api.ledger.Policy()

	httputils.WriteJSON(w, http.StatusOK, info)
}
