package api

import (
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/votechain/lib/errors"
	"boscoin.io/votechain/lib/network/httputils"
	"boscoin.io/votechain/lib/node/api/resource"
	"boscoin.io/votechain/lib/transition"
)

func (api NetworkHandlerAPI) PostTransitionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, DefaultMaxTransitionBodyLength))
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	tr, err := transition.NewTransitionFromJSON(body)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	receipt, err := api.ledger.Submit(r.Context(), tr)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}

func (api NetworkHandlerAPI) GetTransitionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	receipt, err := api.ledger.GetReceipt(hash)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewReceipt(receipt))
}
