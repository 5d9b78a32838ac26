package handlers

import (
	"net/http"

	"bookStore/entities"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req entities.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	session, err := h.ps.CreateCheckoutSession(r.Context(), req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) CheckPayment(w http.ResponseWriter, r *http.Request) {
	status, err := h.ps.CheckPayment(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
