package handlers

import (
	"net/http"

	"bookStore/entities"

	"github.com/gorilla/mux"
)

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req entities.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	order, err := h.ors.CreateOrder(req)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetOrdersByEmail(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ors.GetOrdersByEmail(mux.Vars(r)["email"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.ors.GetAllOrders()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if orders == nil {
		orders = []entities.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req entities.StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	order, err := h.ors.SetOrderStatus(mux.Vars(r)["orderId"], req.Status)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.ors.CancelOrder(mux.Vars(r)["orderId"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.ors.DeleteOrder(mux.Vars(r)["orderId"]); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Order deleted successfully")
}
