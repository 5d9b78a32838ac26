package handlers

import (
	"net/http"

	"bookStore/entities"

	"github.com/gorilla/mux"
)

func (h *Handler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	books, err := h.fs.GetFavorites(mux.Vars(r)["userId"])
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *Handler) SetFavorites(w http.ResponseWriter, r *http.Request) {
	var req entities.FavoritesRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	books, err := h.fs.SetFavorites(mux.Vars(r)["userId"], req.BookIds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	if books == nil {
		books = []entities.Book{}
	}
	writeJSON(w, http.StatusOK, books)
}
