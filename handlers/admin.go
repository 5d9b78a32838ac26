package handlers

import (
	"net/http"

	"bookStore/models"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(r, &creds); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	res, err := h.as.AdminLogin(creds)
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.as.Logout(bearerToken(r)); err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.ss.GetAdminStats()
	if err != nil {
		WriteErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
