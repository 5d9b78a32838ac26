package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bookStore/entities"
	"bookStore/models"
	"bookStore/services"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	bs  services.BookService
	ors services.OrderService
	fs  services.FavoriteService
	ps  services.PaymentService
	as  services.AuthService
	ss  services.StatsService
}

type HandlerParams struct {
	BookService    services.BookService
	OrdService     services.OrderService
	FavService     services.FavoriteService
	PaymentService services.PaymentService
	AuthService    services.AuthService
	StatsService   services.StatsService
}

func NewHandler(params HandlerParams) *Handler {
	return &Handler{
		bs:  params.BookService,
		ors: params.OrdService,
		fs:  params.FavService,
		ps:  params.PaymentService,
		as:  params.AuthService,
		ss:  params.StatsService,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Marshal")
		WriteErrorResponse(w, models.ErrServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(jsonData)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, entities.ErrorResponse{Message: message})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn().Err(err).Msg("Unmarshal")
		return models.ErrBadRequest
	}
	return nil
}

func WriteErrorResponse(w http.ResponseWriter, err error) {
	var verr entities.ValidationErrors
	switch {
	case errors.As(err, &verr):
		writeMessage(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, models.ErrServerError):
		writeMessage(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, models.ErrUnautorized):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, models.ErrForbidden):
		writeMessage(w, http.StatusForbidden, err.Error())
	case errors.Is(err, models.ErrBadRequest):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFoundError):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrNotAllowed):
		writeMessage(w, http.StatusNotAcceptable, err.Error())
	case errors.Is(err, services.ErrPaymentsDisabled):
		writeMessage(w, http.StatusServiceUnavailable, err.Error())
	default:
		log.Error().Err(err).Msg("unmapped error")
		writeMessage(w, http.StatusInternalServerError, models.ErrServerError.Error())
	}
}
