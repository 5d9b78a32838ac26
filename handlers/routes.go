package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (h *Handler) Router(uploadDir string) *mux.Router {
	router := mux.NewRouter()
	router.Use(h.LoggingMiddleware)
	router.Use(h.ErrorHandleMiddleware)

	api := router.PathPrefix("/api").Subrouter()
	admin := api.NewRoute().Subrouter()
	admin.Use(h.AdminMiddleware)

	api.HandleFunc("/books", h.GetBooks).Methods("GET")
	api.HandleFunc("/books/batch", h.GetBooksBatch).Methods("POST")
	api.HandleFunc("/books/{id}", h.GetBook).Methods("GET")
	admin.HandleFunc("/books/create-book", h.CreateBook).Methods("POST")
	admin.HandleFunc("/books/edit/{id}", h.UpdateBook).Methods("PUT")
	admin.HandleFunc("/books/{id}", h.DeleteBook).Methods("DELETE")

	api.HandleFunc("/orders", h.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/email/{email}", h.GetOrdersByEmail).Methods("GET")
	api.HandleFunc("/orders/cancel/{orderId}", h.CancelOrder).Methods("PATCH")
	admin.HandleFunc("/orders/all", h.GetAllOrders).Methods("GET")
	admin.HandleFunc("/orders/status/{orderId}", h.SetOrderStatus).Methods("PATCH")
	admin.HandleFunc("/orders/delete/{orderId}", h.DeleteOrder).Methods("DELETE")

	api.HandleFunc("/favorites/{userId}", h.GetFavorites).Methods("GET")
	api.HandleFunc("/favorites/{userId}", h.SetFavorites).Methods("POST")

	api.HandleFunc("/create-checkout-session", h.CreateCheckoutSession).Methods("POST")
	api.HandleFunc("/check-payment/{sessionId}", h.CheckPayment).Methods("GET")

	api.HandleFunc("/auth/admin", h.AdminLogin).Methods("POST")
	admin.HandleFunc("/auth/logout", h.AdminLogout).Methods("POST")
	admin.HandleFunc("/admin", h.AdminStats).Methods("GET")

	if uploadDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}
	return router
}
