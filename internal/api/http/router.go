package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"homestay-backend/internal/security"
)

// NewRouter wires the rental API. All /api/v1 routes require a valid bearer
// token; creates additionally pass through the idempotency replay cache.
func NewRouter(handler *BookingHandler, tokens security.TokenManager, idemStore *IdempotencyStore) *mux.Router {
	router := mux.NewRouter()
	router.Use(LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(AuthMiddleware(tokens))

	// The availability probe route must be registered before /rentals/{id}.
	api.HandleFunc("/rentals/availability", handler.CheckAvailability).Methods("GET")

	create := IdempotencyMiddleware(idemStore)(http.HandlerFunc(handler.CreateRental))
	api.Handle("/rentals", create).Methods("POST")
	api.HandleFunc("/rentals", handler.ListRentals).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}", handler.GetRental).Methods("GET")
	api.HandleFunc("/rentals/{id:[0-9]+}/decision", handler.DecideRental).Methods("PUT")
	api.HandleFunc("/rentals/{id:[0-9]+}/checkin", handler.CheckIn).Methods("PUT")
	api.HandleFunc("/rentals/{id:[0-9]+}/checkout", handler.CheckOut).Methods("PUT")
	api.HandleFunc("/rentals/{id:[0-9]+}", handler.CancelRental).Methods("DELETE")

	return router
}

// DefaultIdempotencyTTL bounds how long a successful create can be replayed.
const DefaultIdempotencyTTL = 24 * time.Hour
