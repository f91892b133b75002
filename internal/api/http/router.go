package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

const apiPrefix = "/api/v1"

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Services bundles what the REST API needs.
type Services struct {
	Auth        service.AuthService
	Customer    service.CustomerService
	Equipment   service.EquipmentService
	Rental      service.RentalService
	Payment     service.PaymentService
	Maintenance service.MaintenanceService
}

// NewRouter builds the REST API with request logging, token auth and CORS.
func NewRouter(svcs Services, tokens security.TokenManager, db Pinger, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(requestLogging)
	router.Use(newAuthMiddleware(tokens).Handler)

	router.HandleFunc("/healthz", healthHandler(db)).Methods(http.MethodGet)

	api := router.PathPrefix(apiPrefix).Subrouter()
	NewAuthHandler(svcs.Auth).register(api)
	NewCustomerHandler(svcs.Customer).register(api)
	NewEquipmentHandler(svcs.Equipment).register(api)
	NewRentalHandler(svcs.Rental, svcs.Payment).register(api)
	NewPaymentHandler(svcs.Payment).register(api)
	NewMaintenanceHandler(svcs.Maintenance).register(api)

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(router)
}

func healthHandler(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.PingContext(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
