package handler

import (
	"net/http"

	"github.com/segyhp/lamf-engine/internal/domain"
	"github.com/segyhp/lamf-engine/pkg/response"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Health      *HealthHandler
	Product     *ProductHandler
	Application *ApplicationHandler
	Collateral  *CollateralHandler
}

func NewRouter(h Handlers, jwtSecret []byte, log *zap.Logger) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.CORSMiddleware, LoggingMiddleware(log), response.JSONMiddleware)

	// mux only runs middleware on matched routes, so preflight needs a route of its own
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	api := router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", h.Health.Health).Methods("GET")
	api.HandleFunc("/health/ready", h.Health.Ready).Methods("GET")
	auth := AuthMiddleware(jwtSecret)
	admin := RequireRole(domain.RoleAdmin)

	// Product catalogue: reads are public, writes are admin only
	products := api.PathPrefix("/loan-products").Subrouter()
	products.HandleFunc("", h.Product.List).Methods("GET")
	products.HandleFunc("/{id}", h.Product.Get).Methods("GET")
	products.Handle("", auth(admin(http.HandlerFunc(h.Product.Create)))).Methods("POST")
	products.Handle("/{id}", auth(admin(http.HandlerFunc(h.Product.Update)))).Methods("PUT")
	products.Handle("/{id}", auth(admin(http.HandlerFunc(h.Product.Delete)))).Methods("DELETE")

	applications := api.PathPrefix("/loan-applications").Subrouter()
	applications.Use(auth)
	applications.HandleFunc("", h.Application.List).Methods("GET")
	applications.HandleFunc("/ongoing", h.Application.ListOngoing).Methods("GET")
	applications.HandleFunc("/{id}", h.Application.Get).Methods("GET")
	applications.HandleFunc("", h.Application.Create).Methods("POST")
	applications.HandleFunc("/api", h.Application.Create).Methods("POST")
	applications.HandleFunc("/{id}", h.Application.Update).Methods("PUT")

	collaterals := api.PathPrefix("/collaterals").Subrouter()
	collaterals.Use(auth)
	collaterals.HandleFunc("", h.Collateral.List).Methods("GET")
	collaterals.HandleFunc("/loan/{loanId}", h.Collateral.ListByLoan).Methods("GET")
	collaterals.HandleFunc("/{id}", h.Collateral.Get).Methods("GET")
	collaterals.HandleFunc("", h.Collateral.Create).Methods("POST")
	collaterals.HandleFunc("/{id}", h.Collateral.Update).Methods("PUT")
	collaterals.HandleFunc("/{id}/pledge", h.Collateral.UpdatePledgeStatus).Methods("PUT")

	return router
}
