package http

import (
	"net/http"

	"hvac-backend/internal/handlers"
	"hvac-backend/internal/middleware"
	"hvac-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	Users          *handlers.UserHandler
	Equipment      *handlers.EquipmentHandler
	ServiceRequest *handlers.ServiceRequestHandler
	PMOC           *handlers.PMOCHandler
	Financial      *handlers.FinancialHandler
	Receipt        *handlers.ReceiptHandler
	Image          *handlers.ImageHandler
	Health         *handlers.HealthHandler
}

const (
	admin      = models.RoleAdmin
	technician = models.RoleTechnician
	client     = models.RoleClient
)

func NewRouter(h Handlers, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware)

	// any authenticated user
	authed := func(fn http.HandlerFunc) http.Handler {
		return authMiddleware.Authenticate(fn)
	}
	// authenticated user holding one of roles
	only := func(fn http.HandlerFunc, roles ...string) http.Handler {
		return authMiddleware.RequireRole(roles...)(fn)
	}

	// Public routes
	r.HandleFunc("/auth/register", h.Auth.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Auth.Login).Methods("POST")
	r.HandleFunc("/auth/logout", h.Auth.Logout).Methods("POST")

	r.HandleFunc("/health", h.Health.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", h.Health.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", h.Health.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Users
	api.Handle("/users", only(h.Users.ListUsers, admin)).Methods("GET")
	api.Handle("/users", only(h.Users.CreateUser, admin)).Methods("POST")

	// Clients and equipment
	api.Handle("/clients", authed(h.Equipment.ListClients)).Methods("GET")
	api.Handle("/equipment", authed(h.Equipment.ListEquipment)).Methods("GET")
	api.Handle("/equipment", only(h.Equipment.CreateEquipment, admin, client)).Methods("POST")

	// Service requests
	api.Handle("/services", authed(h.ServiceRequest.List)).Methods("GET")
	api.Handle("/services", only(h.ServiceRequest.Create, admin, client)).Methods("POST")
	api.Handle("/services/{id:[0-9]+}", authed(h.ServiceRequest.Get)).Methods("GET")
	api.Handle("/services/{id:[0-9]+}", only(h.ServiceRequest.Update, admin, technician)).Methods("PUT")

	// PMOC reports
	api.Handle("/pmoc", authed(h.PMOC.List)).Methods("GET")
	api.Handle("/pmoc", only(h.PMOC.Create, admin, technician)).Methods("POST")
	api.Handle("/pmoc/{id:[0-9]+}", authed(h.PMOC.Get)).Methods("GET")
	api.Handle("/pmoc/{id:[0-9]+}/images", authed(h.PMOC.ListImages)).Methods("GET")
	api.Handle("/pmoc/{id:[0-9]+}/images", only(h.PMOC.ReplaceImages, admin, technician)).Methods("POST")
	api.Handle("/pmoc/{id:[0-9]+}/generate-pdf", authed(h.PMOC.GeneratePDF)).Methods("POST")
	api.Handle("/pmoc/{id:[0-9]+}/share", authed(h.PMOC.Share)).Methods("GET")

	// Financial ledger
	api.Handle("/financial", only(h.Financial.List, admin)).Methods("GET")
	api.Handle("/financial", only(h.Financial.Create, admin)).Methods("POST")
	api.Handle("/financial/{id:[0-9]+}/status", only(h.Financial.UpdateStatus, admin)).Methods("PATCH")

	// Receipts
	api.Handle("/receipts", only(h.Receipt.List, admin)).Methods("GET")
	api.Handle("/receipts", only(h.Receipt.Create, admin)).Methods("POST")
	api.Handle("/receipts/{id:[0-9]+}/generate-pdf", only(h.Receipt.GeneratePDF, admin)).Methods("POST")
	api.Handle("/receipts/{id:[0-9]+}/share", only(h.Receipt.Share, admin)).Methods("GET")

	// Image bucket
	api.Handle("/images", only(h.Image.Upload, admin, technician)).Methods("POST")
	api.Handle("/images", only(h.Image.Delete, admin, technician)).Methods("DELETE")

	return r
}
