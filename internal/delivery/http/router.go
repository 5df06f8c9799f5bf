package http

import (
	"net/http"

	"go-clinic-workflow/internal/delivery/http/handler"
	"go-clinic-workflow/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	consultationHandler *handler.ConsultationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	consultationHandler *handler.ConsultationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		consultationHandler: consultationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Protected routes with per-route role gates. Front desk registers
	// patients and reopens encounters; care professionals run
	// consultations; both can browse the patient list and history.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	frontDesk := middleware.RequireFrontDesk
	care := middleware.RequireCareProfessional
	staff := middleware.RequireRole("front_desk", "care_professional")

	protected.Handle("/patients", frontDesk(http.HandlerFunc(r.patientHandler.Register))).Methods(http.MethodPost)
	protected.Handle("/patients", staff(http.HandlerFunc(r.patientHandler.List))).Methods(http.MethodGet)
	protected.Handle("/patients/search", frontDesk(http.HandlerFunc(r.patientHandler.SearchByPhone))).Methods(http.MethodGet)
	protected.Handle("/patients/{id}/encounters", frontDesk(http.HandlerFunc(r.patientHandler.OpenNewEncounter))).Methods(http.MethodPost)
	protected.Handle("/patients/{id}/consultations", staff(http.HandlerFunc(r.consultationHandler.History))).Methods(http.MethodGet)

	protected.Handle("/session/patient", care(http.HandlerFunc(r.consultationHandler.SelectPatient))).Methods(http.MethodPut)
	protected.Handle("/session/medications", care(http.HandlerFunc(r.consultationHandler.ListMedications))).Methods(http.MethodGet)
	protected.Handle("/session/medications", care(http.HandlerFunc(r.consultationHandler.AddMedication))).Methods(http.MethodPost)
	protected.Handle("/session/medications/{lineId}", care(http.HandlerFunc(r.consultationHandler.RemoveMedication))).Methods(http.MethodDelete)
	protected.Handle("/session/medications/suggested-qty", care(http.HandlerFunc(r.consultationHandler.SuggestedQuantity))).Methods(http.MethodGet)
	protected.Handle("/consultations", care(http.HandlerFunc(r.consultationHandler.Submit))).Methods(http.MethodPost)
	protected.Handle("/consultations/{id}/document", care(http.HandlerFunc(r.consultationHandler.Document))).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
