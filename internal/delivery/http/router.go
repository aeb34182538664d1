package http

import (
	"net/http"

	"optical-clinic-api/internal/delivery/http/handler"
	"optical-clinic-api/internal/delivery/http/middleware"
	"optical-clinic-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	patientHandler       *handler.PatientHandler
	appointmentHandler   *handler.AppointmentHandler
	diagnosisHandler     *handler.DiagnosisHandler
	userHandler          *handler.UserHandler
	branchHandler        *handler.BranchHandler
	roleHandler          *handler.RoleHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	diagnosisHandler *handler.DiagnosisHandler,
	userHandler *handler.UserHandler,
	branchHandler *handler.BranchHandler,
	roleHandler *handler.RoleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	permissionMiddleware *middleware.PermissionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		patientHandler:       patientHandler,
		appointmentHandler:   appointmentHandler,
		diagnosisHandler:     diagnosisHandler,
		userHandler:          userHandler,
		branchHandler:        branchHandler,
		roleHandler:          roleHandler,
		auditLogHandler:      auditLogHandler,
		authMiddleware:       authMiddleware,
		permissionMiddleware: permissionMiddleware,
		corsMiddleware:       corsMiddleware,
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
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPost)

	// Patient management
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(r.permissionMiddleware.Require(entity.PermManagePatients))
	patients.HandleFunc("", r.patientHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("", r.patientHandler.List).Methods(http.MethodGet)
	patients.HandleFunc("/code/{code}", r.patientHandler.GetByCode).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.GetByID).Methods(http.MethodGet)
	patients.HandleFunc("/{id}", r.patientHandler.Update).Methods(http.MethodPut)
	patients.HandleFunc("/{id}", r.patientHandler.Deactivate).Methods(http.MethodDelete)
	patients.HandleFunc("/{id}/reactivate", r.patientHandler.Reactivate).Methods(http.MethodPost)
	patients.HandleFunc("/{patientId}/appointments", r.appointmentHandler.ListByPatient).Methods(http.MethodGet)
	patients.HandleFunc("/{patientId}/diagnoses", r.diagnosisHandler.ListByPatient).Methods(http.MethodGet)

	// Appointment management
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(r.permissionMiddleware.Require(entity.PermManageAppointments))
	appointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.List).Methods(http.MethodGet)
	appointments.HandleFunc("/doctor/{doctorId}", r.appointmentHandler.ListByDoctor).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	appointments.HandleFunc("/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.ChangeStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/doctor", r.appointmentHandler.ReassignDoctor).Methods(http.MethodPatch)

	// Diagnosis management
	diagnoses := api.PathPrefix("/diagnoses").Subrouter()
	diagnoses.Use(r.authMiddleware.Authenticate)
	diagnoses.Use(r.permissionMiddleware.Require(entity.PermManageDiagnoses))
	diagnoses.HandleFunc("", r.diagnosisHandler.Create).Methods(http.MethodPost)
	diagnoses.HandleFunc("", r.diagnosisHandler.List).Methods(http.MethodGet)
	diagnoses.HandleFunc("/fields", r.diagnosisHandler.ClinicalFields).Methods(http.MethodGet)
	diagnoses.HandleFunc("/validate-structure", r.diagnosisHandler.ValidateStructure).Methods(http.MethodPost)
	diagnoses.HandleFunc("/reminders/pending", r.diagnosisHandler.PendingReminders).Methods(http.MethodGet)
	diagnoses.HandleFunc("/stats", r.diagnosisHandler.Stats).Methods(http.MethodGet)
	diagnoses.HandleFunc("/{id}", r.diagnosisHandler.GetByID).Methods(http.MethodGet)
	diagnoses.HandleFunc("/{id}", r.diagnosisHandler.Update).Methods(http.MethodPut)
	diagnoses.HandleFunc("/{id}", r.diagnosisHandler.Delete).Methods(http.MethodDelete)
	diagnoses.HandleFunc("/{id}/reminder-sent", r.diagnosisHandler.MarkReminderSent).Methods(http.MethodPost)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.Deactivate).Methods(http.MethodDelete)
	admin.HandleFunc("/users/{id}/reactivate", r.userHandler.Reactivate).Methods(http.MethodPost)

	// Branch management (admin)
	admin.HandleFunc("/branches", r.branchHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/branches", r.branchHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/branches/{id}", r.branchHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/branches/{id}", r.branchHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/branches/{id}", r.branchHandler.Deactivate).Methods(http.MethodDelete)

	// Role and permission management (admin)
	admin.HandleFunc("/roles", r.roleHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/roles", r.roleHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/roles/{id}", r.roleHandler.GetByID).Methods(http.MethodGet)
	admin.HandleFunc("/roles/{id}", r.roleHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/roles/{id}", r.roleHandler.Deactivate).Methods(http.MethodDelete)
	admin.HandleFunc("/roles/{id}/permissions", r.roleHandler.AssignPermissions).Methods(http.MethodPut)
	admin.HandleFunc("/permissions", r.roleHandler.CreatePermission).Methods(http.MethodPost)
	admin.HandleFunc("/permissions", r.roleHandler.ListPermissions).Methods(http.MethodGet)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
