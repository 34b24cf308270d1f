/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:     Unique ID per request for tracing
  2. RequestLogger: Structured request logging (zerolog)
  3. Recoverer:     Panic recovery (500 instead of crash)
  4. CORS:          Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/employees/*   Employees, their records, bank balance and statement
  /api/models/*      Work model catalog
  /api/records/*     Attendance records and punches
  /api/overtime/*    Overtime requests and decisions
  /api/vacations/*   Vacation requests and decisions
  /api/dayoffs/*     Day-off requests and decisions
  /api/reports/*     Daily reports
  /api/admin/*       Manual bank adjustments, forced day close

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Get("/{id}/records", h.ListEmployeeRecords)
			r.Get("/{id}/bank", h.GetBankBalance)
			r.Get("/{id}/bank/statement", h.GetBankStatement)
			r.Get("/{id}/vacations", h.ListEmployeeVacations)
			r.Get("/{id}/dayoffs", h.ListEmployeeDayOffs)
		})

		// Work model routes
		r.Route("/models", func(r chi.Router) {
			r.Get("/", h.ListModels)
			r.Post("/", h.CreateModel)
			r.Get("/{id}", h.GetModel)
		})

		// Attendance record routes
		r.Route("/records", func(r chi.Router) {
			r.Post("/", h.OpenRecord)
			r.Get("/{id}", h.GetRecord)
			r.Get("/{id}/balance", h.GetRecordBalance)
			r.Post("/{id}/punches", h.RegisterPunch)
			r.Put("/{id}/punches", h.AdjustPunch)
		})

		// Overtime routes
		r.Route("/overtime", func(r chi.Router) {
			r.Post("/", h.SubmitOvertime)
			r.Get("/pending", h.ListPendingOvertime)
			r.Post("/{id}/approve", h.ApproveOvertime)
			r.Post("/{id}/reject", h.RejectOvertime)
		})

		// Vacation routes
		r.Route("/vacations", func(r chi.Router) {
			r.Post("/", h.SubmitVacation)
			r.Get("/pending", h.ListPendingVacations)
			r.Post("/{id}/approve", h.ApproveVacation)
			r.Post("/{id}/reject", h.RejectVacation)
			r.Post("/{id}/cancel", h.CancelVacation)
			r.Post("/{id}/conclude", h.ConcludeVacation)
		})

		// Day-off routes
		r.Route("/dayoffs", func(r chi.Router) {
			r.Post("/", h.SubmitDayOff)
			r.Get("/pending", h.ListPendingDayOffs)
			r.Post("/{id}/approve", h.ApproveDayOff)
			r.Post("/{id}/reject", h.RejectDayOff)
			r.Post("/{id}/cancel", h.CancelDayOff)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily", h.DailyReport)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/adjustments", h.CreateBankAdjustment)
			r.Post("/close", h.TriggerDayClose)
		})
	})

	return r
}
