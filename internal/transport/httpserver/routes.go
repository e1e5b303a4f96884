package httpserver

import (
	"net/http"
	"time"

	"github.com/simseulnyang/TripNote/internal/config"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/handler"
	authmw "github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/simseulnyang/TripNote/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORS.AllowedOrigins))
	if cfg.RateLimit.Enabled {
		r.Use(authmw.NewRateLimiter(cfg.RateLimit).Middleware)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewProviderAuth(cfg.Auth, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/users/me", handlers.GetProfile)
			r.Patch("/users/me", handlers.UpdateProfile)
			r.Delete("/users/me", handlers.DeleteAccount)

			r.Get("/trips", handlers.ListTrips)
			r.Post("/trips", handlers.CreateTrip)
			r.Get("/trips/{trip_id}", handlers.GetTrip)
			r.Patch("/trips/{trip_id}", handlers.UpdateTrip)
			r.Delete("/trips/{trip_id}", handlers.DeleteTrip)

			r.Get("/trips/{trip_id}/destinations", handlers.ListDestinations)
			r.Post("/trips/{trip_id}/destinations", handlers.CreateDestination)
			r.Get("/trips/{trip_id}/destinations/{destination_id}", handlers.GetDestination)
			r.Put("/trips/{trip_id}/destinations/{destination_id}", handlers.UpdateDestination)
			r.Delete("/trips/{trip_id}/destinations/{destination_id}", handlers.DeleteDestination)

			r.Get("/trips/{trip_id}/days", handlers.ListDayPlans)
			r.Patch("/trips/{trip_id}/days/{day_number}", handlers.UpdateDayPlan)

			r.Get("/trips/{trip_id}/budgets", handlers.ListBudgets)
			r.Put("/trips/{trip_id}/budgets", handlers.SetBudget)
			r.Get("/trips/{trip_id}/budgets/summary", handlers.BudgetSummary)

			r.Get("/trips/{trip_id}/expenses", handlers.ListExpenses)
			r.Post("/trips/{trip_id}/expenses", handlers.CreateExpense)
			r.Get("/trips/{trip_id}/expenses/summary", handlers.ExpenseSummary)
			r.Get("/trips/{trip_id}/expenses/{expense_id}", handlers.GetExpense)
			r.Put("/trips/{trip_id}/expenses/{expense_id}", handlers.UpdateExpense)
			r.Delete("/trips/{trip_id}/expenses/{expense_id}", handlers.DeleteExpense)

			r.Get("/trips/{trip_id}/logs", handlers.ListTripLogs)
			r.Post("/trips/{trip_id}/logs", handlers.CreateTripLog)
			r.Get("/trips/{trip_id}/logs/{log_id}", handlers.GetTripLog)
			r.Put("/trips/{trip_id}/logs/{log_id}", handlers.UpdateTripLog)
			r.Delete("/trips/{trip_id}/logs/{log_id}", handlers.DeleteTripLog)

			r.Get("/trips/{trip_id}/comparison", handlers.Comparison)
		})
	})

	return r
}
