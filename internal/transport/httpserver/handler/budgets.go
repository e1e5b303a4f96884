package handler

import (
	"net/http"
	"time"

	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type budgetRequest struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Memo     string `json:"memo"`
}

type budgetResponse struct {
	ID            string    `json:"id"`
	TripID        string    `json:"trip_id"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_display"`
	Amount        int64     `json:"amount"`
	Memo          string    `json:"memo"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type budgetListResponse struct {
	Items []budgetResponse `json:"items"`
	Total int              `json:"total"`
}

func toBudgetResponse(budget expensesdomain.Budget) budgetResponse {
	return budgetResponse{
		ID:            budget.ID,
		TripID:        budget.TripID,
		Category:      budget.Category,
		CategoryLabel: expensesdomain.BudgetCategoryLabels[budget.Category],
		Amount:        budget.Amount,
		Memo:          budget.Memo,
		CreatedAt:     budget.CreatedAt,
		UpdatedAt:     budget.UpdatedAt,
	}
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	budgets, err := h.Expenses.ListBudgets(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "budgets.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	items := make([]budgetResponse, 0, len(budgets))
	for _, budget := range budgets {
		items = append(items, toBudgetResponse(budget))
	}
	writeJSON(w, http.StatusOK, budgetListResponse{Items: items, Total: len(items)})
}

// SetBudget upserts the trip's budget for one category: 201 when the row is
// new, 200 when an existing amount was overwritten.
func (h *Handlers) SetBudget(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	budget, created, err := h.Expenses.SetBudget(r.Context(), expensesdomain.SetBudgetInput{
		UserID:   user.ID,
		TripID:   tripID,
		Category: req.Category,
		Amount:   req.Amount,
		Memo:     req.Memo,
	})
	if err != nil {
		h.serviceError(w, "budgets.set", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, toBudgetResponse(*budget))
}

func (h *Handlers) BudgetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	summary, err := h.Analytics.BudgetSummary(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "budgets.summary", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
