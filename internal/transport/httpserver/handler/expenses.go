package handler

import (
	"net/http"
	"time"

	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type expenseRequest struct {
	Category      string  `json:"category"`
	Amount        int64   `json:"amount"`
	Description   string  `json:"description"`
	ExpenseDate   string  `json:"expense_date"`
	ExpenseTime   *string `json:"expense_time"`
	DestinationID *string `json:"destination_id"`
	PaymentMethod string  `json:"payment_method"`
	ReceiptImage  string  `json:"receipt_image"`
}

type expenseResponse struct {
	ID                 string    `json:"id"`
	TripID             string    `json:"trip_id"`
	Category           string    `json:"category"`
	CategoryLabel      string    `json:"category_display"`
	Amount             int64     `json:"amount"`
	Description        string    `json:"description"`
	ExpenseDate        string    `json:"expense_date"`
	ExpenseTime        *string   `json:"expense_time"`
	DayNumber          *int      `json:"day_number"`
	DestinationID      *string   `json:"destination_id"`
	PaymentMethod      string    `json:"payment_method"`
	PaymentMethodLabel string    `json:"payment_method_display"`
	ReceiptImage       string    `json:"receipt_image"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type expenseListResponse struct {
	Items []expenseResponse `json:"items"`
	Total int               `json:"total"`
}

func toExpenseResponse(expense expensesdomain.Expense) expenseResponse {
	return expenseResponse{
		ID:                 expense.ID,
		TripID:             expense.TripID,
		Category:           expense.Category,
		CategoryLabel:      expensesdomain.BudgetCategoryLabels[expense.Category],
		Amount:             expense.Amount,
		Description:        expense.Description,
		ExpenseDate:        formatDate(expense.ExpenseDate),
		ExpenseTime:        expense.ExpenseTime,
		DayNumber:          expense.DayNumber,
		DestinationID:      expense.DestinationID,
		PaymentMethod:      expense.PaymentMethod,
		PaymentMethodLabel: expensesdomain.PaymentMethodLabels[expense.PaymentMethod],
		ReceiptImage:       expense.ReceiptImage,
		CreatedAt:          expense.CreatedAt,
		UpdatedAt:          expense.UpdatedAt,
	}
}

func (h *Handlers) expenseInput(w http.ResponseWriter, r *http.Request) (expensesdomain.ExpenseInput, bool) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return expensesdomain.ExpenseInput{}, false
	}

	expenseDate, err := parseDateRequired(req.ExpenseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid expense_date")
		return expensesdomain.ExpenseInput{}, false
	}

	return expensesdomain.ExpenseInput{
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		ExpenseDate:   expenseDate,
		ExpenseTime:   req.ExpenseTime,
		DestinationID: req.DestinationID,
		PaymentMethod: req.PaymentMethod,
		ReceiptImage:  req.ReceiptImage,
	}, true
}

func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	items, err := h.Expenses.ListExpenses(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "expenses.list", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	response := make([]expenseResponse, 0, len(items))
	for _, expense := range items {
		response = append(response, toExpenseResponse(expense))
	}
	writeJSON(w, http.StatusOK, expenseListResponse{Items: response, Total: len(response)})
}

func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	input, ok := h.expenseInput(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	expense, err := h.Expenses.CreateExpense(r.Context(), user.ID, tripID, input)
	if err != nil {
		h.serviceError(w, "expenses.create", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(*expense))
}

func (h *Handlers) GetExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	expenseID := chi.URLParam(r, "expense_id")
	expense, err := h.Expenses.GetExpense(r.Context(), user.ID, expenseID)
	if err != nil {
		h.serviceError(w, "expenses.get", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}
	if expense.TripID != tripID {
		writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	input, ok := h.expenseInput(w, r)
	if !ok {
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	expenseID := chi.URLParam(r, "expense_id")
	existing, err := h.Expenses.GetExpense(r.Context(), user.ID, expenseID)
	if err != nil {
		h.serviceError(w, "expenses.update", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}
	if existing.TripID != tripID {
		writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		return
	}

	expense, err := h.Expenses.UpdateExpense(r.Context(), user.ID, expenseID, input)
	if err != nil {
		h.serviceError(w, "expenses.update", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(*expense))
}

func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	expenseID := chi.URLParam(r, "expense_id")
	existing, err := h.Expenses.GetExpense(r.Context(), user.ID, expenseID)
	if err != nil {
		h.serviceError(w, "expenses.delete", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}
	if existing.TripID != tripID {
		writeError(w, http.StatusNotFound, "expense_not_found", "expense not found")
		return
	}

	if err := h.Expenses.DeleteExpense(r.Context(), user.ID, expenseID); err != nil {
		h.serviceError(w, "expenses.delete", err, "user_id", user.ID, "expense_id", expenseID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ExpenseSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	tripID := chi.URLParam(r, "trip_id")
	summary, err := h.Analytics.ExpenseSummary(r.Context(), user.ID, tripID)
	if err != nil {
		h.serviceError(w, "expenses.summary", err, "user_id", user.ID, "trip_id", tripID)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
