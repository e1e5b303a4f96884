package expenses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/validation"
)

// TripGetter is the slice of the trips service this domain needs: ownership
// checks and destination-link verification.
type TripGetter interface {
	GetTrip(ctx context.Context, userID, tripID string) (*trips.Trip, error)
	GetTripDestination(ctx context.Context, userID, tripID, destinationID string) (*trips.Destination, error)
}

type Service struct {
	repo  Repository
	trips TripGetter
}

func NewService(repo Repository, tripGetter TripGetter) *Service {
	return &Service{repo: repo, trips: tripGetter}
}

func (s *Service) ListBudgets(ctx context.Context, userID, tripID string) ([]Budget, error) {
	if _, err := s.trips.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListBudgets(ctx, tripID)
}

// ValidateBudget checks a budget payload without touching storage; the trip
// create handler uses it to pre-validate nested budgets.
func (s *Service) ValidateBudget(input SetBudgetInput) error {
	if !IsValidBudgetCategory(input.Category) {
		return validation.Errorf("category", "invalid category %q", input.Category)
	}
	if input.Amount < 0 {
		return validation.Errorf("amount", "amount must not be negative")
	}
	return nil
}

// SetBudget upserts the trip's budget for one category and reports whether a
// new row was created.
func (s *Service) SetBudget(ctx context.Context, input SetBudgetInput) (*Budget, bool, error) {
	if err := s.ValidateBudget(input); err != nil {
		return nil, false, err
	}
	if _, err := s.trips.GetTrip(ctx, input.UserID, input.TripID); err != nil {
		return nil, false, err
	}

	var result Budget
	created := false
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		budget, err := tx.GetBudgetByCategory(ctx, input.TripID, input.Category)
		switch {
		case errors.Is(err, ErrBudgetNotFound):
			budget = &Budget{
				ID:       uuid.NewString(),
				TripID:   input.TripID,
				Category: input.Category,
				Amount:   input.Amount,
				Memo:     input.Memo,
			}
			if err := tx.CreateBudget(ctx, budget); err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		default:
			budget.Amount = input.Amount
			budget.Memo = input.Memo
			budget.UpdatedAt = time.Now().UTC()
			if err := tx.UpdateBudget(ctx, budget); err != nil {
				return err
			}
		}

		result = *budget
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &result, created, nil
}

func (s *Service) ListExpenses(ctx context.Context, userID, tripID string) ([]Expense, error) {
	if _, err := s.trips.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, tripID)
}

func (s *Service) CreateExpense(ctx context.Context, userID, tripID string, input ExpenseInput) (*Expense, error) {
	trip, err := s.trips.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	expense, err := s.buildExpense(ctx, userID, trip, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) GetExpense(ctx context.Context, userID, expenseID string) (*Expense, error) {
	return s.repo.GetExpense(ctx, userID, expenseID)
}

func (s *Service) UpdateExpense(ctx context.Context, userID, expenseID string, input ExpenseInput) (*Expense, error) {
	existing, err := s.repo.GetExpense(ctx, userID, expenseID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.GetTrip(ctx, userID, existing.TripID)
	if err != nil {
		return nil, err
	}

	expense, err := s.buildExpense(ctx, userID, trip, input)
	if err != nil {
		return nil, err
	}

	expense.ID = existing.ID
	expense.CreatedAt = existing.CreatedAt
	expense.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) DeleteExpense(ctx context.Context, userID, expenseID string) error {
	deleted, err := s.repo.DeleteExpense(ctx, userID, expenseID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrExpenseNotFound
	}
	return nil
}

func (s *Service) buildExpense(ctx context.Context, userID string, trip *trips.Trip, input ExpenseInput) (*Expense, error) {
	if !IsValidBudgetCategory(input.Category) {
		return nil, validation.Errorf("category", "invalid category %q", input.Category)
	}
	if input.Amount <= 0 {
		return nil, validation.Errorf("amount", "amount must be positive")
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, validation.Errorf("description", "description is required")
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = PaymentCard
	}
	if !IsValidPaymentMethod(paymentMethod) {
		return nil, validation.Errorf("payment_method", "invalid payment method %q", input.PaymentMethod)
	}

	if input.ExpenseDate.IsZero() {
		return nil, validation.Errorf("expense_date", "expense date is required")
	}
	if input.ExpenseDate.Before(trip.StartDate) || input.ExpenseDate.After(trip.EndDate) {
		return nil, validation.Errorf("expense_date", "expense date must fall within the trip's date range")
	}
	if input.ExpenseTime != nil {
		if _, err := time.Parse("15:04", *input.ExpenseTime); err != nil {
			return nil, validation.Errorf("expense_time", "expense time must be HH:MM")
		}
	}

	if input.DestinationID != nil {
		if _, err := s.trips.GetTripDestination(ctx, userID, trip.ID, *input.DestinationID); err != nil {
			return nil, err
		}
	}

	return &Expense{
		ID:            uuid.NewString(),
		TripID:        trip.ID,
		Category:      input.Category,
		Amount:        input.Amount,
		Description:   description,
		ExpenseDate:   input.ExpenseDate,
		ExpenseTime:   input.ExpenseTime,
		DayNumber:     trips.DeriveDayNumber(input.ExpenseDate, trip.StartDate),
		DestinationID: input.DestinationID,
		PaymentMethod: paymentMethod,
		ReceiptImage:  input.ReceiptImage,
	}, nil
}
