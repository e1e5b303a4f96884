package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/validation"
)

type fakeExpensesRepo struct {
	budgets  map[string]*Budget
	expenses map[string]*Expense
}

func newFakeExpensesRepo() *fakeExpensesRepo {
	return &fakeExpensesRepo{
		budgets:  make(map[string]*Budget),
		expenses: make(map[string]*Expense),
	}
}

func (f *fakeExpensesRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(f)
}

func (f *fakeExpensesRepo) ListBudgets(ctx context.Context, tripID string) ([]Budget, error) {
	var result []Budget
	for _, budget := range f.budgets {
		if budget.TripID == tripID {
			result = append(result, *budget)
		}
	}
	return result, nil
}

func (f *fakeExpensesRepo) GetBudgetByCategory(ctx context.Context, tripID, category string) (*Budget, error) {
	for _, budget := range f.budgets {
		if budget.TripID == tripID && budget.Category == category {
			copied := *budget
			return &copied, nil
		}
	}
	return nil, ErrBudgetNotFound
}

func (f *fakeExpensesRepo) CreateBudget(ctx context.Context, budget *Budget) error {
	copied := *budget
	f.budgets[budget.ID] = &copied
	return nil
}

func (f *fakeExpensesRepo) UpdateBudget(ctx context.Context, budget *Budget) error {
	copied := *budget
	f.budgets[budget.ID] = &copied
	return nil
}

func (f *fakeExpensesRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeExpensesRepo) ListExpenses(ctx context.Context, tripID string) ([]Expense, error) {
	var result []Expense
	for _, expense := range f.expenses {
		if expense.TripID == tripID {
			result = append(result, *expense)
		}
	}
	return result, nil
}

func (f *fakeExpensesRepo) GetExpense(ctx context.Context, userID, expenseID string) (*Expense, error) {
	expense, ok := f.expenses[expenseID]
	if !ok {
		return nil, ErrExpenseNotFound
	}
	copied := *expense
	return &copied, nil
}

func (f *fakeExpensesRepo) UpdateExpense(ctx context.Context, expense *Expense) error {
	copied := *expense
	f.expenses[expense.ID] = &copied
	return nil
}

func (f *fakeExpensesRepo) DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	if _, ok := f.expenses[expenseID]; !ok {
		return false, nil
	}
	delete(f.expenses, expenseID)
	return true, nil
}

type fakeTripGetter struct {
	trip         *trips.Trip
	destinations map[string]*trips.Destination
}

func (f *fakeTripGetter) GetTrip(ctx context.Context, userID, tripID string) (*trips.Trip, error) {
	if f.trip == nil || f.trip.ID != tripID || f.trip.UserID != userID {
		return nil, trips.ErrTripNotFound
	}
	copied := *f.trip
	return &copied, nil
}

func (f *fakeTripGetter) GetTripDestination(ctx context.Context, userID, tripID, destinationID string) (*trips.Destination, error) {
	destination, ok := f.destinations[destinationID]
	if !ok || destination.TripID != tripID {
		return nil, trips.ErrDestinationNotFound
	}
	copied := *destination
	return &copied, nil
}

func testTrip() *trips.Trip {
	return &trips.Trip{
		ID:        "trip-1",
		UserID:    "user-1",
		Title:     "제주 여행",
		StartDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
	}
}

func newTestService(repo *fakeExpensesRepo) *Service {
	return NewService(repo, &fakeTripGetter{trip: testTrip()})
}

func validExpenseInput() ExpenseInput {
	return ExpenseInput{
		Category:    CategoryFood,
		Amount:      12000,
		Description: "흑돼지 구이",
		ExpenseDate: time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateExpenseRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	input := validExpenseInput()
	input.Amount = 0
	_, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input)
	verr, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "amount" {
		t.Fatalf("expected amount field, got %s", verr.Field)
	}
}

func TestCreateExpenseRejectsDateOutsideTripSpan(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	input := validExpenseInput()
	input.ExpenseDate = time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input)
	verr, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "expense_date" {
		t.Fatalf("expected expense_date field, got %s", verr.Field)
	}
}

func TestCreateExpenseRejectsInvalidCategory(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	input := validExpenseInput()
	input.Category = "souvenirs"
	if _, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input); err == nil {
		t.Fatal("expected error for a category outside the closed set")
	}
}

func TestCreateExpenseRejectsMalformedTime(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	badTime := "25:61"
	input := validExpenseInput()
	input.ExpenseTime = &badTime
	if _, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input); err == nil {
		t.Fatal("expected error for a malformed expense time")
	}
}

func TestCreateExpenseDerivesDayNumberAndDefaultsPayment(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	expense, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", validExpenseInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if expense.DayNumber == nil || *expense.DayNumber != 2 {
		t.Fatalf("expected day number 2, got %v", expense.DayNumber)
	}
	if expense.PaymentMethod != PaymentCard {
		t.Fatalf("expected default payment method card, got %s", expense.PaymentMethod)
	}
}

func TestCreateExpenseVerifiesDestinationLink(t *testing.T) {
	repo := newFakeExpensesRepo()
	svc := NewService(repo, &fakeTripGetter{
		trip: testTrip(),
		destinations: map[string]*trips.Destination{
			"dest-1": {ID: "dest-1", TripID: "trip-1", Name: "해변"},
		},
	})

	destinationID := "dest-1"
	input := validExpenseInput()
	input.DestinationID = &destinationID
	if _, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input); err != nil {
		t.Fatalf("expected linked expense to succeed, got %v", err)
	}

	missing := "dest-9"
	input.DestinationID = &missing
	if _, err := svc.CreateExpense(context.Background(), "user-1", "trip-1", input); err == nil {
		t.Fatal("expected error for an unknown destination link")
	}
}

func TestSetBudgetUpserts(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	input := SetBudgetInput{
		UserID:   "user-1",
		TripID:   "trip-1",
		Category: CategoryFood,
		Amount:   100000,
	}

	budget, created, err := svc.SetBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created {
		t.Fatal("expected first write to create the budget")
	}

	input.Amount = 150000
	updated, created, err := svc.SetBudget(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created {
		t.Fatal("expected second write to update, not create")
	}
	if updated.ID != budget.ID {
		t.Fatalf("expected the same budget row, got %s and %s", budget.ID, updated.ID)
	}
	if updated.Amount != 150000 {
		t.Fatalf("expected amount 150000, got %d", updated.Amount)
	}
}

func TestSetBudgetRejectsNegativeAmount(t *testing.T) {
	svc := newTestService(newFakeExpensesRepo())

	_, _, err := svc.SetBudget(context.Background(), SetBudgetInput{
		UserID:   "user-1",
		TripID:   "trip-1",
		Category: CategoryFood,
		Amount:   -1,
	})
	if _, ok := validation.As(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}
