package expenses

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListBudgets(ctx context.Context, tripID string) ([]Budget, error)
	GetBudgetByCategory(ctx context.Context, tripID, category string) (*Budget, error)
	CreateBudget(ctx context.Context, budget *Budget) error
	UpdateBudget(ctx context.Context, budget *Budget) error

	CreateExpense(ctx context.Context, expense *Expense) error
	ListExpenses(ctx context.Context, tripID string) ([]Expense, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*Expense, error)
	UpdateExpense(ctx context.Context, expense *Expense) error
	DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error)
}
