package expenses

import (
	"context"
	"errors"

	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListBudgets(ctx context.Context, tripID string) ([]expensesdomain.Budget, error) {
	var budgets []expensesdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("category asc").
		Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (r *PostgresRepository) GetBudgetByCategory(ctx context.Context, tripID, category string) (*expensesdomain.Budget, error) {
	var budget expensesdomain.Budget
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND category = ?", tripID, category).
		First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrBudgetNotFound
		}
		return nil, err
	}
	return &budget, nil
}

func (r *PostgresRepository) CreateBudget(ctx context.Context, budget *expensesdomain.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r *PostgresRepository) UpdateBudget(ctx context.Context, budget *expensesdomain.Budget) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Budget{}).
		Where("id = ?", budget.ID).
		Updates(map[string]interface{}{
			"amount":     budget.Amount,
			"memo":       budget.Memo,
			"updated_at": budget.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, tripID string) ([]expensesdomain.Expense, error) {
	var items []expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("expense_date asc, expense_time asc nulls last, created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetExpense(ctx context.Context, userID, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.db.WithContext(ctx).
		Joins("JOIN trips ON trips.id = expenses.trip_id").
		Where("trips.user_id = ? AND expenses.id = ?", userID, expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) UpdateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).
		Model(&expensesdomain.Expense{}).
		Where("id = ? AND trip_id = ?", expense.ID, expense.TripID).
		Updates(map[string]interface{}{
			"category":       expense.Category,
			"amount":         expense.Amount,
			"description":    expense.Description,
			"expense_date":   expense.ExpenseDate,
			"expense_time":   expense.ExpenseTime,
			"day_number":     expense.DayNumber,
			"destination_id": expense.DestinationID,
			"payment_method": expense.PaymentMethod,
			"receipt_image":  expense.ReceiptImage,
			"updated_at":     expense.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteExpense(ctx context.Context, userID, expenseID string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM expenses
		USING trips
		WHERE expenses.trip_id = trips.id
		  AND trips.user_id = ?
		  AND expenses.id = ?`, userID, expenseID)
	return result.RowsAffected > 0, result.Error
}
