package analytics

import (
	"context"

	analyticsdomain "github.com/simseulnyang/TripNote/internal/domain/analytics"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) TripExists(ctx context.Context, userID, tripID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("trips").
		Where("user_id = ? AND id = ?", userID, tripID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) Budgets(ctx context.Context, tripID string) ([]analyticsdomain.BudgetRow, error) {
	var rows []analyticsdomain.BudgetRow
	if err := r.db.WithContext(ctx).
		Table("budgets").
		Select("id, category, amount, memo").
		Where("trip_id = ?", tripID).
		Order("category asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Expenses(ctx context.Context, tripID string) ([]analyticsdomain.ExpenseRow, error) {
	var rows []analyticsdomain.ExpenseRow
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("category, amount, day_number, payment_method").
		Where("trip_id = ?", tripID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Destinations(ctx context.Context, tripID string) ([]analyticsdomain.DestinationRow, error) {
	var rows []analyticsdomain.DestinationRow
	if err := r.db.WithContext(ctx).
		Table("destinations").
		Select("name, day, estimated_cost").
		Where("trip_id = ?", tripID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) Logs(ctx context.Context, tripID string) ([]analyticsdomain.LogRow, error) {
	var rows []analyticsdomain.LogRow
	if err := r.db.WithContext(ctx).
		Table("trip_logs").
		Select("place_name, day_number, visit_status, rating").
		Where("trip_id = ?", tripID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) DayPlans(ctx context.Context, tripID string) ([]analyticsdomain.DayPlanRow, error) {
	var rows []analyticsdomain.DayPlanRow
	if err := r.db.WithContext(ctx).
		Table("day_plans").
		Select("day_number, date").
		Where("trip_id = ?", tripID).
		Order("day_number asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) TotalsByTripIDs(ctx context.Context, tripIDs []string) (map[string]analyticsdomain.TotalsRow, error) {
	result := make(map[string]analyticsdomain.TotalsRow, len(tripIDs))
	if len(tripIDs) == 0 {
		return result, nil
	}

	var budgetTotals []struct {
		TripID string `gorm:"column:trip_id"`
		Total  int64  `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Table("budgets").
		Select("trip_id, COALESCE(SUM(amount), 0) AS total").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Find(&budgetTotals).Error; err != nil {
		return nil, err
	}
	for _, row := range budgetTotals {
		totals := result[row.TripID]
		totals.TripID = row.TripID
		totals.TotalBudget = row.Total
		result[row.TripID] = totals
	}

	var expenseTotals []struct {
		TripID string `gorm:"column:trip_id"`
		Total  int64  `gorm:"column:total"`
	}
	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("trip_id, COALESCE(SUM(amount), 0) AS total").
		Where("trip_id IN ?", tripIDs).
		Group("trip_id").
		Find(&expenseTotals).Error; err != nil {
		return nil, err
	}
	for _, row := range expenseTotals {
		totals := result[row.TripID]
		totals.TripID = row.TripID
		totals.TotalExpense = row.Total
		result[row.TripID] = totals
	}

	return result, nil
}
