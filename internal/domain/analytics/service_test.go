package analytics

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/simseulnyang/TripNote/internal/domain/expenses"
	"github.com/simseulnyang/TripNote/internal/domain/triplogs"
)

type fakeAnalyticsRepo struct {
	exists       bool
	budgets      []BudgetRow
	expenses     []ExpenseRow
	destinations []DestinationRow
	logs         []LogRow
	dayPlans     []DayPlanRow
	totals       map[string]TotalsRow
}

func (f *fakeAnalyticsRepo) TripExists(ctx context.Context, userID, tripID string) (bool, error) {
	return f.exists, nil
}

func (f *fakeAnalyticsRepo) Budgets(ctx context.Context, tripID string) ([]BudgetRow, error) {
	return f.budgets, nil
}

func (f *fakeAnalyticsRepo) Expenses(ctx context.Context, tripID string) ([]ExpenseRow, error) {
	return f.expenses, nil
}

func (f *fakeAnalyticsRepo) Destinations(ctx context.Context, tripID string) ([]DestinationRow, error) {
	return f.destinations, nil
}

func (f *fakeAnalyticsRepo) Logs(ctx context.Context, tripID string) ([]LogRow, error) {
	return f.logs, nil
}

func (f *fakeAnalyticsRepo) DayPlans(ctx context.Context, tripID string) ([]DayPlanRow, error) {
	return f.dayPlans, nil
}

func (f *fakeAnalyticsRepo) TotalsByTripIDs(ctx context.Context, tripIDs []string) (map[string]TotalsRow, error) {
	return f.totals, nil
}

func intPtr(v int) *int { return &v }

func TestBudgetSummaryUsagePercent(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		budgets: []BudgetRow{
			{ID: "b-1", Category: expenses.CategoryFood, Amount: 100000},
		},
		expenses: []ExpenseRow{
			{Category: expenses.CategoryFood, Amount: 30000},
			{Category: expenses.CategoryFood, Amount: 20000},
		},
	}
	svc := NewService(repo)

	summary, err := svc.BudgetSummary(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.TotalBudget != 100000 || summary.TotalExpense != 50000 {
		t.Fatalf("unexpected totals: budget %d, expense %d", summary.TotalBudget, summary.TotalExpense)
	}
	if summary.UsagePercent != 50.0 {
		t.Fatalf("expected usage 50.0, got %v", summary.UsagePercent)
	}
	if summary.Remaining != 50000 {
		t.Fatalf("expected remaining 50000, got %d", summary.Remaining)
	}
	if len(summary.ByCategory) != 1 {
		t.Fatalf("expected one budget line, got %d", len(summary.ByCategory))
	}
	line := summary.ByCategory[0]
	if line.SpentAmount != 50000 || line.RemainingAmount != 50000 || line.UsagePercent != 50.0 {
		t.Fatalf("unexpected budget line: %+v", line)
	}
	if line.CategoryLabel != "식비" {
		t.Fatalf("expected label 식비, got %s", line.CategoryLabel)
	}
}

func TestBudgetSummaryZeroBudgetAvoidsDivision(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		expenses: []ExpenseRow{
			{Category: expenses.CategoryFood, Amount: 30000},
		},
	}
	svc := NewService(repo)

	summary, err := svc.BudgetSummary(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.UsagePercent != 0 {
		t.Fatalf("expected usage 0 with no budget, got %v", summary.UsagePercent)
	}
}

func TestBudgetSummaryUnknownTrip(t *testing.T) {
	svc := NewService(&fakeAnalyticsRepo{exists: false})

	_, err := svc.BudgetSummary(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestExpenseSummaryGroups(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		expenses: []ExpenseRow{
			{Category: expenses.CategoryFood, Amount: 12000, DayNumber: intPtr(1), PaymentMethod: expenses.PaymentCard},
			{Category: expenses.CategoryFood, Amount: 8000, DayNumber: intPtr(2), PaymentMethod: expenses.PaymentCash},
			{Category: expenses.CategoryTransport, Amount: 5000, DayNumber: nil, PaymentMethod: expenses.PaymentCard},
		},
	}
	svc := NewService(repo)

	summary, err := svc.ExpenseSummary(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.Total != 25000 {
		t.Fatalf("expected total 25000, got %d", summary.Total)
	}
	if summary.ByCategory["식비"] != 20000 || summary.ByCategory["교통"] != 5000 {
		t.Fatalf("unexpected category grouping: %v", summary.ByCategory)
	}
	if summary.ByDay["Day 1"] != 12000 || summary.ByDay["Day 2"] != 8000 || summary.ByDay["미분류"] != 5000 {
		t.Fatalf("unexpected day grouping: %v", summary.ByDay)
	}
	if summary.ByPaymentMethod["카드"] != 17000 || summary.ByPaymentMethod["현금"] != 8000 {
		t.Fatalf("unexpected payment grouping: %v", summary.ByPaymentMethod)
	}
}

func TestComparisonBudgetRowsCoverClosedSet(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		budgets: []BudgetRow{
			{Category: expenses.CategoryFood, Amount: 100000},
		},
		expenses: []ExpenseRow{
			{Category: expenses.CategoryFood, Amount: 40000},
			{Category: expenses.CategoryShopping, Amount: 15000},
		},
	}
	svc := NewService(repo)

	comparison, err := svc.Comparison(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(comparison.BudgetComparison) != len(expenses.BudgetCategories) {
		t.Fatalf("expected %d rows, got %d", len(expenses.BudgetCategories), len(comparison.BudgetComparison))
	}
	for i, row := range comparison.BudgetComparison {
		if row.Category != expenses.BudgetCategories[i] {
			t.Fatalf("expected category %s at index %d, got %s", expenses.BudgetCategories[i], i, row.Category)
		}
	}

	byCategory := make(map[string]BudgetComparisonRow)
	for _, row := range comparison.BudgetComparison {
		byCategory[row.Category] = row
	}
	food := byCategory[expenses.CategoryFood]
	if food.Budget != 100000 || food.Actual != 40000 || food.Difference != 60000 || food.UsagePercent != 40.0 {
		t.Fatalf("unexpected food row: %+v", food)
	}
	shopping := byCategory[expenses.CategoryShopping]
	if shopping.Budget != 0 || shopping.Actual != 15000 || shopping.UsagePercent != 0 {
		t.Fatalf("unexpected shopping row: %+v", shopping)
	}
}

func TestComparisonSchedule(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		destinations: []DestinationRow{
			{Name: "Beach", Day: 1},
			{Name: "Museum", Day: 1},
		},
		logs: []LogRow{
			{PlaceName: "Beach", DayNumber: intPtr(1), VisitStatus: triplogs.VisitPlanned},
			{PlaceName: "Market", DayNumber: intPtr(1), VisitStatus: triplogs.VisitUnplanned},
			{PlaceName: "Museum", DayNumber: intPtr(1), VisitStatus: triplogs.VisitSkipped},
		},
		dayPlans: []DayPlanRow{
			{DayNumber: 1, Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	svc := NewService(repo)

	comparison, err := svc.Comparison(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(comparison.ScheduleComparison) != 1 {
		t.Fatalf("expected one schedule day, got %d", len(comparison.ScheduleComparison))
	}

	day := comparison.ScheduleComparison[0]
	if day.Date != "2026-04-01" {
		t.Fatalf("expected date 2026-04-01, got %s", day.Date)
	}
	if !reflect.DeepEqual(day.VisitedAsPlanned, []string{"Beach"}) {
		t.Fatalf("expected Beach visited as planned, got %v", day.VisitedAsPlanned)
	}
	if !reflect.DeepEqual(day.Skipped, []string{"Museum"}) {
		t.Fatalf("expected Museum skipped, got %v", day.Skipped)
	}
	if !reflect.DeepEqual(day.UnplannedVisits, []string{"Market"}) {
		t.Fatalf("expected Market unplanned, got %v", day.UnplannedVisits)
	}
	if day.PlannedCount != 2 || day.ActualCount != 2 {
		t.Fatalf("expected 2 planned and 2 actual, got %d and %d", day.PlannedCount, day.ActualCount)
	}
}

func TestComparisonSummary(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		budgets: []BudgetRow{
			{Category: expenses.CategoryFood, Amount: 100000},
		},
		expenses: []ExpenseRow{
			{Category: expenses.CategoryFood, Amount: 25000},
		},
		destinations: []DestinationRow{
			{Name: "Beach", Day: 1, EstimatedCost: 10000},
			{Name: "Museum", Day: 1, EstimatedCost: 5000},
			{Name: "Cafe", Day: 2, EstimatedCost: 4000},
		},
		logs: []LogRow{
			{PlaceName: "Beach", DayNumber: intPtr(1), VisitStatus: triplogs.VisitPlanned, Rating: intPtr(4)},
			{PlaceName: "Market", DayNumber: intPtr(1), VisitStatus: triplogs.VisitUnplanned, Rating: intPtr(5)},
			{PlaceName: "Museum", DayNumber: intPtr(1), VisitStatus: triplogs.VisitSkipped},
		},
	}
	svc := NewService(repo)

	comparison, err := svc.Comparison(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	summary := comparison.Summary
	if summary.TotalPlannedPlaces != 3 {
		t.Fatalf("expected 3 planned places, got %d", summary.TotalPlannedPlaces)
	}
	if summary.TotalVisitedPlaces != 2 || summary.PlannedAndVisited != 1 || summary.UnplannedVisits != 1 {
		t.Fatalf("unexpected visit counts: %+v", summary)
	}
	if summary.PlanCompletionRate != 33.3 {
		t.Fatalf("expected completion rate 33.3, got %v", summary.PlanCompletionRate)
	}
	if summary.AverageRating == nil || *summary.AverageRating != 4.5 {
		t.Fatalf("expected average rating 4.5, got %v", summary.AverageRating)
	}
	if summary.TotalEstimatedCost != 19000 {
		t.Fatalf("expected estimated cost 19000, got %d", summary.TotalEstimatedCost)
	}
	if summary.EstimatedVsActualDiff != -6000 {
		t.Fatalf("expected estimated-vs-actual -6000, got %d", summary.EstimatedVsActualDiff)
	}
	if summary.BudgetUsagePercent != 25.0 {
		t.Fatalf("expected budget usage 25.0, got %v", summary.BudgetUsagePercent)
	}
}

func TestComparisonSummaryNoRatings(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		exists: true,
		logs: []LogRow{
			{PlaceName: "Beach", VisitStatus: triplogs.VisitPlanned},
		},
	}
	svc := NewService(repo)

	comparison, err := svc.Comparison(context.Background(), "user-1", "trip-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if comparison.Summary.AverageRating != nil {
		t.Fatalf("expected nil average rating, got %v", *comparison.Summary.AverageRating)
	}
	if comparison.Summary.PlanCompletionRate != 0 {
		t.Fatalf("expected completion rate 0 with no planned places, got %v", comparison.Summary.PlanCompletionRate)
	}
}

func TestTotalsByTripIDsZeroFills(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		totals: map[string]TotalsRow{
			"trip-1": {TripID: "trip-1", TotalBudget: 100000, TotalExpense: 40000},
		},
	}
	svc := NewService(repo)

	totals, err := svc.TotalsByTripIDs(context.Background(), []string{"trip-1", "trip-2"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if totals["trip-1"].UsagePercent != 40.0 {
		t.Fatalf("expected usage 40.0, got %v", totals["trip-1"].UsagePercent)
	}
	empty := totals["trip-2"]
	if empty.TotalBudget != 0 || empty.TotalExpense != 0 || empty.UsagePercent != 0 {
		t.Fatalf("expected zero totals for trip without rows, got %+v", empty)
	}
}
