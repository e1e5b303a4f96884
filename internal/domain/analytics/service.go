package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/simseulnyang/TripNote/internal/domain/expenses"
	"github.com/simseulnyang/TripNote/internal/domain/triplogs"
)

// Service computes derived budget, expense, and plan-vs-actual views over a
// trip's rows. Everything is recomputed from current state on every call;
// there is no caching.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) BudgetSummary(ctx context.Context, userID, tripID string) (BudgetSummary, error) {
	if err := s.ensureTrip(ctx, userID, tripID); err != nil {
		return BudgetSummary{}, err
	}

	budgets, err := s.repo.Budgets(ctx, tripID)
	if err != nil {
		return BudgetSummary{}, err
	}
	expenseRows, err := s.repo.Expenses(ctx, tripID)
	if err != nil {
		return BudgetSummary{}, err
	}
	destinations, err := s.repo.Destinations(ctx, tripID)
	if err != nil {
		return BudgetSummary{}, err
	}

	spentByCategory := make(map[string]int64)
	var totalExpense int64
	for _, expense := range expenseRows {
		spentByCategory[expense.Category] += expense.Amount
		totalExpense += expense.Amount
	}

	var totalBudget int64
	byCategory := make([]BudgetLine, 0, len(budgets))
	for _, budget := range budgets {
		spent := spentByCategory[budget.Category]
		totalBudget += budget.Amount
		byCategory = append(byCategory, BudgetLine{
			ID:              budget.ID,
			Category:        budget.Category,
			CategoryLabel:   expenses.BudgetCategoryLabels[budget.Category],
			Amount:          budget.Amount,
			Memo:            budget.Memo,
			SpentAmount:     spent,
			RemainingAmount: budget.Amount - spent,
			UsagePercent:    usagePercent(spent, budget.Amount),
		})
	}

	var totalEstimated int64
	for _, destination := range destinations {
		totalEstimated += destination.EstimatedCost
	}

	return BudgetSummary{
		TotalBudget:        totalBudget,
		TotalExpense:       totalExpense,
		TotalEstimatedCost: totalEstimated,
		Remaining:          totalBudget - totalExpense,
		UsagePercent:       usagePercent(totalExpense, totalBudget),
		ByCategory:         byCategory,
	}, nil
}

// ExpenseSummary groups the trip's spend by category label, by day
// ("Day N", or 미분류 when the expense has no day number), and by payment
// method label.
func (s *Service) ExpenseSummary(ctx context.Context, userID, tripID string) (ExpenseSummary, error) {
	if err := s.ensureTrip(ctx, userID, tripID); err != nil {
		return ExpenseSummary{}, err
	}

	expenseRows, err := s.repo.Expenses(ctx, tripID)
	if err != nil {
		return ExpenseSummary{}, err
	}

	summary := ExpenseSummary{
		ByCategory:      make(map[string]int64),
		ByDay:           make(map[string]int64),
		ByPaymentMethod: make(map[string]int64),
	}

	for _, expense := range expenseRows {
		summary.Total += expense.Amount
		summary.ByCategory[categoryLabel(expense.Category)] += expense.Amount

		dayKey := "미분류"
		if expense.DayNumber != nil {
			dayKey = fmt.Sprintf("Day %d", *expense.DayNumber)
		}
		summary.ByDay[dayKey] += expense.Amount

		summary.ByPaymentMethod[paymentLabel(expense.PaymentMethod)] += expense.Amount
	}

	return summary, nil
}

func (s *Service) Comparison(ctx context.Context, userID, tripID string) (Comparison, error) {
	if err := s.ensureTrip(ctx, userID, tripID); err != nil {
		return Comparison{}, err
	}

	budgets, err := s.repo.Budgets(ctx, tripID)
	if err != nil {
		return Comparison{}, err
	}
	expenseRows, err := s.repo.Expenses(ctx, tripID)
	if err != nil {
		return Comparison{}, err
	}
	destinations, err := s.repo.Destinations(ctx, tripID)
	if err != nil {
		return Comparison{}, err
	}
	logs, err := s.repo.Logs(ctx, tripID)
	if err != nil {
		return Comparison{}, err
	}
	dayPlans, err := s.repo.DayPlans(ctx, tripID)
	if err != nil {
		return Comparison{}, err
	}

	return Comparison{
		BudgetComparison:   buildBudgetComparison(budgets, expenseRows),
		ScheduleComparison: buildScheduleComparison(dayPlans, destinations, logs),
		Summary:            buildComparisonSummary(budgets, expenseRows, destinations, logs),
	}, nil
}

// TotalsByTripIDs reports per-trip budget and expense totals; trips with no
// rows get zero totals.
func (s *Service) TotalsByTripIDs(ctx context.Context, tripIDs []string) (map[string]TripTotals, error) {
	totals := make(map[string]TripTotals, len(tripIDs))
	if len(tripIDs) == 0 {
		return totals, nil
	}

	rows, err := s.repo.TotalsByTripIDs(ctx, tripIDs)
	if err != nil {
		return nil, err
	}

	for _, tripID := range tripIDs {
		row := rows[tripID]
		totals[tripID] = TripTotals{
			TotalBudget:  row.TotalBudget,
			TotalExpense: row.TotalExpense,
			UsagePercent: usagePercent(row.TotalExpense, row.TotalBudget),
		}
	}
	return totals, nil
}

func (s *Service) ensureTrip(ctx context.Context, userID, tripID string) error {
	exists, err := s.repo.TripExists(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTripNotFound
	}
	return nil
}

// buildBudgetComparison emits one row per category of the closed set, in
// enum order, zero-filled when the trip has no budget for the category.
func buildBudgetComparison(budgets []BudgetRow, expenseRows []ExpenseRow) []BudgetComparisonRow {
	budgetByCategory := make(map[string]int64, len(budgets))
	for _, budget := range budgets {
		budgetByCategory[budget.Category] = budget.Amount
	}
	spentByCategory := make(map[string]int64)
	for _, expense := range expenseRows {
		spentByCategory[expense.Category] += expense.Amount
	}

	rows := make([]BudgetComparisonRow, 0, len(expenses.BudgetCategories))
	for _, category := range expenses.BudgetCategories {
		budgeted := budgetByCategory[category]
		actual := spentByCategory[category]
		rows = append(rows, BudgetComparisonRow{
			Category:      category,
			CategoryLabel: expenses.BudgetCategoryLabels[category],
			Budget:        budgeted,
			Actual:        actual,
			Difference:    budgeted - actual,
			UsagePercent:  usagePercent(actual, budgeted),
		})
	}
	return rows
}

func buildScheduleComparison(dayPlans []DayPlanRow, destinations []DestinationRow, logs []LogRow) []ScheduleComparisonDay {
	plannedByDay := make(map[int]map[string]struct{})
	for _, destination := range destinations {
		if plannedByDay[destination.Day] == nil {
			plannedByDay[destination.Day] = make(map[string]struct{})
		}
		plannedByDay[destination.Day][destination.Name] = struct{}{}
	}

	visitedByDay := make(map[int]map[string]struct{})
	for _, log := range logs {
		if log.DayNumber == nil || !isVisited(log.VisitStatus) {
			continue
		}
		day := *log.DayNumber
		if visitedByDay[day] == nil {
			visitedByDay[day] = make(map[string]struct{})
		}
		visitedByDay[day][log.PlaceName] = struct{}{}
	}

	days := make([]ScheduleComparisonDay, 0, len(dayPlans))
	for _, plan := range dayPlans {
		planned := plannedByDay[plan.DayNumber]
		actual := visitedByDay[plan.DayNumber]

		days = append(days, ScheduleComparisonDay{
			DayNumber:        plan.DayNumber,
			Date:             plan.Date.Format("2006-01-02"),
			PlannedCount:     len(planned),
			ActualCount:      len(actual),
			PlannedPlaces:    sortedNames(planned),
			ActualPlaces:     sortedNames(actual),
			VisitedAsPlanned: sortedNames(intersect(planned, actual)),
			Skipped:          sortedNames(subtract(planned, actual)),
			UnplannedVisits:  sortedNames(subtract(actual, planned)),
		})
	}
	return days
}

func buildComparisonSummary(budgets []BudgetRow, expenseRows []ExpenseRow, destinations []DestinationRow, logs []LogRow) ComparisonSummary {
	var totalBudget, totalExpense, totalEstimated int64
	for _, budget := range budgets {
		totalBudget += budget.Amount
	}
	for _, expense := range expenseRows {
		totalExpense += expense.Amount
	}
	for _, destination := range destinations {
		totalEstimated += destination.EstimatedCost
	}

	plannedVisited := 0
	unplannedVisited := 0
	ratingSum := 0
	ratingCount := 0
	for _, log := range logs {
		switch log.VisitStatus {
		case triplogs.VisitPlanned:
			plannedVisited++
		case triplogs.VisitUnplanned:
			unplannedVisited++
		}
		if log.Rating != nil {
			ratingSum += *log.Rating
			ratingCount++
		}
	}

	totalPlanned := len(destinations)
	completionRate := 0.0
	if totalPlanned > 0 {
		completionRate = round1(float64(plannedVisited) / float64(totalPlanned) * 100)
	}

	var averageRating *float64
	if ratingCount > 0 {
		avg := round1(float64(ratingSum) / float64(ratingCount))
		averageRating = &avg
	}

	return ComparisonSummary{
		TotalBudget:           totalBudget,
		TotalExpense:          totalExpense,
		BudgetRemaining:       totalBudget - totalExpense,
		BudgetUsagePercent:    usagePercent(totalExpense, totalBudget),
		TotalEstimatedCost:    totalEstimated,
		EstimatedVsActualDiff: totalEstimated - totalExpense,
		TotalPlannedPlaces:    totalPlanned,
		TotalVisitedPlaces:    plannedVisited + unplannedVisited,
		PlannedAndVisited:     plannedVisited,
		UnplannedVisits:       unplannedVisited,
		PlanCompletionRate:    completionRate,
		AverageRating:         averageRating,
	}
}

func isVisited(visitStatus string) bool {
	return visitStatus == triplogs.VisitPlanned || visitStatus == triplogs.VisitUnplanned
}

// usagePercent is spent/total as a percentage rounded to one decimal, and 0
// when total is 0 so empty budgets never divide by zero.
func usagePercent(spent, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(spent) / float64(total) * 100)
}

// round1 rounds half away from zero to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func categoryLabel(category string) string {
	if label, ok := expenses.BudgetCategoryLabels[category]; ok {
		return label
	}
	return category
}

func paymentLabel(method string) string {
	if label, ok := expenses.PaymentMethodLabels[method]; ok {
		return label
	}
	return method
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{})
	for name := range a {
		if _, ok := b[name]; ok {
			result[name] = struct{}{}
		}
	}
	return result
}

func subtract(a, b map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{})
	for name := range a {
		if _, ok := b[name]; !ok {
			result[name] = struct{}{}
		}
	}
	return result
}
