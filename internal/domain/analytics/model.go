package analytics

import "time"

// Read models. This domain never writes; its repository projects the rows
// the aggregation and comparison computations need.

type BudgetRow struct {
	ID       string `gorm:"column:id"`
	Category string `gorm:"column:category"`
	Amount   int64  `gorm:"column:amount"`
	Memo     string `gorm:"column:memo"`
}

type ExpenseRow struct {
	Category      string `gorm:"column:category"`
	Amount        int64  `gorm:"column:amount"`
	DayNumber     *int   `gorm:"column:day_number"`
	PaymentMethod string `gorm:"column:payment_method"`
}

type DestinationRow struct {
	Name          string `gorm:"column:name"`
	Day           int    `gorm:"column:day"`
	EstimatedCost int64  `gorm:"column:estimated_cost"`
}

type LogRow struct {
	PlaceName   string `gorm:"column:place_name"`
	DayNumber   *int   `gorm:"column:day_number"`
	VisitStatus string `gorm:"column:visit_status"`
	Rating      *int   `gorm:"column:rating"`
}

type DayPlanRow struct {
	DayNumber int       `gorm:"column:day_number"`
	Date      time.Time `gorm:"column:date"`
}

type TotalsRow struct {
	TripID       string `gorm:"column:trip_id"`
	TotalBudget  int64  `gorm:"column:total_budget"`
	TotalExpense int64  `gorm:"column:total_expense"`
}

// Result shapes.

type BudgetLine struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	CategoryLabel   string  `json:"category_display"`
	Amount          int64   `json:"amount"`
	Memo            string  `json:"memo"`
	SpentAmount     int64   `json:"spent_amount"`
	RemainingAmount int64   `json:"remaining_amount"`
	UsagePercent    float64 `json:"usage_percent"`
}

type BudgetSummary struct {
	TotalBudget        int64        `json:"total_budget"`
	TotalExpense       int64        `json:"total_expense"`
	TotalEstimatedCost int64        `json:"total_estimated_cost"`
	Remaining          int64        `json:"remaining"`
	UsagePercent       float64      `json:"usage_percent"`
	ByCategory         []BudgetLine `json:"by_category"`
}

type ExpenseSummary struct {
	Total           int64            `json:"total"`
	ByCategory      map[string]int64 `json:"by_category"`
	ByDay           map[string]int64 `json:"by_day"`
	ByPaymentMethod map[string]int64 `json:"by_payment_method"`
}

type BudgetComparisonRow struct {
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_display"`
	Budget        int64   `json:"budget"`
	Actual        int64   `json:"actual"`
	Difference    int64   `json:"difference"`
	UsagePercent  float64 `json:"usage_percent"`
}

type ScheduleComparisonDay struct {
	DayNumber        int      `json:"day_number"`
	Date             string   `json:"date"`
	PlannedCount     int      `json:"planned_count"`
	ActualCount      int      `json:"actual_count"`
	PlannedPlaces    []string `json:"planned_places"`
	ActualPlaces     []string `json:"actual_places"`
	VisitedAsPlanned []string `json:"visited_as_planned"`
	Skipped          []string `json:"skipped"`
	UnplannedVisits  []string `json:"unplanned_visits"`
}

type ComparisonSummary struct {
	TotalBudget           int64    `json:"total_budget"`
	TotalExpense          int64    `json:"total_expense"`
	BudgetRemaining       int64    `json:"budget_remaining"`
	BudgetUsagePercent    float64  `json:"budget_usage_percent"`
	TotalEstimatedCost    int64    `json:"total_estimated_cost"`
	EstimatedVsActualDiff int64    `json:"estimated_vs_actual_diff"`
	TotalPlannedPlaces    int      `json:"total_planned_places"`
	TotalVisitedPlaces    int      `json:"total_visited_places"`
	PlannedAndVisited     int      `json:"planned_and_visited"`
	UnplannedVisits       int      `json:"unplanned_visits"`
	PlanCompletionRate    float64  `json:"plan_completion_rate"`
	AverageRating         *float64 `json:"average_rating"`
}

type Comparison struct {
	BudgetComparison   []BudgetComparisonRow   `json:"budget_comparison"`
	ScheduleComparison []ScheduleComparisonDay `json:"schedule_comparison"`
	Summary            ComparisonSummary       `json:"summary"`
}

// TripTotals enriches the trip list view.
type TripTotals struct {
	TotalBudget  int64   `json:"total_budget"`
	TotalExpense int64   `json:"total_expense"`
	UsagePercent float64 `json:"budget_usage_percent"`
}
