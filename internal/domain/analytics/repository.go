package analytics

import "context"

type Repository interface {
	// TripExists reports whether the trip exists and belongs to userID.
	TripExists(ctx context.Context, userID, tripID string) (bool, error)

	Budgets(ctx context.Context, tripID string) ([]BudgetRow, error)
	Expenses(ctx context.Context, tripID string) ([]ExpenseRow, error)
	Destinations(ctx context.Context, tripID string) ([]DestinationRow, error)
	Logs(ctx context.Context, tripID string) ([]LogRow, error)
	DayPlans(ctx context.Context, tripID string) ([]DayPlanRow, error)

	// TotalsByTripIDs returns summed budgets and expenses per trip in one
	// round trip per table.
	TotalsByTripIDs(ctx context.Context, tripIDs []string) (map[string]TotalsRow, error)
}
