package trips

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateTrip(ctx context.Context, trip *Trip) error
	ListTrips(ctx context.Context, userID string) ([]Trip, error)
	GetTrip(ctx context.Context, userID, tripID string) (*Trip, error)
	UpdateTrip(ctx context.Context, trip *Trip) error
	DeleteTrip(ctx context.Context, userID, tripID string) (bool, error)

	CreateDestinations(ctx context.Context, destinations []Destination) error
	ListDestinations(ctx context.Context, tripID string) ([]Destination, error)
	GetDestination(ctx context.Context, userID, destinationID string) (*Destination, error)
	UpdateDestination(ctx context.Context, destination *Destination) error
	DeleteDestination(ctx context.Context, userID, destinationID string) (bool, error)

	ReplaceDayPlans(ctx context.Context, tripID string, plans []DayPlan) error
	ListDayPlans(ctx context.Context, tripID string) ([]DayPlan, error)
	GetDayPlan(ctx context.Context, tripID string, dayNumber int) (*DayPlan, error)
	UpdateDayPlan(ctx context.Context, plan *DayPlan) error
}
