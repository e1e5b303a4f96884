package trips

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/simseulnyang/TripNote/internal/validation"
)

type fakeTripsRepo struct {
	trips        map[string]*Trip
	destinations map[string]*Destination
	dayPlans     map[string][]DayPlan
}

func newFakeTripsRepo() *fakeTripsRepo {
	return &fakeTripsRepo{
		trips:        make(map[string]*Trip),
		destinations: make(map[string]*Destination),
		dayPlans:     make(map[string][]DayPlan),
	}
}

func (f *fakeTripsRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(f)
}

func (f *fakeTripsRepo) CreateTrip(ctx context.Context, trip *Trip) error {
	copied := *trip
	f.trips[trip.ID] = &copied
	return nil
}

func (f *fakeTripsRepo) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	var result []Trip
	for _, trip := range f.trips {
		if trip.UserID == userID {
			result = append(result, *trip)
		}
	}
	return result, nil
}

func (f *fakeTripsRepo) GetTrip(ctx context.Context, userID, tripID string) (*Trip, error) {
	trip, ok := f.trips[tripID]
	if !ok || trip.UserID != userID {
		return nil, ErrTripNotFound
	}
	copied := *trip
	return &copied, nil
}

func (f *fakeTripsRepo) UpdateTrip(ctx context.Context, trip *Trip) error {
	copied := *trip
	f.trips[trip.ID] = &copied
	return nil
}

func (f *fakeTripsRepo) DeleteTrip(ctx context.Context, userID, tripID string) (bool, error) {
	trip, ok := f.trips[tripID]
	if !ok || trip.UserID != userID {
		return false, nil
	}
	delete(f.trips, tripID)
	return true, nil
}

func (f *fakeTripsRepo) CreateDestinations(ctx context.Context, destinations []Destination) error {
	for _, destination := range destinations {
		copied := destination
		f.destinations[destination.ID] = &copied
	}
	return nil
}

func (f *fakeTripsRepo) ListDestinations(ctx context.Context, tripID string) ([]Destination, error) {
	var result []Destination
	for _, destination := range f.destinations {
		if destination.TripID == tripID {
			result = append(result, *destination)
		}
	}
	return result, nil
}

func (f *fakeTripsRepo) GetDestination(ctx context.Context, userID, destinationID string) (*Destination, error) {
	destination, ok := f.destinations[destinationID]
	if !ok {
		return nil, ErrDestinationNotFound
	}
	trip, tripOK := f.trips[destination.TripID]
	if !tripOK || trip.UserID != userID {
		return nil, ErrDestinationNotFound
	}
	copied := *destination
	return &copied, nil
}

func (f *fakeTripsRepo) UpdateDestination(ctx context.Context, destination *Destination) error {
	copied := *destination
	f.destinations[destination.ID] = &copied
	return nil
}

func (f *fakeTripsRepo) DeleteDestination(ctx context.Context, userID, destinationID string) (bool, error) {
	if _, err := f.GetDestination(ctx, userID, destinationID); err != nil {
		return false, nil
	}
	delete(f.destinations, destinationID)
	return true, nil
}

func (f *fakeTripsRepo) ReplaceDayPlans(ctx context.Context, tripID string, plans []DayPlan) error {
	copied := make([]DayPlan, len(plans))
	copy(copied, plans)
	f.dayPlans[tripID] = copied
	return nil
}

func (f *fakeTripsRepo) ListDayPlans(ctx context.Context, tripID string) ([]DayPlan, error) {
	plans := make([]DayPlan, len(f.dayPlans[tripID]))
	copy(plans, f.dayPlans[tripID])
	return plans, nil
}

func (f *fakeTripsRepo) GetDayPlan(ctx context.Context, tripID string, dayNumber int) (*DayPlan, error) {
	for _, plan := range f.dayPlans[tripID] {
		if plan.DayNumber == dayNumber {
			copied := plan
			return &copied, nil
		}
	}
	return nil, ErrDayPlanNotFound
}

func (f *fakeTripsRepo) UpdateDayPlan(ctx context.Context, plan *DayPlan) error {
	plans := f.dayPlans[plan.TripID]
	for i := range plans {
		if plans[i].ID == plan.ID {
			plans[i] = *plan
			return nil
		}
	}
	return ErrDayPlanNotFound
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func validCreateInput() CreateTripInput {
	return CreateTripInput{
		UserID:    "user-1",
		Title:     "제주 여행",
		StartDate: date(2026, 4, 1),
		EndDate:   date(2026, 4, 3),
	}
}

func TestCreateTripRejectsShortTitle(t *testing.T) {
	svc := NewService(newFakeTripsRepo())

	input := validCreateInput()
	input.Title = " a "
	_, err := svc.CreateTrip(context.Background(), input)
	verr, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "title" {
		t.Fatalf("expected title field, got %s", verr.Field)
	}
}

func TestCreateTripRejectsReversedDates(t *testing.T) {
	svc := NewService(newFakeTripsRepo())

	input := validCreateInput()
	input.StartDate = date(2026, 4, 5)
	input.EndDate = date(2026, 4, 1)
	if _, err := svc.CreateTrip(context.Background(), input); err == nil {
		t.Fatal("expected error for end date before start date")
	}
}

func TestCreateTripRejectsSpanOverThirtyDays(t *testing.T) {
	svc := NewService(newFakeTripsRepo())

	input := validCreateInput()
	input.StartDate = date(2026, 4, 1)
	input.EndDate = date(2026, 5, 1)
	if _, err := svc.CreateTrip(context.Background(), input); err == nil {
		t.Fatal("expected error for a 31-day span")
	}

	input.EndDate = date(2026, 4, 30)
	if _, err := svc.CreateTrip(context.Background(), input); err != nil {
		t.Fatalf("expected a 30-day span to be accepted, got %v", err)
	}
}

func TestCreateTripGeneratesDayPlans(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	trip, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	plans := repo.dayPlans[trip.ID]
	if len(plans) != 3 {
		t.Fatalf("expected 3 day plans, got %d", len(plans))
	}
	for i, plan := range plans {
		if plan.DayNumber != i+1 {
			t.Fatalf("expected day number %d, got %d", i+1, plan.DayNumber)
		}
		expected := date(2026, 4, 1).AddDate(0, 0, i)
		if !plan.Date.Equal(expected) {
			t.Fatalf("expected date %v, got %v", expected, plan.Date)
		}
	}
}

func TestCreateTripRejectsDestinationBeyondDuration(t *testing.T) {
	svc := NewService(newFakeTripsRepo())

	input := validCreateInput()
	input.Destinations = []DestinationInput{{Name: "해변", Day: 4}}
	_, err := svc.CreateTrip(context.Background(), input)
	verr, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Field != "day" {
		t.Fatalf("expected day field, got %s", verr.Field)
	}
}

func TestUpdateTripDatesRegeneratesDayPlans(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	trip, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	newEnd := date(2026, 4, 5)
	if _, err := svc.UpdateTrip(context.Background(), UpdateTripInput{
		UserID:  "user-1",
		TripID:  trip.ID,
		EndDate: &newEnd,
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	plans := repo.dayPlans[trip.ID]
	if len(plans) != 5 {
		t.Fatalf("expected 5 day plans after extending the trip, got %d", len(plans))
	}
	if plans[4].DayNumber != 5 || !plans[4].Date.Equal(newEnd) {
		t.Fatalf("expected last plan on %v with day 5, got day %d on %v", newEnd, plans[4].DayNumber, plans[4].Date)
	}
}

func TestUpdateTripWithoutDateChangeKeepsDayPlans(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	trip, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.UpdateDayPlanMemo(context.Background(), "user-1", trip.ID, 2, "시장 구경"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	title := "제주 봄 여행"
	if _, err := svc.UpdateTrip(context.Background(), UpdateTripInput{
		UserID: "user-1",
		TripID: trip.ID,
		Title:  &title,
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	plan, err := repo.GetDayPlan(context.Background(), trip.ID, 2)
	if err != nil {
		t.Fatalf("expected day plan to survive, got %v", err)
	}
	if plan.Memo != "시장 구경" {
		t.Fatalf("expected memo to survive a title-only update, got %q", plan.Memo)
	}
}

func TestUpdateTripRejectsInvalidStatus(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	trip, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	status := "cancelled"
	_, err = svc.UpdateTrip(context.Background(), UpdateTripInput{
		UserID: "user-1",
		TripID: trip.ID,
		Status: &status,
	})
	if _, ok := validation.As(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDeleteTripNotFound(t *testing.T) {
	svc := NewService(newFakeTripsRepo())

	err := svc.DeleteTrip(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("expected ErrTripNotFound, got %v", err)
	}
}

func TestGetTripDestinationRejectsForeignTrip(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	first, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := svc.CreateTrip(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	destination, err := svc.AddDestination(context.Background(), "user-1", first.ID, DestinationInput{Name: "해변", Day: 1})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.GetTripDestination(context.Background(), "user-1", second.ID, destination.ID); !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound for a destination of another trip, got %v", err)
	}
}

func TestListDayPlansSumsEstimatedCost(t *testing.T) {
	repo := newFakeTripsRepo()
	svc := NewService(repo)

	input := validCreateInput()
	input.Destinations = []DestinationInput{
		{Name: "해변", Day: 1, EstimatedCost: 10000},
		{Name: "시장", Day: 1, EstimatedCost: 25000},
		{Name: "박물관", Day: 2, EstimatedCost: 8000},
	}
	trip, err := svc.CreateTrip(context.Background(), input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	views, err := svc.ListDayPlans(context.Background(), "user-1", trip.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 day views, got %d", len(views))
	}
	if views[0].EstimatedCost != 35000 {
		t.Fatalf("expected day 1 estimated cost 35000, got %d", views[0].EstimatedCost)
	}
	if views[1].EstimatedCost != 8000 {
		t.Fatalf("expected day 2 estimated cost 8000, got %d", views[1].EstimatedCost)
	}
	if views[2].EstimatedCost != 0 {
		t.Fatalf("expected day 3 estimated cost 0, got %d", views[2].EstimatedCost)
	}
}
