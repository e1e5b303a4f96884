package trips

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simseulnyang/TripNote/internal/validation"
)

const maxTripDays = 30

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListTrips(ctx context.Context, userID string) ([]Trip, error) {
	return s.repo.ListTrips(ctx, userID)
}

func (s *Service) GetTrip(ctx context.Context, userID, tripID string) (*Trip, error) {
	return s.repo.GetTrip(ctx, userID, tripID)
}

func (s *Service) CreateTrip(ctx context.Context, input CreateTripInput) (*Trip, error) {
	title := strings.TrimSpace(input.Title)
	if len([]rune(title)) < 2 {
		return nil, validation.Errorf("title", "title must be at least 2 characters")
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	trip := Trip{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		StartDate:   truncateToDay(input.StartDate),
		EndDate:     truncateToDay(input.EndDate),
		Thumbnail:   input.Thumbnail,
		IsPublic:    input.IsPublic,
		Status:      StatusPlanning,
	}

	destinations := make([]Destination, 0, len(input.Destinations))
	for _, dest := range input.Destinations {
		built, err := buildDestination(trip.ID, dest, trip.DurationDays())
		if err != nil {
			return nil, err
		}
		destinations = append(destinations, *built)
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateTrip(ctx, &trip); err != nil {
			return err
		}
		if len(destinations) > 0 {
			if err := tx.CreateDestinations(ctx, destinations); err != nil {
				return err
			}
		}
		return tx.ReplaceDayPlans(ctx, trip.ID, buildDayPlans(trip.ID, trip.StartDate, trip.EndDate))
	})
	if err != nil {
		return nil, err
	}

	return &trip, nil
}

// UpdateTrip applies a partial update. When the date range changes, the
// trip's day plans are dropped and regenerated against the new range inside
// the same transaction.
func (s *Service) UpdateTrip(ctx context.Context, input UpdateTripInput) (*Trip, error) {
	var updated Trip
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		trip, err := tx.GetTrip(ctx, input.UserID, input.TripID)
		if err != nil {
			return err
		}

		oldStart, oldEnd := trip.StartDate, trip.EndDate

		if input.Title != nil {
			title := strings.TrimSpace(*input.Title)
			if len([]rune(title)) < 2 {
				return validation.Errorf("title", "title must be at least 2 characters")
			}
			trip.Title = title
		}
		if input.Description != nil {
			trip.Description = *input.Description
		}
		if input.StartDate != nil {
			trip.StartDate = truncateToDay(*input.StartDate)
		}
		if input.EndDate != nil {
			trip.EndDate = truncateToDay(*input.EndDate)
		}
		if input.Thumbnail.Set {
			trip.Thumbnail = input.Thumbnail.Value
		}
		if input.IsPublic != nil {
			trip.IsPublic = *input.IsPublic
		}
		if input.Status != nil {
			if !IsValidStatus(*input.Status) {
				return validation.Errorf("status", "invalid status %q", *input.Status)
			}
			trip.Status = *input.Status
		}

		if err := validateDateRange(trip.StartDate, trip.EndDate); err != nil {
			return err
		}

		trip.UpdatedAt = time.Now().UTC()
		if err := tx.UpdateTrip(ctx, trip); err != nil {
			return err
		}

		if !trip.StartDate.Equal(oldStart) || !trip.EndDate.Equal(oldEnd) {
			if err := tx.ReplaceDayPlans(ctx, trip.ID, buildDayPlans(trip.ID, trip.StartDate, trip.EndDate)); err != nil {
				return err
			}
		}

		updated = *trip
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *Service) DeleteTrip(ctx context.Context, userID, tripID string) error {
	deleted, err := s.repo.DeleteTrip(ctx, userID, tripID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTripNotFound
	}
	return nil
}

func (s *Service) ListDestinations(ctx context.Context, userID, tripID string) ([]Destination, error) {
	if _, err := s.repo.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListDestinations(ctx, tripID)
}

func (s *Service) AddDestination(ctx context.Context, userID, tripID string, input DestinationInput) (*Destination, error) {
	trip, err := s.repo.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	destination, err := buildDestination(trip.ID, input, trip.DurationDays())
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateDestinations(ctx, []Destination{*destination}); err != nil {
		return nil, err
	}
	return destination, nil
}

func (s *Service) GetDestination(ctx context.Context, userID, destinationID string) (*Destination, error) {
	return s.repo.GetDestination(ctx, userID, destinationID)
}

// GetTripDestination fetches a destination and verifies it belongs to the
// given trip; used when linking expenses and logs to planned places.
func (s *Service) GetTripDestination(ctx context.Context, userID, tripID, destinationID string) (*Destination, error) {
	destination, err := s.repo.GetDestination(ctx, userID, destinationID)
	if err != nil {
		return nil, err
	}
	if destination.TripID != tripID {
		return nil, ErrDestinationNotFound
	}
	return destination, nil
}

func (s *Service) UpdateDestination(ctx context.Context, userID, destinationID string, input DestinationInput) (*Destination, error) {
	destination, err := s.repo.GetDestination(ctx, userID, destinationID)
	if err != nil {
		return nil, err
	}
	trip, err := s.repo.GetTrip(ctx, userID, destination.TripID)
	if err != nil {
		return nil, err
	}

	built, err := buildDestination(trip.ID, input, trip.DurationDays())
	if err != nil {
		return nil, err
	}

	built.ID = destination.ID
	built.CreatedAt = destination.CreatedAt
	built.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateDestination(ctx, built); err != nil {
		return nil, err
	}
	return built, nil
}

func (s *Service) DeleteDestination(ctx context.Context, userID, destinationID string) error {
	deleted, err := s.repo.DeleteDestination(ctx, userID, destinationID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrDestinationNotFound
	}
	return nil
}

// ListDayPlans returns the trip's day plans together with each day's planned
// destinations and summed estimated cost.
func (s *Service) ListDayPlans(ctx context.Context, userID, tripID string) ([]DayPlanView, error) {
	if _, err := s.repo.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	plans, err := s.repo.ListDayPlans(ctx, tripID)
	if err != nil {
		return nil, err
	}
	destinations, err := s.repo.ListDestinations(ctx, tripID)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]Destination)
	for _, destination := range destinations {
		byDay[destination.Day] = append(byDay[destination.Day], destination)
	}

	views := make([]DayPlanView, 0, len(plans))
	for _, plan := range plans {
		view := DayPlanView{DayPlan: plan, Destinations: byDay[plan.DayNumber]}
		if view.Destinations == nil {
			view.Destinations = []Destination{}
		}
		for _, destination := range view.Destinations {
			view.EstimatedCost += destination.EstimatedCost
		}
		views = append(views, view)
	}

	return views, nil
}

func (s *Service) UpdateDayPlanMemo(ctx context.Context, userID, tripID string, dayNumber int, memo string) (*DayPlan, error) {
	if _, err := s.repo.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	plan, err := s.repo.GetDayPlan(ctx, tripID, dayNumber)
	if err != nil {
		return nil, err
	}

	plan.Memo = memo
	plan.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateDayPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func validateDateRange(start, end time.Time) error {
	if truncateToDay(end).Before(truncateToDay(start)) {
		return validation.Errorf("end_date", "end date must not precede start date")
	}
	if days := daysBetweenInclusive(start, end); days > maxTripDays {
		return validation.Errorf("end_date", "trip span must not exceed %d days", maxTripDays)
	}
	return nil
}

func buildDestination(tripID string, input DestinationInput, durationDays int) (*Destination, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validation.Errorf("name", "name is required")
	}
	if input.Day < 1 {
		return nil, validation.Errorf("day", "day must be at least 1")
	}
	if input.Day > durationDays {
		return nil, validation.Errorf("day", "day must be within the trip's %d days", durationDays)
	}
	category := input.Category
	if category == "" {
		category = CategoryAttraction
	}
	if !IsValidDestinationCategory(category) {
		return nil, validation.Errorf("category", "invalid category %q", input.Category)
	}
	if input.EstimatedCost < 0 {
		return nil, validation.Errorf("estimated_cost", "estimated cost must not be negative")
	}
	if input.EstimatedDuration != nil && *input.EstimatedDuration < 0 {
		return nil, validation.Errorf("estimated_duration", "estimated duration must not be negative")
	}

	return &Destination{
		ID:                uuid.NewString(),
		TripID:            tripID,
		Name:              name,
		Address:           strings.TrimSpace(input.Address),
		Latitude:          input.Latitude,
		Longitude:         input.Longitude,
		Day:               input.Day,
		Order:             input.Order,
		PlannedTime:       input.PlannedTime,
		EstimatedDuration: input.EstimatedDuration,
		EstimatedCost:     input.EstimatedCost,
		Category:          category,
		Memo:              input.Memo,
	}, nil
}

func buildDayPlans(tripID string, start, end time.Time) []DayPlan {
	start = truncateToDay(start)
	end = truncateToDay(end)

	var plans []DayPlan
	dayNumber := 1
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		plans = append(plans, DayPlan{
			ID:        uuid.NewString(),
			TripID:    tripID,
			DayNumber: dayNumber,
			Date:      date,
		})
		dayNumber++
	}
	return plans
}
