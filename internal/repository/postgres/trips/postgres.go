package trips

import (
	"context"
	"errors"

	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tripsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTrip(ctx context.Context, trip *tripsdomain.Trip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *PostgresRepository) ListTrips(ctx context.Context, userID string) ([]tripsdomain.Trip, error) {
	var trips []tripsdomain.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *PostgresRepository) GetTrip(ctx context.Context, userID, tripID string) (*tripsdomain.Trip, error) {
	var trip tripsdomain.Trip
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, tripID).
		First(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &trip, nil
}

func (r *PostgresRepository) UpdateTrip(ctx context.Context, trip *tripsdomain.Trip) error {
	return r.db.WithContext(ctx).
		Model(&tripsdomain.Trip{}).
		Where("id = ? AND user_id = ?", trip.ID, trip.UserID).
		Updates(map[string]interface{}{
			"title":       trip.Title,
			"description": trip.Description,
			"start_date":  trip.StartDate,
			"end_date":    trip.EndDate,
			"thumbnail":   trip.Thumbnail,
			"is_public":   trip.IsPublic,
			"status":      trip.Status,
			"updated_at":  trip.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteTrip(ctx context.Context, userID, tripID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tripsdomain.Trip{}, "user_id = ? AND id = ?", userID, tripID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreateDestinations(ctx context.Context, destinations []tripsdomain.Destination) error {
	if len(destinations) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&destinations).Error
}

func (r *PostgresRepository) ListDestinations(ctx context.Context, tripID string) ([]tripsdomain.Destination, error) {
	var destinations []tripsdomain.Destination
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day asc, sort_order asc").
		Find(&destinations).Error; err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *PostgresRepository) GetDestination(ctx context.Context, userID, destinationID string) (*tripsdomain.Destination, error) {
	var destination tripsdomain.Destination
	if err := r.db.WithContext(ctx).
		Joins("JOIN trips ON trips.id = destinations.trip_id").
		Where("trips.user_id = ? AND destinations.id = ?", userID, destinationID).
		First(&destination).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrDestinationNotFound
		}
		return nil, err
	}
	return &destination, nil
}

func (r *PostgresRepository) UpdateDestination(ctx context.Context, destination *tripsdomain.Destination) error {
	return r.db.WithContext(ctx).
		Model(&tripsdomain.Destination{}).
		Where("id = ? AND trip_id = ?", destination.ID, destination.TripID).
		Updates(map[string]interface{}{
			"name":               destination.Name,
			"address":            destination.Address,
			"latitude":           destination.Latitude,
			"longitude":          destination.Longitude,
			"day":                destination.Day,
			"sort_order":         destination.Order,
			"planned_time":       destination.PlannedTime,
			"estimated_duration": destination.EstimatedDuration,
			"estimated_cost":     destination.EstimatedCost,
			"category":           destination.Category,
			"memo":               destination.Memo,
			"updated_at":         destination.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteDestination(ctx context.Context, userID, destinationID string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM destinations
		USING trips
		WHERE destinations.trip_id = trips.id
		  AND trips.user_id = ?
		  AND destinations.id = ?`, userID, destinationID)
	return result.RowsAffected > 0, result.Error
}

// ReplaceDayPlans drops the trip's day plan set and recreates it; callers
// run it inside the same transaction as the trip date change.
func (r *PostgresRepository) ReplaceDayPlans(ctx context.Context, tripID string, plans []tripsdomain.DayPlan) error {
	if err := r.db.WithContext(ctx).Where("trip_id = ?", tripID).Delete(&tripsdomain.DayPlan{}).Error; err != nil {
		return err
	}
	if len(plans) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&plans).Error
}

func (r *PostgresRepository) ListDayPlans(ctx context.Context, tripID string) ([]tripsdomain.DayPlan, error) {
	var plans []tripsdomain.DayPlan
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day_number asc").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PostgresRepository) GetDayPlan(ctx context.Context, tripID string, dayNumber int) (*tripsdomain.DayPlan, error) {
	var plan tripsdomain.DayPlan
	if err := r.db.WithContext(ctx).
		Where("trip_id = ? AND day_number = ?", tripID, dayNumber).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripsdomain.ErrDayPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (r *PostgresRepository) UpdateDayPlan(ctx context.Context, plan *tripsdomain.DayPlan) error {
	return r.db.WithContext(ctx).
		Model(&tripsdomain.DayPlan{}).
		Where("id = ?", plan.ID).
		Updates(map[string]interface{}{
			"memo":       plan.Memo,
			"updated_at": plan.UpdatedAt,
		}).Error
}
