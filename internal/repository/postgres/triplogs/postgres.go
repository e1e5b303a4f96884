package triplogs

import (
	"context"
	"errors"

	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(triplogsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateLog(ctx context.Context, log *triplogsdomain.TripLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *PostgresRepository) ListLogs(ctx context.Context, tripID string) ([]triplogsdomain.TripLog, error) {
	var logs []triplogsdomain.TripLog
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("visit_date asc, visit_time asc nulls last, created_at asc").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *PostgresRepository) GetLog(ctx context.Context, userID, logID string) (*triplogsdomain.TripLog, error) {
	var log triplogsdomain.TripLog
	if err := r.db.WithContext(ctx).
		Joins("JOIN trips ON trips.id = trip_logs.trip_id").
		Where("trips.user_id = ? AND trip_logs.id = ?", userID, logID).
		First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, triplogsdomain.ErrLogNotFound
		}
		return nil, err
	}
	return &log, nil
}

func (r *PostgresRepository) UpdateLog(ctx context.Context, log *triplogsdomain.TripLog) error {
	return r.db.WithContext(ctx).
		Model(&triplogsdomain.TripLog{}).
		Where("id = ? AND trip_id = ?", log.ID, log.TripID).
		Updates(map[string]interface{}{
			"destination_id":  log.DestinationID,
			"place_name":      log.PlaceName,
			"address":         log.Address,
			"latitude":        log.Latitude,
			"longitude":       log.Longitude,
			"visit_date":      log.VisitDate,
			"visit_time":      log.VisitTime,
			"day_number":      log.DayNumber,
			"actual_duration": log.ActualDuration,
			"rating":          log.Rating,
			"review":          log.Review,
			"visit_status":    log.VisitStatus,
			"updated_at":      log.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) DeleteLog(ctx context.Context, userID, logID string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM trip_logs
		USING trips
		WHERE trip_logs.trip_id = trips.id
		  AND trips.user_id = ?
		  AND trip_logs.id = ?`, userID, logID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreatePhotos(ctx context.Context, photos []triplogsdomain.TripLogPhoto) error {
	if len(photos) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&photos).Error
}

func (r *PostgresRepository) ListPhotosByLogIDs(ctx context.Context, logIDs []string) (map[string][]triplogsdomain.TripLogPhoto, error) {
	result := make(map[string][]triplogsdomain.TripLogPhoto, len(logIDs))
	if len(logIDs) == 0 {
		return result, nil
	}

	var photos []triplogsdomain.TripLogPhoto
	if err := r.db.WithContext(ctx).
		Where("log_id IN ?", logIDs).
		Order("sort_order asc").
		Find(&photos).Error; err != nil {
		return nil, err
	}

	for _, photo := range photos {
		result[photo.LogID] = append(result[photo.LogID], photo)
	}
	return result, nil
}
