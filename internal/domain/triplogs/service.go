package triplogs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/simseulnyang/TripNote/internal/domain/trips"
	"github.com/simseulnyang/TripNote/internal/validation"
)

type TripGetter interface {
	GetTrip(ctx context.Context, userID, tripID string) (*trips.Trip, error)
	GetTripDestination(ctx context.Context, userID, tripID, destinationID string) (*trips.Destination, error)
}

type Service struct {
	repo  Repository
	trips TripGetter
}

func NewService(repo Repository, tripGetter TripGetter) *Service {
	return &Service{repo: repo, trips: tripGetter}
}

func (s *Service) ListLogs(ctx context.Context, userID, tripID string) ([]TripLogWithPhotos, error) {
	if _, err := s.trips.GetTrip(ctx, userID, tripID); err != nil {
		return nil, err
	}

	logs, err := s.repo.ListLogs(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return s.attachPhotos(ctx, logs)
}

func (s *Service) CreateLog(ctx context.Context, userID, tripID string, input TripLogInput) (*TripLogWithPhotos, error) {
	trip, err := s.trips.GetTrip(ctx, userID, tripID)
	if err != nil {
		return nil, err
	}

	log, err := s.buildLog(ctx, userID, trip, input)
	if err != nil {
		return nil, err
	}

	photos := make([]TripLogPhoto, 0, len(input.PhotoURLs))
	for idx, url := range input.PhotoURLs {
		url = strings.TrimSpace(url)
		if url == "" {
			return nil, validation.Errorf("photos", "photo URL must not be blank")
		}
		photos = append(photos, TripLogPhoto{
			ID:       uuid.NewString(),
			LogID:    log.ID,
			ImageURL: url,
			Order:    idx,
		})
	}

	err = s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateLog(ctx, log); err != nil {
			return err
		}
		if len(photos) > 0 {
			return tx.CreatePhotos(ctx, photos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &TripLogWithPhotos{TripLog: *log, Photos: photos}, nil
}

func (s *Service) GetLog(ctx context.Context, userID, logID string) (*TripLogWithPhotos, error) {
	log, err := s.repo.GetLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}

	withPhotos, err := s.attachPhotos(ctx, []TripLog{*log})
	if err != nil {
		return nil, err
	}
	return &withPhotos[0], nil
}

func (s *Service) UpdateLog(ctx context.Context, userID, logID string, input TripLogInput) (*TripLogWithPhotos, error) {
	existing, err := s.repo.GetLog(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	trip, err := s.trips.GetTrip(ctx, userID, existing.TripID)
	if err != nil {
		return nil, err
	}

	log, err := s.buildLog(ctx, userID, trip, input)
	if err != nil {
		return nil, err
	}

	log.ID = existing.ID
	log.CreatedAt = existing.CreatedAt
	log.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateLog(ctx, log); err != nil {
		return nil, err
	}

	withPhotos, err := s.attachPhotos(ctx, []TripLog{*log})
	if err != nil {
		return nil, err
	}
	return &withPhotos[0], nil
}

func (s *Service) DeleteLog(ctx context.Context, userID, logID string) error {
	deleted, err := s.repo.DeleteLog(ctx, userID, logID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrLogNotFound
	}
	return nil
}

func (s *Service) buildLog(ctx context.Context, userID string, trip *trips.Trip, input TripLogInput) (*TripLog, error) {
	if input.VisitDate.IsZero() {
		return nil, validation.Errorf("visit_date", "visit date is required")
	}
	if input.VisitDate.Before(trip.StartDate) || input.VisitDate.After(trip.EndDate) {
		return nil, validation.Errorf("visit_date", "visit date must fall within the trip's date range")
	}
	if input.VisitTime != nil {
		if _, err := time.Parse("15:04", *input.VisitTime); err != nil {
			return nil, validation.Errorf("visit_time", "visit time must be HH:MM")
		}
	}
	if input.Rating != nil && (*input.Rating < 1 || *input.Rating > 5) {
		return nil, validation.Errorf("rating", "rating must be between 1 and 5")
	}
	if input.ActualDuration != nil && *input.ActualDuration < 0 {
		return nil, validation.Errorf("actual_duration", "actual duration must not be negative")
	}

	visitStatus := input.VisitStatus
	if visitStatus == "" {
		visitStatus = VisitPlanned
	}
	if !IsValidVisitStatus(visitStatus) {
		return nil, validation.Errorf("visit_status", "invalid visit status %q", input.VisitStatus)
	}

	log := TripLog{
		ID:             uuid.NewString(),
		TripID:         trip.ID,
		DestinationID:  input.DestinationID,
		PlaceName:      strings.TrimSpace(input.PlaceName),
		Address:        strings.TrimSpace(input.Address),
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		VisitDate:      input.VisitDate,
		VisitTime:      input.VisitTime,
		DayNumber:      trips.DeriveDayNumber(input.VisitDate, trip.StartDate),
		ActualDuration: input.ActualDuration,
		Rating:         input.Rating,
		Review:         input.Review,
		VisitStatus:    visitStatus,
	}

	if input.DestinationID != nil {
		destination, err := s.trips.GetTripDestination(ctx, userID, trip.ID, *input.DestinationID)
		if err != nil {
			return nil, err
		}
		if log.PlaceName == "" {
			log.PlaceName = destination.Name
			log.Address = destination.Address
			log.Latitude = destination.Latitude
			log.Longitude = destination.Longitude
		}
	}

	if log.PlaceName == "" {
		return nil, validation.Errorf("place_name", "place name is required")
	}

	return &log, nil
}

func (s *Service) attachPhotos(ctx context.Context, logs []TripLog) ([]TripLogWithPhotos, error) {
	if len(logs) == 0 {
		return []TripLogWithPhotos{}, nil
	}

	logIDs := make([]string, 0, len(logs))
	for _, log := range logs {
		logIDs = append(logIDs, log.ID)
	}

	photosByLog, err := s.repo.ListPhotosByLogIDs(ctx, logIDs)
	if err != nil {
		return nil, err
	}

	items := make([]TripLogWithPhotos, 0, len(logs))
	for _, log := range logs {
		photos := photosByLog[log.ID]
		if photos == nil {
			photos = []TripLogPhoto{}
		}
		items = append(items, TripLogWithPhotos{TripLog: log, Photos: photos})
	}
	return items, nil
}
