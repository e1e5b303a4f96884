package triplogs

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateLog(ctx context.Context, log *TripLog) error
	ListLogs(ctx context.Context, tripID string) ([]TripLog, error)
	GetLog(ctx context.Context, userID, logID string) (*TripLog, error)
	UpdateLog(ctx context.Context, log *TripLog) error
	DeleteLog(ctx context.Context, userID, logID string) (bool, error)

	CreatePhotos(ctx context.Context, photos []TripLogPhoto) error
	ListPhotosByLogIDs(ctx context.Context, logIDs []string) (map[string][]TripLogPhoto, error)
}
