package user

import "context"

type Repository interface {
	UpsertProfile(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
	CountByNickname(ctx context.Context, nickname, excludeID string) (int64, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
}
