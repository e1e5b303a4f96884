package user

import (
	"context"
	"errors"
	"time"

	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertProfile(ctx context.Context, profile *userdomain.Profile) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if profile.Email != nil {
		updates["email"] = profile.Email
	}
	if profile.ProfileImage != nil {
		updates["profile_image"] = profile.ProfileImage
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(profile).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*userdomain.Profile, error) {
	var profile userdomain.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, profile *userdomain.Profile) error {
	return r.db.WithContext(ctx).
		Model(&userdomain.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"nickname":      profile.Nickname,
			"profile_image": profile.ProfileImage,
			"updated_at":    profile.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) CountByNickname(ctx context.Context, nickname, excludeID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&userdomain.Profile{}).
		Where("lower(nickname) = lower(?)", nickname)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&userdomain.Profile{}, "id = ?", userID)
	return result.RowsAffected > 0, result.Error
}
