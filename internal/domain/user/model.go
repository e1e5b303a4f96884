package user

import "time"

// Profile mirrors the identity provider's account plus locally managed
// fields. Nickname is user-chosen and unique when set.
type Profile struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        *string   `gorm:"type:text"`
	Nickname     *string   `gorm:"size:100;uniqueIndex"`
	ProfileImage *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

type UpdateProfileInput struct {
	UserID       string
	Nickname     *string
	ProfileImage *string
}
