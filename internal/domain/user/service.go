package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/simseulnyang/TripNote/internal/validation"
)

const maxNicknameLength = 100

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile is called by the auth middleware on every authenticated
// request; it keeps email and avatar in sync with the identity provider
// without touching the user-chosen nickname.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, profileImage string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	profile := Profile{ID: userID}
	if email != "" {
		profile.Email = &email
	}
	if profileImage != "" {
		profile.ProfileImage = &profileImage
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	profile, err := s.repo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			return nil, validation.Errorf("nickname", "nickname must not be blank")
		}
		if len([]rune(nickname)) > maxNicknameLength {
			return nil, validation.Errorf("nickname", "nickname must be at most %d characters", maxNicknameLength)
		}
		count, err := s.repo.CountByNickname(ctx, nickname, profile.ID)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, validation.Errorf("nickname", "nickname already in use")
		}
		profile.Nickname = &nickname
	}

	if input.ProfileImage != nil {
		profile.ProfileImage = input.ProfileImage
	}

	profile.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// DeleteAccount withdraws the account; every trip the user owns cascades
// away with it.
func (s *Service) DeleteAccount(ctx context.Context, userID string) error {
	deleted, err := s.repo.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}
