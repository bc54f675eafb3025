package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/flintdate/flint-backend/internal/domain"
	"github.com/flintdate/flint-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// UpdateProfileInput carries a partial profile update; nil fields are left
// untouched.
type UpdateProfileInput struct {
	Name      *string
	Bio       *string
	Gender    *domain.Gender
	Age       *int
	JobTitle  *string
	School    *string
	Latitude  *float64
	Longitude *float64
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.JobTitle != nil {
		user.JobTitle = *input.JobTitle
	}
	if input.School != nil {
		user.School = *input.School
	}
	if input.Latitude != nil {
		user.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		user.Longitude = input.Longitude
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPhotos replaces the user's photo set with the given URLs, preserving
// order.
func (s *ProfileService) SetPhotos(ctx context.Context, userID uuid.UUID, urls []string) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(urls)
	if err != nil {
		return nil, err
	}
	user.Photos = encoded
	user.UpdatedAt = time.Now()

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SearchUsers is an admin operation matching the keyword against email and
// name.
func (s *ProfileService) SearchUsers(ctx context.Context, keyword string) ([]*domain.User, error) {
	return s.userRepo.Search(ctx, keyword)
}

// LockOrUnlockUser toggles the locked flag and returns the new state. Locked
// users cannot log in.
func (s *ProfileService) LockOrUnlockUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return false, err
	}

	user.Locked = !user.Locked
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return false, err
	}
	return user.Locked, nil
}
