package favorite

import (
	"context"
	"errors"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"

	"gorm.io/gorm"
)

type TutorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
}

type Service struct {
	favorites repository.FavoriteRepository
	tutors    TutorReader
}

func NewService(favorites repository.FavoriteRepository, tutors TutorReader) *Service {
	return &Service{favorites: favorites, tutors: tutors}
}

// Add saves a tutor to the user's favorites. Duplicate detection is left to
// the storage layer's unique constraint so concurrent adds cannot both
// succeed.
func (s *Service) Add(ctx context.Context, userID, tutorProfileID int64) (*domain.Favorite, error) {
	tutor, err := s.tutors.GetByID(ctx, tutorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}
	if tutor.UserID == userID {
		return nil, ErrOwnProfile
	}

	fav, err := s.favorites.Add(ctx, userID, tutorProfileID)
	if err != nil {
		if errors.Is(err, repository.ErrFavoriteExists) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return fav, nil
}

func (s *Service) Remove(ctx context.Context, userID, tutorProfileID int64) error {
	err := s.favorites.Remove(ctx, userID, tutorProfileID)
	if errors.Is(err, repository.ErrFavoriteNotFound) {
		return ErrNotFavorited
	}
	return err
}

func (s *Service) List(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	return s.favorites.GetByUserID(ctx, userID, limit, offset)
}

func (s *Service) Exists(ctx context.Context, userID, tutorProfileID int64) (bool, error) {
	return s.favorites.Exists(ctx, userID, tutorProfileID)
}
