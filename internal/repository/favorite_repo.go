package repository

import (
	"context"
	"errors"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

var (
	// ErrFavoriteExists is returned when the (user, tutor) pair is already saved.
	ErrFavoriteExists = errors.New("tutor already in favorites")
	// ErrFavoriteNotFound is returned when removing a pair that was never saved.
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, tutorProfileID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, tutorProfileID int64) error
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error)
	Exists(ctx context.Context, userID, tutorProfileID int64) (bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts directly and relies on the unique index over
// (user_id, tutor_profile_id): two concurrent adds for the same pair get
// exactly one success and one ErrFavoriteExists, which a check-then-insert
// could not guarantee.
func (r *favoriteRepository) Add(ctx context.Context, userID, tutorProfileID int64) (*domain.Favorite, error) {
	favorite := &domain.Favorite{
		UserID:         userID,
		TutorProfileID: tutorProfileID,
	}

	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrFavoriteExists
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Preload("Tutor").First(favorite, favorite.ID).Error; err != nil {
		return nil, err
	}

	return favorite, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userID, tutorProfileID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND tutor_profile_id = ?", userID, tutorProfileID).
		Delete(&domain.Favorite{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}

	return nil
}

func (r *favoriteRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	var favorites []domain.Favorite
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Tutor").
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	if err := query.Find(&favorites).Error; err != nil {
		return nil, 0, err
	}

	return favorites, total, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userID, tutorProfileID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND tutor_profile_id = ?", userID, tutorProfileID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
