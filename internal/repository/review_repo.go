package repository

import (
	"context"
	"time"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	BookingID      int64     `gorm:"column:booking_id;uniqueIndex"`
	StudentID      int64     `gorm:"column:student_id;index"`
	TutorProfileID int64     `gorm:"column:tutor_profile_id;index"`
	Rating         int       `gorm:"column:rating"`
	Comment        *string   `gorm:"column:comment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	rv := &domain.Review{
		ID:             m.ID,
		BookingID:      m.BookingID,
		StudentID:      m.StudentID,
		TutorProfileID: m.TutorProfileID,
		Rating:         m.Rating,
		CreatedAt:      m.CreatedAt,
	}
	if m.Comment != nil {
		rv.Comment = *m.Comment
	}
	return rv
}

// Create inserts the review and folds its rating into the tutor's running
// average inside one transaction: a stored review is always counted, and the
// single-UPDATE fold keeps concurrent reviews from interleaving a
// read-modify-write.
func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		BookingID:      rv.BookingID,
		StudentID:      rv.StudentID,
		TutorProfileID: rv.TutorProfileID,
		Rating:         rv.Rating,
	}
	if rv.Comment != "" {
		v := rv.Comment
		m.Comment = &v
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		res := tx.Model(&tutorProfileModel{}).
			Where("id = ?", rv.TutorProfileID).
			Updates(map[string]any{
				"average_rating": gorm.Expr(
					"(average_rating * review_count + ?) / (review_count + 1)", rv.Rating),
				"review_count": gorm.Expr("review_count + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		*rv = *toDomainReview(m)
		return nil
	})
}

func (r *ReviewRepository) ListByTutor(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.Review, error) {
	q := r.db.WithContext(ctx).Model(&reviewModel{}).
		Where("tutor_profile_id = ?", tutorProfileID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}

	var rows []reviewModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}
