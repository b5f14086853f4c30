package repository

import (
	"context"
	"encoding/json"
	"time"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

type TutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

type tutorProfileModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	UserID            int64     `gorm:"column:user_id;index"`
	Headline          string    `gorm:"column:headline"`
	Bio               *string   `gorm:"column:bio"`
	Category          string    `gorm:"column:category;index"`
	Subjects          string    `gorm:"column:subjects;type:json"`
	Postcode          *string   `gorm:"column:postcode"`
	Latitude          float64   `gorm:"column:latitude"`
	Longitude         float64   `gorm:"column:longitude"`
	PricePerHour      float64   `gorm:"column:price_per_hour"`
	TeachingMode      string    `gorm:"column:teaching_mode"`
	TravelRadiusMiles float64   `gorm:"column:travel_radius_miles"`
	AverageRating     float64   `gorm:"column:average_rating;type:decimal(4,2)"`
	ReviewCount       int       `gorm:"column:review_count"`
	ResponseRate      float64   `gorm:"column:response_rate"`
	IsActive          bool      `gorm:"column:is_active;index"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (tutorProfileModel) TableName() string { return "tutor_profiles" }

func toDomainTutor(m tutorProfileModel) *domain.TutorProfile {
	t := &domain.TutorProfile{
		ID:                m.ID,
		UserID:            m.UserID,
		Headline:          m.Headline,
		Category:          m.Category,
		Latitude:          m.Latitude,
		Longitude:         m.Longitude,
		PricePerHour:      m.PricePerHour,
		TeachingMode:      domain.TeachingMode(m.TeachingMode),
		TravelRadiusMiles: m.TravelRadiusMiles,
		AverageRating:     m.AverageRating,
		ReviewCount:       m.ReviewCount,
		ResponseRate:      m.ResponseRate,
		IsActive:          m.IsActive,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Bio != nil {
		t.Bio = *m.Bio
	}
	if m.Postcode != nil {
		t.Postcode = *m.Postcode
	}
	if m.Subjects != "" {
		_ = json.Unmarshal([]byte(m.Subjects), &t.Subjects)
	}
	return t
}

func toTutorModel(t *domain.TutorProfile) tutorProfileModel {
	m := tutorProfileModel{
		ID:                t.ID,
		UserID:            t.UserID,
		Headline:          t.Headline,
		Category:          t.Category,
		Latitude:          t.Latitude,
		Longitude:         t.Longitude,
		PricePerHour:      t.PricePerHour,
		TeachingMode:      string(t.TeachingMode),
		TravelRadiusMiles: t.TravelRadiusMiles,
		AverageRating:     t.AverageRating,
		ReviewCount:       t.ReviewCount,
		ResponseRate:      t.ResponseRate,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
	if t.Bio != "" {
		v := t.Bio
		m.Bio = &v
	}
	if t.Postcode != "" {
		v := t.Postcode
		m.Postcode = &v
	}
	if len(t.Subjects) > 0 {
		if b, err := json.Marshal(t.Subjects); err == nil {
			m.Subjects = string(b)
		}
	}
	return m
}

func (r *TutorRepository) Create(ctx context.Context, t *domain.TutorProfile) error {
	m := toTutorModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTutor(m)
	return nil
}

func (r *TutorRepository) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	var m tutorProfileModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTutor(m), nil
}

func (r *TutorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	var m tutorProfileModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTutor(m), nil
}

func (r *TutorRepository) Update(ctx context.Context, t *domain.TutorProfile) error {
	m := toTutorModel(t)
	return r.db.WithContext(ctx).Save(&m).Error
}

// CandidateFilter narrows the active-tutor listing in SQL. Distance and
// subject-substring eligibility are applied by the search service on top.
type CandidateFilter struct {
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Mode      string
}

func (r *TutorRepository) ListCandidates(ctx context.Context, f CandidateFilter) ([]domain.TutorProfile, error) {
	q := r.db.WithContext(ctx).Model(&tutorProfileModel{}).Where("is_active = ?", true)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price_per_hour >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price_per_hour <= ?", *f.MaxPrice)
	}
	if f.MinRating != nil {
		q = q.Where("average_rating >= ?", *f.MinRating)
	}
	if f.Mode != "" && f.Mode != string(domain.ModeBoth) {
		q = q.Where("teaching_mode IN ?", []string{f.Mode, string(domain.ModeBoth)})
	}

	var rows []tutorProfileModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.TutorProfile, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainTutor(m))
	}
	return out, nil
}

func (r *TutorRepository) SetResponseRate(ctx context.Context, tutorProfileID int64, rate float64) error {
	return r.db.WithContext(ctx).Model(&tutorProfileModel{}).
		Where("id = ?", tutorProfileID).
		Update("response_rate", rate).Error
}
