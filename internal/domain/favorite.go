package domain

import "time"

// Favorite marks a tutor profile a user has saved. Uniqueness of
// (user_id, tutor_profile_id) is enforced by the database index, not by
// application-level checks.
type Favorite struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	UserID         int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_user_tutor"`
	TutorProfileID int64     `json:"tutor_profile_id" gorm:"not null;index;uniqueIndex:idx_user_tutor"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	Tutor *TutorProfile `json:"tutor,omitempty" gorm:"foreignKey:TutorProfileID"`
}

func (Favorite) TableName() string {
	return "favorites"
}
