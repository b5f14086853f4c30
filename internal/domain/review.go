package domain

import "time"

// Review is written by the student of a completed booking, one per booking
// (unique index on booking_id). Creating one updates the tutor's running
// average atomically.
type Review struct {
	ID             int64     `json:"id"`
	BookingID      int64     `json:"booking_id"`
	StudentID      int64     `json:"student_id"`
	TutorProfileID int64     `json:"tutor_profile_id"`
	Rating         int       `json:"rating" validate:"required,min=1,max=5"`
	Comment        string    `json:"comment,omitempty" validate:"max=1000"`
	CreatedAt      time.Time `json:"created_at"`
}
