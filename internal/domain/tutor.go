package domain

import "time"

type TeachingMode string

const (
	ModeInPerson TeachingMode = "in_person"
	ModeOnline   TeachingMode = "online"
	ModeBoth     TeachingMode = "both"
)

// SupportsOnline reports whether a tutor with this mode can teach remotely.
func (m TeachingMode) SupportsOnline() bool {
	return m == ModeOnline || m == ModeBoth
}

// SupportsInPerson reports whether a tutor with this mode can travel to students.
func (m TeachingMode) SupportsInPerson() bool {
	return m == ModeInPerson || m == ModeBoth
}

func ParseTeachingMode(s string) (TeachingMode, bool) {
	switch TeachingMode(s) {
	case ModeInPerson, ModeOnline, ModeBoth:
		return TeachingMode(s), true
	}
	return "", false
}

// TutorProfile is the searchable listing a tutor exposes to students.
// AverageRating/ReviewCount are maintained atomically by the review flow;
// ReviewCount == 0 implies AverageRating == 0.
type TutorProfile struct {
	ID                int64        `json:"id"`
	UserID            int64        `json:"user_id" validate:"required"`
	Headline          string       `json:"headline"`
	Bio               string       `json:"bio,omitempty"`
	Category          string       `json:"category"`
	Subjects          []string     `json:"subjects" gorm:"serializer:json"`
	Postcode          string       `json:"postcode,omitempty"`
	Latitude          float64      `json:"latitude"`
	Longitude         float64      `json:"longitude"`
	PricePerHour      float64      `json:"price_per_hour" validate:"gte=0"`
	TeachingMode      TeachingMode `json:"teaching_mode"`
	TravelRadiusMiles float64      `json:"travel_radius_miles"`
	AverageRating     float64      `json:"average_rating"`
	ReviewCount       int          `json:"review_count"`
	ResponseRate      float64      `json:"response_rate"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
