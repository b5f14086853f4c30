package tutor

type CreateProfileRequest struct {
	Headline          string   `json:"headline" validate:"required,max=200"`
	Bio               string   `json:"bio,omitempty"`
	Category          string   `json:"category" validate:"required"`
	Subjects          []string `json:"subjects" validate:"required,min=1"`
	Postcode          string   `json:"postcode,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	PricePerHour      float64  `json:"price_per_hour" validate:"gte=0"`
	TeachingMode      string   `json:"teaching_mode" validate:"required"`
	TravelRadiusMiles float64  `json:"travel_radius_miles" validate:"gte=0"`
}

type UpdateProfileRequest struct {
	Headline          *string  `json:"headline,omitempty"`
	Bio               *string  `json:"bio,omitempty"`
	Category          *string  `json:"category,omitempty"`
	Subjects          []string `json:"subjects,omitempty"`
	Postcode          *string  `json:"postcode,omitempty"`
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	PricePerHour      *float64 `json:"price_per_hour,omitempty"`
	TeachingMode      *string  `json:"teaching_mode,omitempty"`
	TravelRadiusMiles *float64 `json:"travel_radius_miles,omitempty"`
	IsActive          *bool    `json:"is_active,omitempty"`
}
