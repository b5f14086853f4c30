package booking

type CreateBookingRequest struct {
	TutorProfileID int64  `json:"tutor_profile_id" validate:"required"`
	RequestedMode  string `json:"requested_mode" validate:"required"`
	PreferredDate  string `json:"preferred_date,omitempty"`
	Message        string `json:"message" validate:"required,max=2000"`
}

type RespondRequest struct {
	Status  string `json:"status" validate:"required"`
	Message string `json:"message,omitempty" validate:"max=2000"`
}

type CancelRequest struct {
	Message string `json:"message,omitempty" validate:"max=2000"`
}

type CompleteRequest struct {
	Message string `json:"message,omitempty" validate:"max=2000"`
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}
