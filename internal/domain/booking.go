package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingAccepted  BookingStatus = "accepted"
	BookingDeclined  BookingStatus = "declined"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// bookingTransitions is the single source of truth for the request lifecycle.
// Guards in the services go through CanTransition; nothing checks statuses
// ad hoc at call sites.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:  {BookingAccepted, BookingDeclined, BookingCancelled},
	BookingAccepted: {BookingCompleted, BookingCancelled},
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

// BookingRequest is an engagement proposal from a student to a tutor.
// PricePerHourAtBooking is snapshotted at creation and never follows
// later price changes on the profile.
type BookingRequest struct {
	ID                    int64            `json:"id"`
	StudentID             int64            `json:"student_id" validate:"required"`
	TutorProfileID        int64            `json:"tutor_profile_id" validate:"required"`
	RequestedMode         TeachingMode     `json:"requested_mode"`
	PreferredDate         string           `json:"preferred_date,omitempty"`
	PricePerHourAtBooking float64          `json:"price_per_hour_at_booking"`
	Status                BookingStatus    `json:"status"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`
	Messages              []BookingMessage `json:"messages,omitempty"`
	Review                *Review          `json:"review,omitempty"`
}

// BookingMessage is an append-only chat entry inside a booking request.
// Ordering is by SentAt with ID as the deterministic tie-break.
type BookingMessage struct {
	ID        int64      `json:"id"`
	BookingID int64      `json:"booking_id"`
	SenderID  int64      `json:"sender_id"`
	Content   string     `json:"content" validate:"required,max=2000"`
	SentAt    time.Time  `json:"sent_at"`
	IsRead    bool       `json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
}
