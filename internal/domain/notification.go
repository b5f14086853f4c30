package domain

import "time"

type NotificationType string

const (
	NotifBookingRequested NotificationType = "booking_requested"
	NotifBookingAccepted  NotificationType = "booking_accepted"
	NotifBookingDeclined  NotificationType = "booking_declined"
	NotifBookingCancelled NotificationType = "booking_cancelled"
	NotifBookingCompleted NotificationType = "booking_completed"
	NotifNewMessage       NotificationType = "new_message"
	NotifNewReview        NotificationType = "new_review"
)

// LifecycleEvent is what the booking engine hands to the notification
// dispatcher on every state change. Emission is fire-and-forget: delivery
// problems never fail the transition that produced the event.
type LifecycleEvent struct {
	BookingID       int64            `json:"booking_id"`
	Type            NotificationType `json:"type"`
	RecipientUserID int64            `json:"recipient_user_id"`
	Message         string           `json:"message,omitempty"`
}

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message,omitempty"`
	IsRead    bool             `json:"is_read"`
	Data      any              `json:"data,omitempty" gorm:"serializer:json"`
	CreatedAt time.Time        `json:"created_at"`
}
