package notification

import (
	"context"
	"log"
	"time"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"
)

type Service struct {
	repo *repository.NotificationRepository
	hub  *Hub
}

func NewService(repo *repository.NotificationRepository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Deliver persists the event as a notification row and pushes it to the
// recipient's live connection when there is one. Failures are logged and
// swallowed; the transition that produced the event has already committed.
func (s *Service) Deliver(ctx context.Context, ev domain.LifecycleEvent) {
	n := &domain.Notification{
		UserID:  ev.RecipientUserID,
		Type:    ev.Type,
		Title:   titleFor(ev.Type),
		Message: ev.Message,
	}
	data := map[string]any{"booking_id": ev.BookingID}

	if err := s.repo.Create(ctx, n, data); err != nil {
		log.Printf("notification persist failed user_id=%d type=%s error=%q", ev.RecipientUserID, ev.Type, err)
	}

	s.hub.SendToUser(ev.RecipientUserID, n)
}

func titleFor(t domain.NotificationType) string {
	switch t {
	case domain.NotifBookingRequested:
		return "New booking request"
	case domain.NotifBookingAccepted:
		return "Booking accepted"
	case domain.NotifBookingDeclined:
		return "Booking declined"
	case domain.NotifBookingCancelled:
		return "Booking cancelled"
	case domain.NotifBookingCompleted:
		return "Booking completed"
	case domain.NotifNewMessage:
		return "New message"
	case domain.NotifNewReview:
		return "New review"
	}
	return "Notification"
}

func (s *Service) GetUserNotifications(ctx context.Context, userID int64, limit int) ([]domain.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.GetByUserID(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}

	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// CleanupOld removes notifications past the retention window. Driven by the
// cron schedule in cmd/api.
func (s *Service) CleanupOld(ctx context.Context, retention time.Duration) {
	deleted, err := s.repo.DeleteOlderThan(ctx, retention)
	if err != nil {
		log.Printf("notification cleanup failed: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("notification cleanup: deleted %d old notifications", deleted)
	}
}
