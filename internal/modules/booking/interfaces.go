package booking

import (
	"context"
	"time"

	"tutormatch/internal/domain"
)

// BookingRepository is the persistence surface the lifecycle engine needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.BookingRequest, initial *domain.BookingMessage) error
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	AddMessage(ctx context.Context, msg *domain.BookingMessage) error
	GetMessages(ctx context.Context, bookingID int64) ([]domain.BookingMessage, error)
	MarkMessagesRead(ctx context.Context, bookingID, readerID int64, at time.Time) (int64, error)
	ListByStudent(ctx context.Context, studentID int64, limit, offset int) ([]domain.BookingRequest, error)
	ListByTutorProfile(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.BookingRequest, error)
	ResponseStats(ctx context.Context, tutorProfileID int64) (total, responded int64, err error)
}

// TutorReader resolves tutor profiles for guards and price snapshots.
type TutorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error)
	SetResponseRate(ctx context.Context, tutorProfileID int64, rate float64) error
}

// EventSink receives lifecycle events. Emit must not block and must not fail
// the calling transition.
type EventSink interface {
	Emit(ev domain.LifecycleEvent)
}
