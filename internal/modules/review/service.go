package review

import (
	"context"
	"errors"
	"unicode/utf8"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 1000

// ReviewStore is the persistence surface for reviews. Create also folds the
// rating into the tutor's aggregate, atomically with the insert.
type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListByTutor(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.Review, error)
}

// BookingGate exposes just enough of the booking engine to guard reviews.
type BookingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error)
}

// TutorReader resolves the reviewed tutor for notification routing.
type TutorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
}

// EventSink mirrors the booking module's notification contract.
type EventSink interface {
	Emit(ev domain.LifecycleEvent)
}

type Service struct {
	reviews  ReviewStore
	bookings BookingGate
	tutors   TutorReader
	events   EventSink
}

func NewService(reviews ReviewStore, bookings BookingGate, tutors TutorReader, events EventSink) *Service {
	return &Service{reviews: reviews, bookings: bookings, tutors: tutors, events: events}
}

// Create records the student's review of a completed booking. One review per
// booking, enforced by the unique index; the store folds the rating into the
// tutor's aggregate in the same transaction as the insert.
func (s *Service) Create(ctx context.Context, studentID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.BookingID <= 0 || req.Rating < 1 || req.Rating > 5 || utf8.RuneCountInString(req.Comment) > maxCommentLen {
		return nil, ErrInvalidRequest
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.StudentID != studentID {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrNotCompleted
	}

	rv := &domain.Review{
		BookingID:      b.ID,
		StudentID:      studentID,
		TutorProfileID: b.TutorProfileID,
		Rating:         req.Rating,
		Comment:        req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}

	if s.events != nil {
		if tutor, err := s.tutors.GetByID(ctx, b.TutorProfileID); err == nil {
			s.events.Emit(domain.LifecycleEvent{
				BookingID:       b.ID,
				Type:            domain.NotifNewReview,
				RecipientUserID: tutor.UserID,
				Message:         "You received a new review",
			})
		}
	}

	return rv, nil
}

func (s *Service) ListByTutor(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.Review, error) {
	if tutorProfileID <= 0 {
		return nil, ErrInvalidRequest
	}
	return s.reviews.ListByTutor(ctx, tutorProfileID, limit, offset)
}
