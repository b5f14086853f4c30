package booking

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

const maxMessageLen = 2000

type Service struct {
	bookings BookingRepository
	tutors   TutorReader
	events   EventSink
}

func NewService(bookings BookingRepository, tutors TutorReader, events EventSink) *Service {
	return &Service{
		bookings: bookings,
		tutors:   tutors,
		events:   events,
	}
}

// Create opens a booking request against an active tutor. The tutor's current
// price is captured on the request and never follows later profile edits.
func (s *Service) Create(ctx context.Context, studentID int64, req CreateBookingRequest) (*domain.BookingRequest, error) {
	mode, ok := domain.ParseTeachingMode(req.RequestedMode)
	if !ok || mode == domain.ModeBoth {
		return nil, ErrValidation
	}
	content := strings.TrimSpace(req.Message)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLen {
		return nil, ErrValidation
	}

	tutor, err := s.tutors.GetByID(ctx, req.TutorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !tutor.IsActive {
		return nil, ErrNotFound
	}
	if tutor.UserID == studentID {
		return nil, ErrValidation
	}
	if mode == domain.ModeInPerson && !tutor.TeachingMode.SupportsInPerson() {
		return nil, ErrValidation
	}
	if mode == domain.ModeOnline && !tutor.TeachingMode.SupportsOnline() {
		return nil, ErrValidation
	}

	b := &domain.BookingRequest{
		StudentID:             studentID,
		TutorProfileID:        tutor.ID,
		RequestedMode:         mode,
		PreferredDate:         req.PreferredDate,
		PricePerHourAtBooking: tutor.PricePerHour,
		Status:                domain.BookingPending,
	}
	initial := &domain.BookingMessage{
		SenderID: studentID,
		Content:  content,
		SentAt:   time.Now().UTC(),
	}

	if err := s.bookings.Create(ctx, b, initial); err != nil {
		return nil, err
	}

	s.emit(domain.LifecycleEvent{
		BookingID:       b.ID,
		Type:            domain.NotifBookingRequested,
		RecipientUserID: tutor.UserID,
		Message:         "You have a new booking request",
	})

	return b, nil
}

// Respond lets the owning tutor accept or decline a pending request. Any
// other target status is a validation error; acting on stale status is a
// conflict.
func (s *Service) Respond(ctx context.Context, actorUserID, bookingID int64, req RespondRequest) (*domain.BookingRequest, error) {
	target := domain.BookingStatus(req.Status)
	if target != domain.BookingAccepted && target != domain.BookingDeclined {
		return nil, ErrValidation
	}

	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if tutor.UserID != actorUserID {
		return nil, ErrForbidden
	}

	if err := s.transition(ctx, b, target); err != nil {
		return nil, err
	}
	s.appendOptionalMessage(ctx, b.ID, actorUserID, req.Message)
	s.refreshResponseRate(ctx, tutor.ID)

	eventType := domain.NotifBookingAccepted
	msg := "Your booking request was accepted"
	if target == domain.BookingDeclined {
		eventType = domain.NotifBookingDeclined
		msg = "Your booking request was declined"
	}
	s.emit(domain.LifecycleEvent{
		BookingID:       b.ID,
		Type:            eventType,
		RecipientUserID: b.StudentID,
		Message:         msg,
	})

	return s.bookings.GetByID(ctx, bookingID)
}

// Cancel is open to either participant while the request is pending or
// accepted. Terminal states conflict.
func (s *Service) Cancel(ctx context.Context, actorUserID, bookingID int64, req CancelRequest) (*domain.BookingRequest, error) {
	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorUserID != b.StudentID && actorUserID != tutor.UserID {
		return nil, ErrForbidden
	}

	if err := s.transition(ctx, b, domain.BookingCancelled); err != nil {
		return nil, err
	}
	s.appendOptionalMessage(ctx, b.ID, actorUserID, req.Message)

	recipient := b.StudentID
	if actorUserID == b.StudentID {
		recipient = tutor.UserID
	}
	s.emit(domain.LifecycleEvent{
		BookingID:       b.ID,
		Type:            domain.NotifBookingCancelled,
		RecipientUserID: recipient,
		Message:         "The booking was cancelled",
	})

	return s.bookings.GetByID(ctx, bookingID)
}

// Complete marks an accepted booking as done. Only the owning tutor may do
// this; completion is what unlocks review creation.
func (s *Service) Complete(ctx context.Context, actorUserID, bookingID int64, req CompleteRequest) (*domain.BookingRequest, error) {
	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if tutor.UserID != actorUserID {
		return nil, ErrForbidden
	}

	if err := s.transition(ctx, b, domain.BookingCompleted); err != nil {
		return nil, err
	}
	s.appendOptionalMessage(ctx, b.ID, actorUserID, req.Message)

	s.emit(domain.LifecycleEvent{
		BookingID:       b.ID,
		Type:            domain.NotifBookingCompleted,
		RecipientUserID: b.StudentID,
		Message:         "Your booking was marked as completed",
	})

	return s.bookings.GetByID(ctx, bookingID)
}

// SendMessage appends to the booking's thread. Completed and cancelled
// bookings still accept closing remarks; declined ones accept nothing.
func (s *Service) SendMessage(ctx context.Context, actorUserID, bookingID int64, req SendMessageRequest) (*domain.BookingMessage, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLen {
		return nil, ErrValidation
	}

	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorUserID != b.StudentID && actorUserID != tutor.UserID {
		return nil, ErrForbidden
	}
	if b.Status == domain.BookingDeclined {
		return nil, ErrConflict
	}

	msg := &domain.BookingMessage{
		BookingID: b.ID,
		SenderID:  actorUserID,
		Content:   content,
		SentAt:    time.Now().UTC(),
	}
	if err := s.bookings.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	recipient := b.StudentID
	if actorUserID == b.StudentID {
		recipient = tutor.UserID
	}
	s.emit(domain.LifecycleEvent{
		BookingID:       b.ID,
		Type:            domain.NotifNewMessage,
		RecipientUserID: recipient,
		Message:         "New message on your booking",
	})

	return msg, nil
}

// Get returns the booking with its message thread, participants only.
func (s *Service) Get(ctx context.Context, actorUserID, bookingID int64) (*domain.BookingRequest, error) {
	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actorUserID != b.StudentID && actorUserID != tutor.UserID {
		return nil, ErrForbidden
	}

	msgs, err := s.bookings.GetMessages(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Messages = msgs
	return b, nil
}

// MarkMessagesRead flags the counterparty's messages as read.
func (s *Service) MarkMessagesRead(ctx context.Context, actorUserID, bookingID int64) (int64, error) {
	b, tutor, err := s.load(ctx, bookingID)
	if err != nil {
		return 0, err
	}
	if actorUserID != b.StudentID && actorUserID != tutor.UserID {
		return 0, ErrForbidden
	}

	return s.bookings.MarkMessagesRead(ctx, b.ID, actorUserID, time.Now().UTC())
}

func (s *Service) ListForStudent(ctx context.Context, studentID int64, limit, offset int) ([]domain.BookingRequest, error) {
	return s.bookings.ListByStudent(ctx, studentID, limit, offset)
}

// ListForTutor lists requests addressed to the caller's tutor profile.
func (s *Service) ListForTutor(ctx context.Context, tutorUserID int64, limit, offset int) ([]domain.BookingRequest, error) {
	tutor, err := s.tutors.GetByUserID(ctx, tutorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.bookings.ListByTutorProfile(ctx, tutor.ID, limit, offset)
}

func (s *Service) load(ctx context.Context, bookingID int64) (*domain.BookingRequest, *domain.TutorProfile, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	tutor, err := s.tutors.GetByID(ctx, b.TutorProfileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return b, tutor, nil
}

// transition validates the move against the central table and applies it with
// a compare-and-swap. A CAS miss means a concurrent transition won; the caller
// sees the same ErrConflict as for a plainly illegal move.
func (s *Service) transition(ctx context.Context, b *domain.BookingRequest, to domain.BookingStatus) error {
	if !domain.CanTransition(b.Status, to) {
		return ErrConflict
	}

	ok, err := s.bookings.UpdateStatusIf(ctx, b.ID, b.Status, to)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	b.Status = to
	return nil
}

func (s *Service) appendOptionalMessage(ctx context.Context, bookingID, senderID int64, content string) {
	content = strings.TrimSpace(content)
	if content == "" || utf8.RuneCountInString(content) > maxMessageLen {
		return
	}
	_ = s.bookings.AddMessage(ctx, &domain.BookingMessage{
		BookingID: bookingID,
		SenderID:  senderID,
		Content:   content,
		SentAt:    time.Now().UTC(),
	})
}

// refreshResponseRate recomputes the tutor's answered/received ratio.
// Best-effort: the stat feeds ranking only and must not fail the transition.
func (s *Service) refreshResponseRate(ctx context.Context, tutorProfileID int64) {
	total, responded, err := s.bookings.ResponseStats(ctx, tutorProfileID)
	if err != nil || total == 0 {
		return
	}
	rate := float64(responded) / float64(total) * 100
	_ = s.tutors.SetResponseRate(ctx, tutorProfileID, rate)
}

func (s *Service) emit(ev domain.LifecycleEvent) {
	if s.events != nil {
		s.events.Emit(ev)
	}
}
