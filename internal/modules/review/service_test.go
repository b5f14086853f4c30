package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"tutormatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Create(ctx context.Context, rv *domain.Review) error {
	args := m.Called(ctx, rv)
	if rv != nil {
		rv.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReviewStore) ListByTutor(ctx context.Context, tutorProfileID int64, limit, offset int) ([]domain.Review, error) {
	args := m.Called(ctx, tutorProfileID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

type MockBookingGate struct {
	mock.Mock
}

func (m *MockBookingGate) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingRequest), args.Error(1)
}

type MockTutorReader struct {
	mock.Mock
}

func (m *MockTutorReader) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TutorProfile), args.Error(1)
}

type recordingSink struct {
	events []domain.LifecycleEvent
}

func (s *recordingSink) Emit(ev domain.LifecycleEvent) {
	s.events = append(s.events, ev)
}

func completedBooking() *domain.BookingRequest {
	return &domain.BookingRequest{
		ID:             42,
		StudentID:      10,
		TutorProfileID: 7,
		Status:         domain.BookingCompleted,
	}
}

func TestService_Create_Success(t *testing.T) {
	mockReviews := new(MockReviewStore)
	mockBookings := new(MockBookingGate)
	mockTutors := new(MockTutorReader)
	sink := &recordingSink{}

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTutors.On("GetByID", mock.Anything, int64(7)).Return(&domain.TutorProfile{ID: 7, UserID: 70}, nil)

	service := NewService(mockReviews, mockBookings, mockTutors, sink)

	rv, err := service.Create(context.Background(), 10, CreateReviewRequest{
		BookingID: 42,
		Rating:    5,
		Comment:   "brilliant tutor",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), rv.TutorProfileID)

	assert.Len(t, sink.events, 1)
	assert.Equal(t, domain.NotifNewReview, sink.events[0].Type)
	assert.Equal(t, int64(70), sink.events[0].RecipientUserID)
}

func TestService_Create_RatingOutOfRange(t *testing.T) {
	service := NewService(new(MockReviewStore), new(MockBookingGate), new(MockTutorReader), nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.Create(context.Background(), 10, CreateReviewRequest{BookingID: 42, Rating: rating})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	}
}

func TestService_Create_CommentLengthCountsRunes(t *testing.T) {
	mockReviews := new(MockReviewStore)
	mockBookings := new(MockBookingGate)
	mockTutors := new(MockTutorReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockTutors.On("GetByID", mock.Anything, int64(7)).Return(&domain.TutorProfile{ID: 7, UserID: 70}, nil)

	service := NewService(mockReviews, mockBookings, mockTutors, nil)

	// 1000 two-byte runes must pass the 1000-character limit.
	_, err := service.Create(context.Background(), 10, CreateReviewRequest{
		BookingID: 42,
		Rating:    5,
		Comment:   strings.Repeat("é", 1000),
	})
	assert.NoError(t, err)

	_, err = service.Create(context.Background(), 10, CreateReviewRequest{
		BookingID: 42,
		Rating:    5,
		Comment:   strings.Repeat("é", 1001),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestService_Create_NotTheStudent(t *testing.T) {
	mockBookings := new(MockBookingGate)
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(), nil)

	service := NewService(new(MockReviewStore), mockBookings, new(MockTutorReader), nil)

	_, err := service.Create(context.Background(), 99, CreateReviewRequest{BookingID: 42, Rating: 4})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Create_BookingNotCompleted(t *testing.T) {
	mockBookings := new(MockBookingGate)
	b := completedBooking()
	b.Status = domain.BookingAccepted
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

	service := NewService(new(MockReviewStore), mockBookings, new(MockTutorReader), nil)

	_, err := service.Create(context.Background(), 10, CreateReviewRequest{BookingID: 42, Rating: 4})

	assert.ErrorIs(t, err, ErrNotCompleted)
}

func TestService_Create_BookingMissing(t *testing.T) {
	mockBookings := new(MockBookingGate)
	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(new(MockReviewStore), mockBookings, new(MockTutorReader), nil)

	_, err := service.Create(context.Background(), 10, CreateReviewRequest{BookingID: 42, Rating: 4})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Create_DuplicateReview(t *testing.T) {
	mockReviews := new(MockReviewStore)
	mockBookings := new(MockBookingGate)
	mockTutors := new(MockTutorReader)

	mockBookings.On("GetByID", mock.Anything, int64(42)).Return(completedBooking(), nil)
	mockReviews.On("Create", mock.Anything, mock.Anything).Return(errors.New("UNIQUE constraint failed: reviews.booking_id"))

	service := NewService(mockReviews, mockBookings, mockTutors, nil)

	_, err := service.Create(context.Background(), 10, CreateReviewRequest{BookingID: 42, Rating: 4})

	assert.ErrorIs(t, err, ErrAlreadyExists)
	mockTutors.AssertNotCalled(t, "GetByID")
}

func TestService_ListByTutor_InvalidID(t *testing.T) {
	service := NewService(new(MockReviewStore), new(MockBookingGate), new(MockTutorReader), nil)

	_, err := service.ListByTutor(context.Background(), 0, 20, 0)

	assert.ErrorIs(t, err, ErrInvalidRequest)
}
