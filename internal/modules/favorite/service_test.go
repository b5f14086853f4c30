package favorite

import (
	"context"
	"testing"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, tutorProfileID int64) (*domain.Favorite, error) {
	args := m.Called(ctx, userID, tutorProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, tutorProfileID int64) error {
	args := m.Called(ctx, userID, tutorProfileID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Favorite, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Favorite), args.Get(1).(int64), args.Error(2)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, tutorProfileID int64) (bool, error) {
	args := m.Called(ctx, userID, tutorProfileID)
	return args.Bool(0), args.Error(1)
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

func TestService_Add_Success(t *testing.T) {
	mockFavorites := new(MockFavoriteRepository)
	mockTutors := new(MockTutorReader)

	mockTutors.On("GetByID", mock.Anything, int64(7)).Return(&domain.TutorProfile{ID: 7, UserID: 70}, nil)
	mockFavorites.On("Add", mock.Anything, int64(10), int64(7)).
		Return(&domain.Favorite{ID: 1, UserID: 10, TutorProfileID: 7}, nil)

	service := NewService(mockFavorites, mockTutors)

	fav, err := service.Add(context.Background(), 10, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(7), fav.TutorProfileID)
}

func TestService_Add_TutorMissing(t *testing.T) {
	mockFavorites := new(MockFavoriteRepository)
	mockTutors := new(MockTutorReader)

	mockTutors.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockFavorites, mockTutors)

	_, err := service.Add(context.Background(), 10, 404)

	assert.ErrorIs(t, err, ErrTutorNotFound)
	mockFavorites.AssertNotCalled(t, "Add")
}

func TestService_Add_OwnProfile(t *testing.T) {
	mockFavorites := new(MockFavoriteRepository)
	mockTutors := new(MockTutorReader)

	mockTutors.On("GetByID", mock.Anything, int64(7)).Return(&domain.TutorProfile{ID: 7, UserID: 70}, nil)

	service := NewService(mockFavorites, mockTutors)

	_, err := service.Add(context.Background(), 70, 7)

	assert.ErrorIs(t, err, ErrOwnProfile)
	mockFavorites.AssertNotCalled(t, "Add")
}

func TestService_Add_Duplicate(t *testing.T) {
	mockFavorites := new(MockFavoriteRepository)
	mockTutors := new(MockTutorReader)

	mockTutors.On("GetByID", mock.Anything, int64(7)).Return(&domain.TutorProfile{ID: 7, UserID: 70}, nil)
	mockFavorites.On("Add", mock.Anything, int64(10), int64(7)).Return(nil, repository.ErrFavoriteExists)

	service := NewService(mockFavorites, mockTutors)

	_, err := service.Add(context.Background(), 10, 7)

	assert.ErrorIs(t, err, ErrAlreadyFavorited)
}

func TestService_Remove_NotFavorited(t *testing.T) {
	mockFavorites := new(MockFavoriteRepository)
	mockTutors := new(MockTutorReader)

	mockFavorites.On("Remove", mock.Anything, int64(10), int64(7)).Return(repository.ErrFavoriteNotFound)

	service := NewService(mockFavorites, mockTutors)

	err := service.Remove(context.Background(), 10, 7)

	assert.ErrorIs(t, err, ErrNotFavorited)
}
