package tutor

import (
	"context"
	"testing"

	"tutormatch/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type MockTutorRepository struct {
	mock.Mock
}

func (m *MockTutorRepository) Create(ctx context.Context, t *domain.TutorProfile) error {
	args := m.Called(ctx, t)
	if t != nil {
		t.ID = 77 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockTutorRepository) GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TutorProfile), args.Error(1)
}

func (m *MockTutorRepository) GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TutorProfile), args.Error(1)
}

func (m *MockTutorRepository) Update(ctx context.Context, t *domain.TutorProfile) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

type fixedGeocoder struct {
	lat, lon float64
	ok       bool
	calls    int
}

func (g *fixedGeocoder) Resolve(ctx context.Context, postcode string) (float64, float64, bool) {
	g.calls++
	return g.lat, g.lon, g.ok
}

func validCreate() CreateProfileRequest {
	return CreateProfileRequest{
		Headline:          "GCSE Maths",
		Category:          "academic",
		Subjects:          []string{"maths"},
		Postcode:          "SW1A 1AA",
		PricePerHour:      40,
		TeachingMode:      "both",
		TravelRadiusMiles: 5,
	}
}

func TestService_Create_GeocodesPostcode(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	mockTutors.On("GetByUserID", mock.Anything, int64(70)).Return(nil, gorm.ErrRecordNotFound)
	mockTutors.On("Create", mock.Anything, mock.Anything).Return(nil)

	geocoder := &fixedGeocoder{lat: 51.501, lon: -0.141, ok: true}
	service := NewService(mockTutors, geocoder)

	profile, err := service.Create(context.Background(), 70, validCreate())

	assert.NoError(t, err)
	assert.Equal(t, 51.501, profile.Latitude)
	assert.Equal(t, -0.141, profile.Longitude)
	assert.True(t, profile.IsActive)
}

func TestService_Create_GeocodeFailureFallsBackToManualCoords(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	mockTutors.On("GetByUserID", mock.Anything, int64(70)).Return(nil, gorm.ErrRecordNotFound)
	mockTutors.On("Create", mock.Anything, mock.Anything).Return(nil)

	service := NewService(mockTutors, &fixedGeocoder{ok: false})

	req := validCreate()
	lat, lon := 51.49, -0.12
	req.Latitude = &lat
	req.Longitude = &lon

	profile, err := service.Create(context.Background(), 70, req)

	assert.NoError(t, err)
	assert.Equal(t, 51.49, profile.Latitude)
	assert.Equal(t, -0.12, profile.Longitude)
}

func TestService_Create_SecondProfileRejected(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	mockTutors.On("GetByUserID", mock.Anything, int64(70)).Return(&domain.TutorProfile{ID: 1, UserID: 70}, nil)

	service := NewService(mockTutors, &fixedGeocoder{})

	_, err := service.Create(context.Background(), 70, validCreate())

	assert.ErrorIs(t, err, ErrProfileExists)
	mockTutors.AssertNotCalled(t, "Create")
}

func TestService_Create_InvalidMode(t *testing.T) {
	service := NewService(new(MockTutorRepository), &fixedGeocoder{})

	req := validCreate()
	req.TeachingMode = "hybrid"

	_, err := service.Create(context.Background(), 70, req)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Update_NotOwner(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	mockTutors.On("GetByID", mock.Anything, int64(77)).Return(&domain.TutorProfile{ID: 77, UserID: 70}, nil)

	service := NewService(mockTutors, &fixedGeocoder{})

	_, err := service.Update(context.Background(), 42, 77, UpdateProfileRequest{})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_Update_PostcodeChangeRegeocodes(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	existing := &domain.TutorProfile{ID: 77, UserID: 70, Postcode: "SW1A1AA", Latitude: 51.5, Longitude: -0.14}
	mockTutors.On("GetByID", mock.Anything, int64(77)).Return(existing, nil)
	mockTutors.On("Update", mock.Anything, mock.Anything).Return(nil)

	geocoder := &fixedGeocoder{lat: 53.48, lon: -2.24, ok: true}
	service := NewService(mockTutors, geocoder)

	newPostcode := "M1 1AE"
	profile, err := service.Update(context.Background(), 70, 77, UpdateProfileRequest{Postcode: &newPostcode})

	assert.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 53.48, profile.Latitude)
	assert.Equal(t, -2.24, profile.Longitude)
}

func TestService_Update_SamePostcodeSkipsGeocode(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	existing := &domain.TutorProfile{ID: 77, UserID: 70, Postcode: "SW1A1AA", Latitude: 51.5, Longitude: -0.14}
	mockTutors.On("GetByID", mock.Anything, int64(77)).Return(existing, nil)
	mockTutors.On("Update", mock.Anything, mock.Anything).Return(nil)

	geocoder := &fixedGeocoder{ok: true}
	service := NewService(mockTutors, geocoder)

	same := "SW1A1AA"
	_, err := service.Update(context.Background(), 70, 77, UpdateProfileRequest{Postcode: &same})

	assert.NoError(t, err)
	assert.Equal(t, 0, geocoder.calls)
}

func TestService_Get_NotFound(t *testing.T) {
	mockTutors := new(MockTutorRepository)
	mockTutors.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(mockTutors, &fixedGeocoder{})

	_, err := service.Get(context.Background(), 404)

	assert.ErrorIs(t, err, ErrNotFound)
}
