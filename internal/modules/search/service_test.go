package search

import (
	"context"
	"testing"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTutorLister struct {
	mock.Mock
}

func (m *MockTutorLister) ListCandidates(ctx context.Context, f repository.CandidateFilter) ([]domain.TutorProfile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TutorProfile), args.Error(1)
}

type fixedGeocoder struct {
	lat, lon float64
	ok       bool
}

func (g fixedGeocoder) Resolve(ctx context.Context, postcode string) (float64, float64, bool) {
	return g.lat, g.lon, g.ok
}

func baseQuery() Query {
	return Query{Page: 1, PageSize: 20}
}

func TestService_Search_InvalidPagination(t *testing.T) {
	service := NewService(new(MockTutorLister), nil, DefaultRankWeights())

	for _, q := range []Query{
		{Page: 0, PageSize: 20},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: 101},
	} {
		_, err := service.Search(context.Background(), q)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestService_Search_UnknownSortMode(t *testing.T) {
	service := NewService(new(MockTutorLister), nil, DefaultRankWeights())

	q := baseQuery()
	q.Sort = "cheapest"

	_, err := service.Search(context.Background(), q)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Search_NearestNeedsOrigin(t *testing.T) {
	service := NewService(new(MockTutorLister), fixedGeocoder{ok: false}, DefaultRankWeights())

	q := baseQuery()
	q.Sort = SortNearest
	q.Postcode = "SW1A 1AA" // geocoder cannot resolve it

	_, err := service.Search(context.Background(), q)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Search_DefaultsToRating(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		{ID: 1, AverageRating: 3.5, TeachingMode: domain.ModeOnline},
		{ID: 2, AverageRating: 4.9, TeachingMode: domain.ModeOnline},
	}, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	res, err := service.Search(context.Background(), baseQuery())

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, int64(2), res.Items[0].ID)
}

func TestService_Search_SubjectFilterIsSubstring(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		{ID: 1, Subjects: []string{"Further Maths", "Physics"}, TeachingMode: domain.ModeOnline},
		{ID: 2, Subjects: []string{"Spanish"}, TeachingMode: domain.ModeOnline},
	}, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	q := baseQuery()
	q.Subject = "maths"

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, int64(1), res.Items[0].ID)
}

func TestService_Search_RadiusExcludesButOnlineSurvives(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		// in-person only, a few miles away but tiny radius
		{ID: 1, TeachingMode: domain.ModeInPerson, TravelRadiusMiles: 1, Latitude: 51.55, Longitude: -0.2},
		// online tutor far away, stays eligible as fallback
		{ID: 2, TeachingMode: domain.ModeOnline, Latitude: 53.48, Longitude: -2.24},
		// in-person within radius
		{ID: 3, TeachingMode: domain.ModeInPerson, TravelRadiusMiles: 10, Latitude: 51.51, Longitude: -0.13},
	}, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	q := baseQuery()
	q.Sort = SortNearest
	q.Latitude = ptr(51.501)
	q.Longitude = ptr(-0.141)

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, int64(3), res.Items[0].ID)
	assert.Equal(t, int64(2), res.Items[1].ID)
}

func TestService_Search_InPersonModeDisablesOnlineFallback(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		{ID: 1, TeachingMode: domain.ModeBoth, TravelRadiusMiles: 1, Latitude: 53.48, Longitude: -2.24},
	}, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	q := baseQuery()
	q.Mode = "in_person"
	q.Latitude = ptr(51.501)
	q.Longitude = ptr(-0.141)

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 0, res.Total)
}

func TestService_Search_PaginatesAfterRanking(t *testing.T) {
	mockTutors := new(MockTutorLister)
	tutors := make([]domain.TutorProfile, 0, 5)
	for i := 1; i <= 5; i++ {
		tutors = append(tutors, domain.TutorProfile{
			ID:            int64(i),
			AverageRating: float64(i), // 5 ranks first
			TeachingMode:  domain.ModeOnline,
		})
	}
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return(tutors, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	q := baseQuery()
	q.PageSize = 2
	q.Page = 2

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(3), res.Items[0].ID)
	assert.Equal(t, int64(2), res.Items[1].ID)
}

func TestService_Search_PageBeyondEnd(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		{ID: 1, TeachingMode: domain.ModeOnline},
	}, nil)

	service := NewService(mockTutors, nil, DefaultRankWeights())

	q := baseQuery()
	q.Page = 9

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Empty(t, res.Items)
}

func TestService_Search_PostcodeOrigin(t *testing.T) {
	mockTutors := new(MockTutorLister)
	mockTutors.On("ListCandidates", mock.Anything, mock.Anything).Return([]domain.TutorProfile{
		{ID: 1, TeachingMode: domain.ModeInPerson, TravelRadiusMiles: 10, Latitude: 51.51, Longitude: -0.13},
	}, nil)

	service := NewService(mockTutors, fixedGeocoder{lat: 51.501, lon: -0.141, ok: true}, DefaultRankWeights())

	q := baseQuery()
	q.Sort = SortNearest
	q.Postcode = "SW1A 1AA"

	res, err := service.Search(context.Background(), q)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.NotNil(t, res.Items[0].DistanceMiles)
}
