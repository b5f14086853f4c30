package tutor

import (
	"context"
	"errors"

	"tutormatch/internal/domain"

	"gorm.io/gorm"
)

type TutorRepository interface {
	Create(ctx context.Context, t *domain.TutorProfile) error
	GetByID(ctx context.Context, id int64) (*domain.TutorProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.TutorProfile, error)
	Update(ctx context.Context, t *domain.TutorProfile) error
}

type GeocodeResolver interface {
	Resolve(ctx context.Context, postcode string) (lat, lon float64, ok bool)
}

type Service struct {
	tutors   TutorRepository
	geocoder GeocodeResolver
}

func NewService(tutors TutorRepository, geocoder GeocodeResolver) *Service {
	return &Service{tutors: tutors, geocoder: geocoder}
}

// Create builds the user's tutor profile. The postcode is geocoded when
// possible; a provider outage falls back to the manually supplied coordinates
// and never blocks creation.
func (s *Service) Create(ctx context.Context, userID int64, req CreateProfileRequest) (*domain.TutorProfile, error) {
	mode, ok := domain.ParseTeachingMode(req.TeachingMode)
	if !ok {
		return nil, ErrValidation
	}
	if req.Headline == "" || req.Category == "" || len(req.Subjects) == 0 || req.PricePerHour < 0 {
		return nil, ErrValidation
	}

	if existing, err := s.tutors.GetByUserID(ctx, userID); err == nil && existing != nil {
		return nil, ErrProfileExists
	}

	t := &domain.TutorProfile{
		UserID:            userID,
		Headline:          req.Headline,
		Bio:               req.Bio,
		Category:          req.Category,
		Subjects:          req.Subjects,
		Postcode:          req.Postcode,
		PricePerHour:      req.PricePerHour,
		TeachingMode:      mode,
		TravelRadiusMiles: req.TravelRadiusMiles,
		IsActive:          true,
	}

	t.Latitude, t.Longitude = s.locate(ctx, req.Postcode, req.Latitude, req.Longitude)

	if err := s.tutors.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.TutorProfile, error) {
	t, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) GetMine(ctx context.Context, userID int64) (*domain.TutorProfile, error) {
	t, err := s.tutors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update applies a partial edit to the caller's own profile. Changing the
// postcode re-geocodes it with the same degrade-to-manual-coordinates rule
// as creation.
func (s *Service) Update(ctx context.Context, userID, profileID int64, req UpdateProfileRequest) (*domain.TutorProfile, error) {
	t, err := s.tutors.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}

	if req.Headline != nil {
		t.Headline = *req.Headline
	}
	if req.Bio != nil {
		t.Bio = *req.Bio
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if len(req.Subjects) > 0 {
		t.Subjects = req.Subjects
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrValidation
		}
		t.PricePerHour = *req.PricePerHour
	}
	if req.TeachingMode != nil {
		mode, ok := domain.ParseTeachingMode(*req.TeachingMode)
		if !ok {
			return nil, ErrValidation
		}
		t.TeachingMode = mode
	}
	if req.TravelRadiusMiles != nil {
		if *req.TravelRadiusMiles < 0 {
			return nil, ErrValidation
		}
		t.TravelRadiusMiles = *req.TravelRadiusMiles
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}
	if req.Postcode != nil && *req.Postcode != t.Postcode {
		t.Postcode = *req.Postcode
		t.Latitude, t.Longitude = s.locate(ctx, t.Postcode, req.Latitude, req.Longitude)
	} else if req.Latitude != nil && req.Longitude != nil {
		t.Latitude, t.Longitude = *req.Latitude, *req.Longitude
	}

	if err := s.tutors.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) locate(ctx context.Context, postcode string, manualLat, manualLon *float64) (float64, float64) {
	if postcode != "" && s.geocoder != nil {
		if lat, lon, ok := s.geocoder.Resolve(ctx, postcode); ok {
			return lat, lon
		}
	}
	if manualLat != nil && manualLon != nil {
		return *manualLat, *manualLon
	}
	return 0, 0
}
