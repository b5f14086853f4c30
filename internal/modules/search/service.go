package search

import (
	"context"
	"strings"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"
)

const (
	maxPageSize = 100
)

type Service struct {
	tutors   TutorLister
	geocoder GeocodeResolver
	weights  RankWeights
}

func NewService(tutors TutorLister, geocoder GeocodeResolver, weights RankWeights) *Service {
	return &Service{tutors: tutors, geocoder: geocoder, weights: weights}
}

// Search filters, ranks and paginates active tutors. Filtering always runs
// before ranking; pagination runs last so Total reflects every eligible tutor,
// not just the page.
func (s *Service) Search(ctx context.Context, q Query) (*PagedResult, error) {
	if q.Page < 1 || q.PageSize < 1 || q.PageSize > maxPageSize {
		return nil, ErrValidation
	}

	sortMode := q.Sort
	if sortMode == "" {
		sortMode = SortRating
	}
	switch sortMode {
	case SortNearest, SortRating, SortPrice, SortBest:
	default:
		return nil, ErrValidation
	}

	if q.Mode != "" {
		if _, ok := domain.ParseTeachingMode(q.Mode); !ok {
			return nil, ErrValidation
		}
	}

	origin, hasOrigin := s.resolveOrigin(ctx, q)
	if !hasOrigin && (sortMode == SortNearest || sortMode == SortBest) {
		return nil, ErrValidation
	}

	tutors, err := s.tutors.ListCandidates(ctx, repository.CandidateFilter{
		Category:  q.Category,
		MinPrice:  q.MinPrice,
		MaxPrice:  q.MaxPrice,
		MinRating: q.MinRating,
		Mode:      q.Mode,
	})
	if err != nil {
		return nil, err
	}

	requiresInPerson := q.Mode == string(domain.ModeInPerson)

	eligible := make([]candidate, 0, len(tutors))
	for _, t := range tutors {
		if !matchesSubject(t, q.Subject) {
			continue
		}

		c := candidate{tutor: t}
		if hasOrigin {
			d := DistanceMiles(origin.lat, origin.lon, t.Latitude, t.Longitude)
			c.distance = &d

			withinRadius := t.TeachingMode.SupportsInPerson() && d <= t.TravelRadiusMiles
			onlineFallback := !requiresInPerson && t.TeachingMode.SupportsOnline()
			if !withinRadius && !onlineFallback {
				continue
			}
		}
		eligible = append(eligible, c)
	}

	rank(eligible, sortMode, s.weights)

	total := len(eligible)
	start := (q.Page - 1) * q.PageSize
	if start > total {
		start = total
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}

	items := make([]TutorSummary, 0, end-start)
	for _, c := range eligible[start:end] {
		items = append(items, toSummary(c))
	}

	return &PagedResult{
		Items:    items,
		Total:    total,
		Page:     q.Page,
		PageSize: q.PageSize,
	}, nil
}

type point struct {
	lat float64
	lon float64
}

// resolveOrigin prefers explicit coordinates over the postcode. A postcode
// that fails to geocode leaves the query originless; distance-dependent sort
// modes then reject it upstream.
func (s *Service) resolveOrigin(ctx context.Context, q Query) (point, bool) {
	if q.Latitude != nil && q.Longitude != nil {
		return point{lat: *q.Latitude, lon: *q.Longitude}, true
	}
	if q.Postcode != "" && s.geocoder != nil {
		if lat, lon, ok := s.geocoder.Resolve(ctx, q.Postcode); ok {
			return point{lat: lat, lon: lon}, true
		}
	}
	return point{}, false
}

func matchesSubject(t domain.TutorProfile, subject string) bool {
	if subject == "" {
		return true
	}
	needle := strings.ToLower(subject)
	for _, s := range t.Subjects {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func toSummary(c candidate) TutorSummary {
	return TutorSummary{
		ID:            c.tutor.ID,
		Headline:      c.tutor.Headline,
		Category:      c.tutor.Category,
		Subjects:      c.tutor.Subjects,
		PricePerHour:  c.tutor.PricePerHour,
		TeachingMode:  string(c.tutor.TeachingMode),
		AverageRating: c.tutor.AverageRating,
		ReviewCount:   c.tutor.ReviewCount,
		ResponseRate:  c.tutor.ResponseRate,
		DistanceMiles: c.distance,
	}
}
