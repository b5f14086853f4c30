package search

import (
	"context"

	"tutormatch/internal/domain"
	"tutormatch/internal/repository"
)

// TutorLister supplies the active-tutor candidate set, pre-filtered by
// everything expressible in SQL.
type TutorLister interface {
	ListCandidates(ctx context.Context, f repository.CandidateFilter) ([]domain.TutorProfile, error)
}

// GeocodeResolver turns a postcode into an origin for distance ranking.
type GeocodeResolver interface {
	Resolve(ctx context.Context, postcode string) (lat, lon float64, ok bool)
}
