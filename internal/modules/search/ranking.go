package search

import (
	"math"
	"sort"

	"tutormatch/internal/domain"
)

const earthRadiusMiles = 3958.8

// DistanceMiles computes the great-circle distance between two points with
// the haversine formula.
func DistanceMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// RankWeights blends the composite "best" score. The split is a product
// decision, kept as data so it can be tuned without touching the sort.
type RankWeights struct {
	Proximity    float64
	Rating       float64
	ResponseRate float64
}

func DefaultRankWeights() RankWeights {
	return RankWeights{Proximity: 0.4, Rating: 0.4, ResponseRate: 0.2}
}

// candidate pairs a tutor with its computed distance (nil when the query has
// no origin).
type candidate struct {
	tutor    domain.TutorProfile
	distance *float64
}

func (c candidate) distanceOrMax() float64 {
	if c.distance == nil {
		return math.MaxFloat64
	}
	return *c.distance
}

// compositeScore normalizes proximity (inverse, capped at the tutor's travel
// radius), rating (0-5) and response rate (0-100) to [0,1] and blends them.
func compositeScore(c candidate, w RankWeights) float64 {
	proximity := 0.0
	if c.distance != nil && c.tutor.TravelRadiusMiles > 0 {
		d := math.Min(*c.distance, c.tutor.TravelRadiusMiles)
		proximity = 1 - d/c.tutor.TravelRadiusMiles
	}
	rating := c.tutor.AverageRating / 5
	responseRate := c.tutor.ResponseRate / 100

	return w.Proximity*proximity + w.Rating*rating + w.ResponseRate*responseRate
}

// rank orders candidates in place for the given sort mode. Ties are broken
// deterministically per mode; filtering has already happened and is never
// revisited here.
func rank(cands []candidate, mode string, w RankWeights) {
	switch mode {
	case SortNearest:
		sort.SliceStable(cands, func(i, j int) bool {
			di, dj := cands[i].distanceOrMax(), cands[j].distanceOrMax()
			if di != dj {
				return di < dj
			}
			return cands[i].tutor.AverageRating > cands[j].tutor.AverageRating
		})
	case SortRating:
		sort.SliceStable(cands, func(i, j int) bool {
			ri, rj := cands[i].tutor.AverageRating, cands[j].tutor.AverageRating
			if ri != rj {
				return ri > rj
			}
			return cands[i].distanceOrMax() < cands[j].distanceOrMax()
		})
	case SortPrice:
		sort.SliceStable(cands, func(i, j int) bool {
			pi, pj := cands[i].tutor.PricePerHour, cands[j].tutor.PricePerHour
			if pi != pj {
				return pi < pj
			}
			return cands[i].distanceOrMax() < cands[j].distanceOrMax()
		})
	case SortBest:
		sort.SliceStable(cands, func(i, j int) bool {
			si, sj := compositeScore(cands[i], w), compositeScore(cands[j], w)
			if si != sj {
				return si > sj
			}
			return cands[i].distanceOrMax() < cands[j].distanceOrMax()
		})
	}
}
