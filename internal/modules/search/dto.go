package search

// Sort modes accepted by Search.
const (
	SortNearest = "nearest"
	SortRating  = "rating"
	SortPrice   = "price"
	SortBest    = "best"
)

type Query struct {
	Category  string
	Subject   string
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Mode      string

	Postcode  string
	Latitude  *float64
	Longitude *float64

	Sort     string
	Page     int
	PageSize int
}

type TutorSummary struct {
	ID            int64    `json:"id"`
	Headline      string   `json:"headline"`
	Category      string   `json:"category"`
	Subjects      []string `json:"subjects,omitempty"`
	PricePerHour  float64  `json:"price_per_hour"`
	TeachingMode  string   `json:"teaching_mode"`
	AverageRating float64  `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
	ResponseRate  float64  `json:"response_rate"`
	DistanceMiles *float64 `json:"distance_miles,omitempty"`
}

type PagedResult struct {
	Items    []TutorSummary `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}
