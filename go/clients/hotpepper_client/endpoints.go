package hotpepper_client

const (
	// Base URL
	BaseURL = "http://webservice.recruit.co.jp/hotpepper"

	// API Endpoints
	GourmetEndpoint = "/gourmet/v1/"
	GenreEndpoint   = "/genre/v1/"
	BudgetEndpoint  = "/budget/v1/"

	// Search ranges (radius codes)
	Range300m  = 1
	Range500m  = 2
	Range1000m = 3
	Range2000m = 4
	Range3000m = 5

	// Sort orders
	OrderByName        = 1
	OrderByGenre       = 2
	OrderByDistance    = 3
	OrderRecommended   = 4
	DefaultSearchCount = 30
	MaxSearchCount     = 100

	UserAgent = "MeshiRoyale/1.0"
)

// RangeRadius maps range codes to their radius in meters.
var RangeRadius = map[int]int{
	Range300m:  300,
	Range500m:  500,
	Range1000m: 1000,
	Range2000m: 2000,
	Range3000m: 3000,
}
