package places

// Shop is a restaurant candidate near the requested point.
type Shop struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Access  string   `json:"access,omitempty"`
	Genre   string   `json:"genre,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	URL     string   `json:"url,omitempty"`
	Photo   string   `json:"photo,omitempty"`
}

type NearbyQuery struct {
	Lat float64
	Lng float64
	// RadiusM above 3000 switches to a grid of searches.
	RadiusM int
	// Range is a HotPepper range code, used when RadiusM is zero.
	Range   int
	Count   int
	Order   int
	Start   int
	Keyword string
	Genre   string
	Budget  string
	Datum   string
}

type NearbyResult struct {
	Total    int    `json:"total"`
	Returned int    `json:"returned"`
	Start    int    `json:"start"`
	Items    []Shop `json:"items"`
}

type Area struct {
	PlaceID     int64             `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Area        string            `json:"area"`
	Locality    string            `json:"locality"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address,omitempty"`
	BoundingBox []string          `json:"boundingbox,omitempty"`
}

type Genre struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Catch string `json:"catch,omitempty"`
}

type Budget struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
