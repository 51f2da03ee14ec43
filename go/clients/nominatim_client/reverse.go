package nominatim_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type Address map[string]string

// First returns the first non-empty value among keys.
func (a Address) First(keys ...string) string {
	for _, k := range keys {
		if v := a[k]; v != "" {
			return v
		}
	}
	return ""
}

// Area is the municipality level name of the address.
func (a Address) Area() string {
	return a.First("city", "town", "village", "municipality", "suburb", "city_district", "county", "state", "region")
}

// Locality is the neighbourhood level name of the address.
func (a Address) Locality() string {
	return a.First("neighbourhood", "suburb", "hamlet", "quarter", "residential")
}

type Place struct {
	PlaceID     int64    `json:"place_id"`
	Lat         string   `json:"lat"`
	Lon         string   `json:"lon"`
	DisplayName string   `json:"display_name"`
	Address     Address  `json:"address"`
	BoundingBox []string `json:"boundingbox"`
	Error       string   `json:"error,omitempty"`
}

func (c *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (*Place, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("zoom", strconv.Itoa(DefaultZoom))
	q.Set("addressdetails", "1")

	body, err := c.Get(ctx, ReverseEndpoint+"?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if place.Error != "" {
		return nil, fmt.Errorf("API returned error: %s", place.Error)
	}
	return &place, nil
}
