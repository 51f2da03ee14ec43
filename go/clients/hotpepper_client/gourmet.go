package hotpepper_client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type SearchParams struct {
	Lat     float64
	Lng     float64
	Range   int
	Order   int
	Count   int
	Start   int
	Keyword string
	Genre   string
	Budget  string
	Datum   string
}

type Shop struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Access  string `json:"access"`
	Lat     Number `json:"lat"`
	Lng     Number `json:"lng"`
	Genre   struct {
		Code string `json:"code"`
		Name string `json:"name"`
	} `json:"genre"`
	URLs struct {
		PC string `json:"pc"`
	} `json:"urls"`
	Photo struct {
		PC struct {
			L string `json:"l"`
			M string `json:"m"`
			S string `json:"s"`
		} `json:"pc"`
	} `json:"photo"`
}

// PhotoURL returns the largest available photo.
func (s Shop) PhotoURL() string {
	switch {
	case s.Photo.PC.L != "":
		return s.Photo.PC.L
	case s.Photo.PC.M != "":
		return s.Photo.PC.M
	default:
		return s.Photo.PC.S
	}
}

type SearchResult struct {
	Available Number `json:"results_available"`
	Returned  Number `json:"results_returned"`
	Start     Number `json:"results_start"`
	Shops     []Shop `json:"shop"`
}

func (c *HotPepperClient) SearchGourmet(ctx context.Context, p SearchParams) (*SearchResult, error) {
	q := url.Values{}
	q.Set("type", "lite")
	q.Set("lat", strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(p.Lng, 'f', -1, 64))
	q.Set("range", strconv.Itoa(p.Range))
	q.Set("order", strconv.Itoa(p.Order))
	q.Set("count", strconv.Itoa(p.Count))
	if p.Start > 0 {
		q.Set("start", strconv.Itoa(p.Start))
	}
	for k, v := range map[string]string{"keyword": p.Keyword, "genre": p.Genre, "budget": p.Budget, "datum": p.Datum} {
		if v != "" {
			q.Set(k, v)
		}
	}

	body, err := c.Get(ctx, c.endpoint(GourmetEndpoint, q))
	if err != nil {
		return nil, fmt.Errorf("failed to search gourmet: %w", err)
	}
	return decode[SearchResult](body)
}
