package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mcdev12/meshiroyale/go/clients"
)

// Client calls the /api/places endpoints of an API server. A newer lookup of
// the same kind cancels the one in flight.
type Client struct {
	*clients.BaseClient
	nearby Latest
	area   Latest
}

func NewClient(baseURL string) *Client {
	return &Client{BaseClient: clients.NewBaseClient(baseURL)}
}

func (c *Client) Nearby(ctx context.Context, q NearbyQuery) (*NearbyResult, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(q.Lat, 'f', -1, 64))
	v.Set("lng", strconv.FormatFloat(q.Lng, 'f', -1, 64))
	for key, n := range map[string]int{"radius_m": q.RadiusM, "range": q.Range, "count": q.Count, "order": q.Order, "start": q.Start} {
		if n != 0 {
			v.Set(key, strconv.Itoa(n))
		}
	}
	for key, s := range map[string]string{"keyword": q.Keyword, "genre": q.Genre, "budget": q.Budget, "datum": q.Datum} {
		if s != "" {
			v.Set(key, s)
		}
	}

	return Do(&c.nearby, ctx, func(ctx context.Context) (*NearbyResult, error) {
		var res NearbyResult
		if err := c.getJSON(ctx, "/api/places/nearby?"+v.Encode(), &res); err != nil {
			return nil, err
		}
		return &res, nil
	})
}

func (c *Client) Area(ctx context.Context, lat, lng float64) (*Area, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))

	return Do(&c.area, ctx, func(ctx context.Context) (*Area, error) {
		var res Area
		if err := c.getJSON(ctx, "/api/places/area?"+v.Encode(), &res); err != nil {
			return nil, err
		}
		return &res, nil
	})
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
