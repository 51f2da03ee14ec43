package places

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/mcdev12/meshiroyale/go/clients/hotpepper_client"
	"github.com/mcdev12/meshiroyale/go/clients/nominatim_client"
)

const (
	// MaxRadiusM bounds the grid search.
	MaxRadiusM = 10000
	// gridParallelism limits concurrent upstream calls of one grid search.
	gridParallelism = 4
)

// Gourmet is the restaurant search provider.
type Gourmet interface {
	SearchGourmet(ctx context.Context, p hotpepper_client.SearchParams) (*hotpepper_client.SearchResult, error)
	GetGenres(ctx context.Context) ([]hotpepper_client.Genre, error)
	GetBudgets(ctx context.Context) ([]hotpepper_client.Budget, error)
}

// Geocoder resolves coordinates to an address.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*nominatim_client.Place, error)
}

// App answers restaurant picker lookups. Either provider may be nil, in which
// case its lookups fail with ErrNotConfigured.
type App struct {
	gourmet  Gourmet
	geocoder Geocoder
}

func NewApp(gourmet Gourmet, geocoder Geocoder) *App {
	return &App{gourmet: gourmet, geocoder: geocoder}
}

func validatePoint(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return fmt.Errorf("%w: lat/lng out of range", ErrInvalidQuery)
	}
	return nil
}

func (a *App) normalize(q NearbyQuery) (NearbyQuery, error) {
	if err := validatePoint(q.Lat, q.Lng); err != nil {
		return q, err
	}
	if q.RadiusM < 0 || q.RadiusM > MaxRadiusM {
		return q, fmt.Errorf("%w: radius_m must be between 0 and %d", ErrInvalidQuery, MaxRadiusM)
	}
	if q.Range != 0 && (q.Range < hotpepper_client.Range300m || q.Range > hotpepper_client.Range3000m) {
		return q, fmt.Errorf("%w: range must be between 1 and 5", ErrInvalidQuery)
	}
	if q.Count < 0 {
		return q, fmt.Errorf("%w: count must not be negative", ErrInvalidQuery)
	}
	if q.Count == 0 {
		q.Count = hotpepper_client.DefaultSearchCount
	}
	q.Count = min(q.Count, hotpepper_client.MaxSearchCount)
	if q.Order == 0 {
		q.Order = hotpepper_client.OrderByDistance
	}
	return q, nil
}

// Nearby searches restaurants around a point. Radii above 3 km are covered by
// a grid of 3 km searches merged by shop id and sorted by distance.
func (a *App) Nearby(ctx context.Context, q NearbyQuery) (*NearbyResult, error) {
	if a.gourmet == nil {
		return nil, ErrNotConfigured
	}
	q, err := a.normalize(q)
	if err != nil {
		return nil, err
	}
	if q.RadiusM > MaxSingleRadiusM {
		return a.gridSearch(ctx, q)
	}

	rng := q.Range
	if q.RadiusM > 0 {
		rng = rangeFor(q.RadiusM)
	}
	if rng == 0 {
		rng = hotpepper_client.Range1000m
	}

	res, err := a.gourmet.SearchGourmet(ctx, a.searchParams(q, q.Lat, q.Lng, rng, q.Count))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	items := make([]Shop, 0, len(res.Shops))
	for _, s := range res.Shops {
		items = append(items, shopFromAPI(s))
	}
	return &NearbyResult{
		Total:    intOr(res.Available, len(items)),
		Returned: intOr(res.Returned, len(items)),
		Start:    intOr(res.Start, 1),
		Items:    items,
	}, nil
}

func (a *App) searchParams(q NearbyQuery, lat, lng float64, rng, count int) hotpepper_client.SearchParams {
	return hotpepper_client.SearchParams{
		Lat:     lat,
		Lng:     lng,
		Range:   rng,
		Order:   q.Order,
		Count:   count,
		Start:   q.Start,
		Keyword: q.Keyword,
		Genre:   q.Genre,
		Budget:  q.Budget,
		Datum:   q.Datum,
	}
}

func (a *App) gridSearch(ctx context.Context, q NearbyQuery) (*NearbyResult, error) {
	centers := gridCenters(q.Lat, q.Lng, q.RadiusM)
	perCall := perCallCount(q.Count)
	// paging does not apply across merged grid results
	q.Start = 0

	batches := make([][]hotpepper_client.Shop, len(centers))
	errs := make([]error, len(centers))

	var g errgroup.Group
	g.SetLimit(gridParallelism)
	for i, c := range centers {
		g.Go(func() error {
			res, err := a.gourmet.SearchGourmet(ctx, a.searchParams(q, c.Lat, c.Lng, hotpepper_client.Range3000m, perCall))
			if err != nil {
				errs[i] = err
				return nil
			}
			batches[i] = res.Shops
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if failed == len(centers) {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, errors.Join(errs...))
	}
	if failed > 0 {
		log.Warn().
			Int("failed", failed).
			Int("centers", len(centers)).
			Msg("some grid searches failed")
	}

	seen := make(map[string]struct{})
	var merged []Shop
	for _, batch := range batches {
		for _, s := range batch {
			if _, ok := seen[s.ID]; ok {
				continue
			}
			seen[s.ID] = struct{}{}
			merged = append(merged, shopFromAPI(s))
		}
		if len(merged) >= q.Count*2 {
			break
		}
	}

	distance := func(s Shop) float64 {
		if s.Lat == nil || s.Lng == nil {
			return math.Inf(1)
		}
		return Haversine(q.Lat, q.Lng, *s.Lat, *s.Lng)
	}
	slices.SortStableFunc(merged, func(x, y Shop) int {
		dx, dy := distance(x), distance(y)
		switch {
		case dx < dy:
			return -1
		case dx > dy:
			return 1
		}
		return 0
	})
	if len(merged) > q.Count {
		merged = merged[:q.Count]
	}

	return &NearbyResult{
		Total:    len(merged),
		Returned: len(merged),
		Start:    1,
		Items:    merged,
	}, nil
}

func (a *App) Genres(ctx context.Context) ([]Genre, error) {
	if a.gourmet == nil {
		return nil, ErrNotConfigured
	}
	list, err := a.gourmet.GetGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	out := make([]Genre, 0, len(list))
	for _, g := range list {
		out = append(out, Genre{Code: g.Code, Name: g.Name, Catch: g.Catch})
	}
	return out, nil
}

func (a *App) Budgets(ctx context.Context) ([]Budget, error) {
	if a.gourmet == nil {
		return nil, ErrNotConfigured
	}
	list, err := a.gourmet.GetBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	out := make([]Budget, 0, len(list))
	for _, b := range list {
		out = append(out, Budget{Code: b.Code, Name: b.Name})
	}
	return out, nil
}

// ReverseGeocode names the area around a point.
func (a *App) ReverseGeocode(ctx context.Context, lat, lng float64) (*Area, error) {
	if a.geocoder == nil {
		return nil, ErrNotConfigured
	}
	if err := validatePoint(lat, lng); err != nil {
		return nil, err
	}
	place, err := a.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return &Area{
		PlaceID:     place.PlaceID,
		Lat:         place.Lat,
		Lon:         place.Lon,
		Area:        place.Address.Area(),
		Locality:    place.Address.Locality(),
		DisplayName: place.DisplayName,
		Address:     place.Address,
		BoundingBox: place.BoundingBox,
	}, nil
}

func shopFromAPI(s hotpepper_client.Shop) Shop {
	shop := Shop{
		ID:      s.ID,
		Name:    s.Name,
		Address: s.Address,
		Access:  s.Access,
		Genre:   s.Genre.Name,
		URL:     s.URLs.PC,
		Photo:   s.PhotoURL(),
	}
	if s.Lat != 0 || s.Lng != 0 {
		lat, lng := float64(s.Lat), float64(s.Lng)
		shop.Lat, shop.Lng = &lat, &lng
	}
	return shop
}

func intOr(n hotpepper_client.Number, fallback int) int {
	if n == 0 {
		return fallback
	}
	return int(n)
}
