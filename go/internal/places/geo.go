package places

import (
	"math"
	"slices"

	"github.com/mcdev12/meshiroyale/go/clients/hotpepper_client"
)

const (
	earthRadiusM = 6371000.0
	metersPerDeg = 111320.0
	// grid centers overlap so that range=5 (3 km) circles cover the area
	gridStepM = 2400
	// MaxSingleRadiusM is the widest radius a single search covers.
	MaxSingleRadiusM = 3000
)

type point struct {
	Lat, Lng float64
}

// Haversine returns the great-circle distance in meters.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Pow(math.Sin(dLng/2), 2)
	return 2 * earthRadiusM * math.Asin(math.Sqrt(h))
}

// gridCenters lays out search centers on a square grid through the origin,
// gridStepM apart and inside radiusM, nearest to the origin first.
func gridCenters(lat, lng float64, radiusM int) []point {
	var centers []point
	r := float64(radiusM)
	n := int(r / gridStepM)
	for i := -n; i <= n; i++ {
		for j := -n; j <= n; j++ {
			x, y := float64(j*gridStepM), float64(i*gridStepM)
			if math.Hypot(x, y) > r {
				continue
			}
			dLat := y / metersPerDeg
			dLng := x / (metersPerDeg * math.Cos(lat*math.Pi/180))
			centers = append(centers, point{Lat: lat + dLat, Lng: lng + dLng})
		}
	}
	dist := func(p point) float64 { return math.Hypot(p.Lat-lat, p.Lng-lng) }
	slices.SortStableFunc(centers, func(a, b point) int {
		switch da, db := dist(a), dist(b); {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return centers
}

// rangeFor returns the smallest range code covering radiusM.
func rangeFor(radiusM int) int {
	for code := hotpepper_client.Range300m; code <= hotpepper_client.Range3000m; code++ {
		if radiusM <= hotpepper_client.RangeRadius[code] {
			return code
		}
	}
	return hotpepper_client.Range3000m
}

// perCallCount is how many shops each grid search asks for.
func perCallCount(count int) int {
	n := count / 2
	if n == 0 {
		n = 20
	}
	return min(30, max(10, n))
}
