package places

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Handler exposes the restaurant picker under /api/places.
type Handler struct {
	app *App
}

func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/places/nearby", h.HandleNearby)
	mux.HandleFunc("GET /api/places/genres", h.HandleGenres)
	mux.HandleFunc("GET /api/places/budgets", h.HandleBudgets)
	mux.HandleFunc("GET /api/places/area", h.HandleArea)
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type nearbyResponse struct {
	OK bool `json:"ok"`
	*NearbyResult
}

type listResponse[T any] struct {
	OK    bool `json:"ok"`
	Items []T  `json:"items"`
}

type areaResponse struct {
	OK bool `json:"ok"`
	*Area
}

func (h *Handler) HandleNearby(w http.ResponseWriter, r *http.Request) {
	q, err := parseNearbyQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	res, err := h.app.Nearby(r.Context(), q)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nearbyResponse{OK: true, NearbyResult: res})
}

func (h *Handler) HandleGenres(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Genres(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Genre]{OK: true, Items: list})
}

func (h *Handler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	list, err := h.app.Budgets(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[Budget]{OK: true, Items: list})
}

func (h *Handler) HandleArea(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lng := q.Get("lng")
	if lng == "" {
		lng = q.Get("lon")
	}
	lat, err1 := parseFloat(q.Get("lat"), "lat")
	lon, err2 := parseFloat(lng, "lng")
	if err := errors.Join(err1, err2); err != nil {
		h.writeError(w, r, err)
		return
	}
	area, err := h.app.ReverseGeocode(r.Context(), lat, lon)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, areaResponse{OK: true, Area: area})
}

func parseNearbyQuery(r *http.Request) (NearbyQuery, error) {
	v := r.URL.Query()
	lat, err1 := parseFloat(v.Get("lat"), "lat")
	lng, err2 := parseFloat(v.Get("lng"), "lng")
	if err := errors.Join(err1, err2); err != nil {
		return NearbyQuery{}, err
	}

	q := NearbyQuery{
		Lat:     lat,
		Lng:     lng,
		Keyword: v.Get("keyword"),
		Genre:   v.Get("genre"),
		Budget:  v.Get("budget"),
		Datum:   v.Get("datum"),
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"radius_m", &q.RadiusM},
		{"range", &q.Range},
		{"count", &q.Count},
		{"order", &q.Order},
		{"start", &q.Start},
	}
	for _, f := range ints {
		raw := v.Get(f.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return NearbyQuery{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidQuery, f.key)
		}
		*f.dst = n
	}
	return q, nil
}

func parseFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: %s required", ErrInvalidQuery, name)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidQuery, name)
	}
	return f, nil
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidQuery):
		status = http.StatusBadRequest
	case errors.Is(err, ErrUpstream):
		status = http.StatusBadGateway
	case errors.Is(err, ErrNotConfigured):
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("places lookup failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode places response")
	}
}
