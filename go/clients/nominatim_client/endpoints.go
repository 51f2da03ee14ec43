package nominatim_client

const (
	// Base URL
	BaseURL = "https://nominatim.openstreetmap.org"

	// API Endpoints
	ReverseEndpoint = "/reverse"

	// Zoom 14 resolves to a suburb or neighbourhood.
	DefaultZoom = 14

	DefaultUserAgent      = "MeshiRoyale/1.0"
	DefaultAcceptLanguage = "ja,en;q=0.8"
)
