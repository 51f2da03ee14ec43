package nominatim_client

import (
	"strings"

	"github.com/mcdev12/meshiroyale/go/clients"
)

// NominatimClient reverse-geocodes coordinates. The public instance requires
// an identifying User-Agent.
type NominatimClient struct {
	*clients.BaseClient
}

func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	if baseURL == "" {
		baseURL = BaseURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	client := &NominatimClient{
		BaseClient: clients.NewBaseClient(strings.TrimSuffix(baseURL, "/")),
	}
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept-Language", DefaultAcceptLanguage)
	return client
}
