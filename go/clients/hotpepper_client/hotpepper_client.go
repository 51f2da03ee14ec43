package hotpepper_client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mcdev12/meshiroyale/go/clients"
)

type HotPepperClient struct {
	*clients.BaseClient
	apiKey string
}

func NewHotPepperClient(apiKey string) *HotPepperClient {
	return NewHotPepperClientWithURL(BaseURL, apiKey)
}

// NewHotPepperClientWithURL points the client at another host, e.g. a test server.
func NewHotPepperClientWithURL(baseURL, apiKey string) *HotPepperClient {
	client := &HotPepperClient{
		BaseClient: clients.NewBaseClient(strings.TrimSuffix(baseURL, "/")),
		apiKey:     apiKey,
	}
	client.SetHeader("User-Agent", UserAgent)
	return client
}

func (c *HotPepperClient) endpoint(path string, q url.Values) string {
	q.Set("key", c.apiKey)
	q.Set("format", "json")
	return path + "?" + q.Encode()
}

// APIError is an error reported inside a 200 response.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Number decodes values the API sends either as JSON numbers or strings.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", b, err)
	}
	*n = Number(f)
	return nil
}

func decode[T any](body []byte) (*T, error) {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	var errs struct {
		Error []APIError `json:"error"`
	}
	if err := json.Unmarshal(envelope.Results, &errs); err == nil && len(errs.Error) > 0 {
		return nil, fmt.Errorf("API returned errors: %d %s", errs.Error[0].Code, errs.Error[0].Message)
	}

	var out T
	if err := json.Unmarshal(envelope.Results, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results: %w", err)
	}
	return &out, nil
}
