// Package opencage wraps the OpenCage forward-geocoding API.
package opencage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/dstrelkov/jobdeck/internal/entities"
)

var (
	// ErrNoResults means the provider resolved zero candidates for the
	// address. Not retryable; the address itself needs correcting.
	ErrNoResults = errors.New("no results for address")

	// ErrQuotaExceeded means the provider rejected the request because the
	// API quota ran out (HTTP 402) or requests came too fast (HTTP 429).
	ErrQuotaExceeded = errors.New("geocoding quota exceeded")
)

const apiURL = "https://api.opencagedata.com/geocode/v1/json"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	apiKey      string
	language    string
	resultIndex int
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		language:   "en",
		httpClient: &http.Client{},
	}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// SetLanguage sets the response language requested from the provider.
func (c *Client) SetLanguage(language string) {
	c.language = language
}

// SetResultIndex selects which ranked candidate is taken from the provider's
// result list. Defaults to 0, the top-ranked one. An index past the end of a
// shorter list falls back to the top result.
func (c *Client) SetResultIndex(index int) {
	if index >= 0 {
		c.resultIndex = index
	}
}

// Resolve geocodes a free-text address into a GeoPoint. Failures are
// classified: ErrNoResults for unresolvable addresses, ErrQuotaExceeded for
// quota or rate-limit rejections, anything else is transient.
func (c *Client) Resolve(ctx context.Context, address string) (entities.GeoPoint, error) {

	params := url.Values{}
	params.Add("q", address)
	params.Add("key", c.apiKey)
	params.Add("language", c.language)
	params.Add("no_annotations", "1")

	body, err := c.sendRequest(ctx, apiURL+"?"+params.Encode())
	if err != nil {
		return entities.GeoPoint{}, err
	}

	var response geocodeResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return entities.GeoPoint{}, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if len(response.Results) == 0 {
		return entities.GeoPoint{}, errors.Wrapf(ErrNoResults, "address %q", address)
	}

	index := c.resultIndex
	if index >= len(response.Results) {
		index = 0
	}

	return response.Results[index].toGeoPoint(), nil
}

func (c *Client) sendRequest(ctx context.Context, requestURL string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrapf(ErrQuotaExceeded, "status %v", resp.StatusCode)
	default:
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}
}
