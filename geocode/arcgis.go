// ArcGIS world geocoder client.
//
// Information Hiding:
// - findAddressCandidates request/response format
// - Candidate ranking (the service sorts by score; we take the head)

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public ArcGIS world geocoding endpoint.
const DefaultBaseURL = "https://geocode.arcgis.com/arcgis/rest/services/World/GeocodeServer/findAddressCandidates"

// maxLocations bounds how many candidates the service returns; only the
// first is used, the rest exist for the candidates_count diagnostic.
const maxLocations = "10"

// ArcGIS implements Client against the ArcGIS findAddressCandidates API.
type ArcGIS struct {
	baseURL string
	client  *http.Client
}

// NewArcGIS creates a client for the given endpoint. An empty baseURL
// selects the public world geocoder.
func NewArcGIS(baseURL string, timeout time.Duration) *ArcGIS {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ArcGIS{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// findAddressResponse is the subset of the ArcGIS payload we consume.
type findAddressResponse struct {
	Candidates []struct {
		Address  string  `json:"address"`
		Score    float64 `json:"score"`
		Location struct {
			X float64 `json:"x"` // longitude
			Y float64 `json:"y"` // latitude
		} `json:"location"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Lookup resolves an address via one outbound query.
func (g *ArcGIS) Lookup(ctx context.Context, address string) (Candidate, error) {
	u, err := url.Parse(g.baseURL)
	if err != nil {
		return Candidate{}, fmt.Errorf("invalid geocoder URL: %w", err)
	}

	q := u.Query()
	q.Set("f", "json")
	q.Set("maxLocations", maxLocations)
	q.Set("outFields", "*")
	q.Set("SingleLine", address)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Candidate{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return Candidate{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Candidate{}, fmt.Errorf("geocoder returned HTTP %s", resp.Status)
	}

	var payload findAddressResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Candidate{}, fmt.Errorf("malformed geocoder payload: %w", err)
	}
	if payload.Error != nil {
		return Candidate{}, fmt.Errorf("geocoder error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if len(payload.Candidates) == 0 {
		return Candidate{}, fmt.Errorf("%q: %w", address, ErrNoCandidates)
	}

	best := payload.Candidates[0]
	return Candidate{
		Latitude:  best.Location.Y,
		Longitude: best.Location.X,
		Score:     best.Score,
		Address:   best.Address,
	}, nil
}

var _ Client = (*ArcGIS)(nil)
