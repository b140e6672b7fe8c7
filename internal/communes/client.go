package communes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"guardian/internal/geo"
	appErr "guardian/pkg/errors"
)

// Lookup statuses returned by the commune resolution service.
const (
	StatusFound        = "found"
	StatusNotFound     = "not_found"
	StatusNoShapefiles = "error_no_shapefiles_loaded"
)

// LookupCoordinate is the wire form of a point sent to the resolver.
// The service speaks "lon", not "lng".
type LookupCoordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// LookupResult pairs an input coordinate with its resolved commune.
// CommuneName is empty unless Status is "found".
type LookupResult struct {
	InputCoordinate LookupCoordinate `json:"input_coordinate"`
	CommuneName     string           `json:"commune_name"`
	Status          string           `json:"status"`
}

// Client calls the external commune resolution service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// FindCommunes resolves a batch of coordinates in a single request.
// Results come back in input order.
func (c *Client) FindCommunes(ctx context.Context, coords []geo.Coordinate) ([]LookupResult, error) {
	if len(coords) == 0 {
		return nil, nil
	}

	payload := make([]LookupCoordinate, len(coords))
	for i, p := range coords {
		payload[i] = LookupCoordinate{Lat: p.Lat, Lon: p.Lng}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "marshal commune lookup failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/find_communes/", bytes.NewReader(body))
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "build commune lookup request failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "commune service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, appErr.New(appErr.CodeUnavailable, fmt.Sprintf("commune service returned %d", resp.StatusCode))
	}

	var results []LookupResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "decode commune lookup response failed")
	}
	return results, nil
}
