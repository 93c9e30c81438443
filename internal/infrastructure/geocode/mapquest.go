// Package geocode resolves addresses through a MapQuest-compatible geocoding
// endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devcamper/bootcamp-api/internal/core/domain"
)

const DefaultURL = "https://www.mapquestapi.com/geocoding/v1"

// ErrNoResults is returned when the address resolves to nothing.
var ErrNoResults = domain.ErrLocationNotFound

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type response struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			City       string `json:"adminArea5"`
			State      string `json:"adminArea3"`
			Country    string `json:"adminArea1"`
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode returns the first match for address as a GeoJSON point.
func (c *Client) Geocode(ctx context.Context, address string) (*domain.Location, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("location", address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/address?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode: provider returned status %d", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocode decode: %w", err)
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, ErrNoResults
	}

	hit := body.Results[0].Locations[0]
	loc := domain.NewPoint(hit.LatLng.Lat, hit.LatLng.Lng)
	loc.Street = hit.Street
	loc.City = hit.City
	loc.State = hit.State
	loc.Zipcode = hit.PostalCode
	loc.Country = hit.Country
	loc.FormattedAddress = formatAddress(hit.Street, hit.City, hit.State, hit.PostalCode, hit.Country)
	return loc, nil
}

func formatAddress(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}
