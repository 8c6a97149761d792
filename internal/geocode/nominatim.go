package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 3 * time.Second

// HTTPGeocoder resolves locations against a Nominatim-compatible search
// endpoint.
type HTTPGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGeocoder constructs an HTTPGeocoder against the given base URL.
func NewHTTPGeocoder(baseURL string, timeout time.Duration) (*HTTPGeocoder, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("GEOCODER_BASE_URL is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPGeocoder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve looks up a free-text location. Returns ErrNoResult when the
// endpoint has no match.
func (g *HTTPGeocoder) Resolve(ctx context.Context, location string) (Point, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Point{}, ErrNoResult
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(location))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Point{}, fmt.Errorf("geocode request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geocode call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Point{}, fmt.Errorf("geocode status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Point{}, fmt.Errorf("geocode decode: %w", err)
	}
	if len(results) == 0 {
		return Point{}, ErrNoResult
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode parse lat: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("geocode parse lon: %w", err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

var _ Geocoder = (*HTTPGeocoder)(nil)
