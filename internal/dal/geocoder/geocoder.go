package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/corray333/storefront/internal/service/models/geo"
	"github.com/spf13/viper"
)

// noiseTokens are address-format words that confuse the geocoding
// service more than they help it. They are dropped before the query.
var noiseTokens = map[string]bool{
	"jl.":   true,
	"jln.":  true,
	"gg.":   true,
	"no.":   true,
	"blok":  true,
	"rt.":   true,
	"rw.":   true,
	"kec.":  true,
	"kel.":  true,
	"st.":   true,
	"rd.":   true,
	"ave.":  true,
	"blvd.": true,
}

// Client resolves free-text addresses against an external
// nominatim-style geocoding endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoder client with a bounded request timeout.
func NewClient() *Client {
	timeout := viper.GetDuration("geocoder.timeout")
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: viper.GetString("geocoder.base_url"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWith creates a geocoder client against an explicit endpoint.
func NewClientWith(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// CleanAddress strips noise tokens and trailing punctuation from a
// free-text address before it is sent to the geocoding service.
func CleanAddress(text string) string {
	fields := strings.Fields(text)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if noiseTokens[strings.ToLower(f)] {
			continue
		}
		kept = append(kept, strings.TrimRight(f, ".,;"))
	}

	return strings.Join(kept, " ")
}

// Resolve geocodes a free-text address to a point. The first result
// wins. Zero results fail with geo.ErrNotResolvable, transport or
// server errors with geo.ErrUnavailable.
func (c *Client) Resolve(ctx context.Context, addressText string) (*geo.Point, error) {
	query := url.Values{}
	query.Set("q", CleanAddress(addressText))
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/search?"+query.Encode(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geo.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", geo.ErrUnavailable, resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", geo.ErrUnavailable, err)
	}

	if len(results) == 0 {
		return nil, geo.ErrNotResolvable
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed latitude %q", geo.ErrUnavailable, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed longitude %q", geo.ErrUnavailable, results[0].Lon)
	}

	return &geo.Point{Lat: lat, Lon: lon}, nil
}
