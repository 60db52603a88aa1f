package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/studywell/dashboard/internal/infrastructure/config"
	"github.com/studywell/dashboard/internal/ports"
)

const maxBody = 1 << 20

// Client talks to the open-meteo forecast and reverse geocoding APIs
type Client struct {
	http *http.Client
	cfg  config.WeatherConfig
}

// NewClient creates a client with the configured timeout
func NewClient(cfg config.WeatherConfig) ports.WeatherProvider {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Forecast returns the raw forecast document for a coordinate
func (c *Client) Forecast(ctx context.Context, lat, lon string) ([]byte, error) {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("current_weather", "true")
	q.Set("hourly", "temperature_2m,apparent_temperature,precipitation_probability")
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("timezone", c.cfg.Timezone)

	body, err := c.get(ctx, c.cfg.ForecastURL, q)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("forecast: response is not JSON")
	}
	return body, nil
}

type geocodeResponse struct {
	Results []struct {
		Name    string `json:"name"`
		Admin2  string `json:"admin2"`
		Admin1  string `json:"admin1"`
		Country string `json:"country"`
	} `json:"results"`
}

// PlaceLabel joins the first reverse geocoding hit as "name・admin2・admin1・country",
// skipping empty parts.
func (c *Client) PlaceLabel(ctx context.Context, lat, lon string) (string, error) {
	q := url.Values{}
	q.Set("latitude", lat)
	q.Set("longitude", lon)
	q.Set("language", c.cfg.Language)
	q.Set("format", "json")

	body, err := c.get(ctx, c.cfg.GeocodeURL, q)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("reverse geocode: decode: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", nil
	}

	r := resp.Results[0]
	var parts []string
	for _, p := range []string{r.Name, r.Admin2, r.Admin1, r.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "・"), nil
}

func (c *Client) get(ctx context.Context, endpoint string, q url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned %s", res.Status)
	}
	return io.ReadAll(io.LimitReader(res.Body, maxBody))
}
