// Package weather fetches the daily forecast for the board's weather widget
// from the open-meteo API. The widget is pure decoration: any failure here
// leaves the previous report on screen and never disturbs the board.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Report is today's forecast summary.
type Report struct {
	MinTemp       float64
	MaxTemp       float64
	Precipitation float64
}

// Rain reports whether any precipitation is forecast today.
func (r Report) Rain() bool { return r.Precipitation > 0 }

// Client fetches forecasts for a fixed location.
type Client struct {
	baseURL   string
	latitude  float64
	longitude float64
	http      *http.Client
}

const (
	defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// Geneva; the display's original deployment location.
	DefaultLatitude  = 46.1925
	DefaultLongitude = 6.17017
)

// NewClient builds a weather client. Empty baseURL uses open-meteo; zero
// coordinates use the defaults.
func NewClient(baseURL string, lat, lon float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if lat == 0 && lon == 0 {
		lat, lon = DefaultLatitude, DefaultLongitude
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		latitude:  lat,
		longitude: lon,
		http:      &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	Daily struct {
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Today fetches the forecast and returns today's summary.
func (c *Client) Today(ctx context.Context) (Report, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(c.latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(c.longitude, 'f', -1, 64))
	values.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum")
	values.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Report{}, fmt.Errorf("forecast returned status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Report{}, fmt.Errorf("decode response: %w", err)
	}
	daily := payload.Daily
	if len(daily.TempMin) == 0 || len(daily.TempMax) == 0 || len(daily.Precipitation) == 0 {
		return Report{}, fmt.Errorf("forecast response missing daily series")
	}
	return Report{
		MinTemp:       daily.TempMin[0],
		MaxTemp:       daily.TempMax[0],
		Precipitation: daily.Precipitation[0],
	}, nil
}
