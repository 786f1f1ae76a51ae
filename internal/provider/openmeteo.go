package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// OpenMeteoClient implements WeatherSource using the Open-Meteo forecast
// API. No API key is required.
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenMeteoClient creates an Open-Meteo client.
func NewOpenMeteoClient(baseURL string, timeout time.Duration, logger *slog.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Temperatures returns the current temperature and daily mean temperatures
// for the next `days` days, in Celsius.
func (c *OpenMeteoClient) Temperatures(ctx context.Context, lat, lon float64, days int) (float64, []float64, error) {
	params := url.Values{
		"latitude":      {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":     {strconv.FormatFloat(lon, 'f', -1, 64)},
		"current":       {"temperature_2m"},
		"daily":         {"temperature_2m_mean"},
		"forecast_days": {strconv.Itoa(days)},
		"timezone":      {"auto"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/forecast?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, nil, fmt.Errorf("open-meteo API error: status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
		} `json:"current"`
		Daily struct {
			TemperatureMean []float64 `json:"temperature_2m_mean"`
		} `json:"daily"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, nil, fmt.Errorf("decode response: %w", err)
	}

	c.logger.Debug("fetched weather",
		"lat", lat, "lon", lon, "current_c", payload.Current.Temperature, "forecast_days", len(payload.Daily.TemperatureMean))
	return payload.Current.Temperature, payload.Daily.TemperatureMean, nil
}
