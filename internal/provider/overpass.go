package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chargescope/chargescope/pkg/poi"
)

// OverpassClient implements POISource using the OpenStreetMap Overpass API.
// No API key is required; public instances apply per-IP rate limits.
type OverpassClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOverpassClient creates an Overpass client.
func NewOverpassClient(endpoint string, timeout time.Duration, logger *slog.Logger) *OverpassClient {
	return &OverpassClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Amenity tag values per convenience category.
var amenityCategories = map[poi.Category][]string{
	poi.Dining:        {"restaurant", "cafe", "fast_food", "food_court", "bar"},
	poi.Services:      {"bank", "atm", "pharmacy", "post_office"},
	poi.Healthcare:    {"hospital", "clinic", "doctors", "dentist"},
	poi.Entertainment: {"cinema", "theatre", "museum", "library"},
}

// FetchPOIs returns amenities, shops, and transit stops within radiusM of a
// point, categorized for convenience scoring.
func (c *OverpassClient) FetchPOIs(ctx context.Context, lat, lon float64, radiusM int) (*poi.Bundle, error) {
	query := fmt.Sprintf(`[out:json][timeout:60];
(
  node["amenity"](around:%d,%f,%f);
  node["shop"](around:%d,%f,%f);
  node["highway"="bus_stop"](around:%d,%f,%f);
  node["railway"~"station|subway_entrance|tram_stop"](around:%d,%f,%f);
);
out;`, radiusM, lat, lon, radiusM, lat, lon, radiusM, lat, lon, radiusM, lat, lon)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("overpass API error: status %d: %s", resp.StatusCode, body)
	}

	var payload overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	bundle := &poi.Bundle{
		Counts:  make(map[poi.Category]int),
		RadiusM: radiusM,
	}
	for _, elem := range payload.Elements {
		c.categorize(elem, bundle)
	}

	c.logger.Debug("fetched POIs", "lat", lat, "lon", lon, "radius_m", radiusM, "places", len(bundle.Places), "transit", len(bundle.Transit))
	return bundle, nil
}

func (c *OverpassClient) categorize(elem overpassElement, bundle *poi.Bundle) {
	lat, lon := elem.coordinates()
	if lat == 0 && lon == 0 {
		return
	}

	tags := elem.Tags
	name := tags["name"]
	if name == "" {
		name = "Unnamed"
	}

	// Transit nodes become transit stops, everything else a place.
	if transitType := transitTypeFor(tags); transitType != "" {
		bundle.Counts[poi.Transit]++
		bundle.Transit = append(bundle.Transit, poi.TransitStop{
			ID:        elem.ID,
			Name:      name,
			Latitude:  lat,
			Longitude: lon,
			Type:      transitType,
			Operator:  tags["operator"],
		})
		return
	}

	category := categoryFor(tags)
	bundle.Counts[category]++
	bundle.Places = append(bundle.Places, poi.Place{
		ID:        elem.ID,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Category:  category,
		Kind:      firstNonEmpty(tags["amenity"], tags["shop"]),
	})
}

func transitTypeFor(tags map[string]string) string {
	if tags["highway"] == "bus_stop" {
		return "bus_stop"
	}
	switch tags["railway"] {
	case "station":
		return "train_station"
	case "subway_entrance":
		return "subway"
	case "tram_stop":
		return "tram"
	}
	return ""
}

func categoryFor(tags map[string]string) poi.Category {
	amenity := tags["amenity"]
	if amenity != "" {
		for category, values := range amenityCategories {
			for _, v := range values {
				if amenity == v {
					return category
				}
			}
		}
	}
	if tags["shop"] != "" {
		return poi.Shopping
	}
	return poi.Other
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Overpass API response types.

type overpassResponse struct {
	Elements []overpassElement `json:"elements"`
}

type overpassElement struct {
	ID     int64             `json:"id"`
	Type   string            `json:"type"`
	Lat    float64           `json:"lat"`
	Lon    float64           `json:"lon"`
	Center *overpassCenter   `json:"center"`
	Tags   map[string]string `json:"tags"`
}

type overpassCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (e *overpassElement) coordinates() (float64, float64) {
	if e.Lat != 0 || e.Lon != 0 {
		return e.Lat, e.Lon
	}
	if e.Center != nil {
		return e.Center.Lat, e.Center.Lon
	}
	return 0, 0
}
