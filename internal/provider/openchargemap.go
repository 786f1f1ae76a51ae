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

	"github.com/chargescope/chargescope/pkg/charging"
)

// OpenChargeMapClient implements StationSource using the OpenChargeMap POI
// API, the largest open registry of public charging stations.
type OpenChargeMapClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewOpenChargeMapClient creates an OpenChargeMap client. The API works
// without a key but applies stricter rate limits.
func NewOpenChargeMapClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *OpenChargeMapClient {
	return &OpenChargeMapClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchStations returns stations within radiusKM of the given point,
// normalized into the domain model.
func (c *OpenChargeMapClient) FetchStations(ctx context.Context, lat, lon, radiusKM float64, maxResults int) (*charging.StationSet, error) {
	params := url.Values{
		"output":       {"json"},
		"latitude":     {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":    {strconv.FormatFloat(lon, 'f', -1, 64)},
		"distance":     {strconv.FormatFloat(radiusKM, 'f', -1, 64)},
		"distanceunit": {"KM"},
		"maxresults":   {strconv.Itoa(maxResults)},
		"compact":      {"true"},
		"verbose":      {"false"},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/poi/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("station request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openchargemap API error: status %d: %s", resp.StatusCode, body)
	}

	var raw []ocmStation
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	set := &charging.StationSet{
		CenterLat: lat,
		CenterLon: lon,
		RadiusKM:  radiusKM,
		FetchedAt: time.Now().UTC(),
	}
	for _, s := range raw {
		set.Stations = append(set.Stations, s.toStation())
	}

	c.logger.Debug("fetched stations",
		"count", len(set.Stations), "lat", lat, "lon", lon, "radius_km", radiusKM)
	return set, nil
}

// OpenChargeMap API response types.

type ocmStation struct {
	ID               int64           `json:"ID"`
	UUID             string          `json:"UUID"`
	NumberOfPoints   int             `json:"NumberOfPoints"`
	DateLastVerified string          `json:"DateLastVerified"`
	AddressInfo      ocmAddressInfo  `json:"AddressInfo"`
	OperatorInfo     *ocmOperator    `json:"OperatorInfo"`
	StatusType       *ocmStatusType  `json:"StatusType"`
	UsageType        *ocmUsageType   `json:"UsageType"`
	Connections      []ocmConnection `json:"Connections"`
}

type ocmAddressInfo struct {
	Title           string   `json:"Title"`
	AddressLine1    string   `json:"AddressLine1"`
	Town            string   `json:"Town"`
	StateOrProvince string   `json:"StateOrProvince"`
	Postcode        string   `json:"Postcode"`
	Country         *ocmName `json:"Country"`
	Latitude        float64  `json:"Latitude"`
	Longitude       float64  `json:"Longitude"`
}

type ocmName struct {
	Title string `json:"Title"`
}

type ocmOperator struct {
	ID                  int64  `json:"ID"`
	Title               string `json:"Title"`
	IsPrivateIndividual bool   `json:"IsPrivateIndividual"`
}

type ocmStatusType struct {
	IsOperational *bool `json:"IsOperational"`
}

type ocmUsageType struct {
	IsPublicAccess *bool `json:"IsPublicAccess"`
}

type ocmConnection struct {
	PowerKW        float64  `json:"PowerKW"`
	Quantity       int      `json:"Quantity"`
	ConnectionType *ocmName `json:"ConnectionType"`
	Level          *ocmLevel `json:"Level"`
}

type ocmLevel struct {
	Title               string `json:"Title"`
	IsFastChargeCapable bool   `json:"IsFastChargeCapable"`
}

func (s *ocmStation) toStation() charging.Station {
	station := charging.Station{
		ID:        s.ID,
		UUID:      s.UUID,
		Name:      s.AddressInfo.Title,
		Latitude:  s.AddressInfo.Latitude,
		Longitude: s.AddressInfo.Longitude,
		NumPoints: s.NumberOfPoints,
		Address: charging.Address{
			Line1:    s.AddressInfo.AddressLine1,
			City:     s.AddressInfo.Town,
			State:    s.AddressInfo.StateOrProvince,
			Postcode: s.AddressInfo.Postcode,
		},
		// Missing status and usage blocks default to usable, matching the
		// registry's own convention for unverified sites.
		Operational: true,
		Public:      true,
	}
	if station.Name == "" {
		station.Name = "Unknown Station"
	}
	if s.AddressInfo.Country != nil {
		station.Address.Country = s.AddressInfo.Country.Title
	}
	if s.OperatorInfo != nil {
		station.Operator = charging.Operator{
			ID:        s.OperatorInfo.ID,
			Name:      s.OperatorInfo.Title,
			IsPrivate: s.OperatorInfo.IsPrivateIndividual,
		}
	}
	if station.Operator.Name == "" {
		station.Operator.Name = "Unknown"
	}
	if s.StatusType != nil && s.StatusType.IsOperational != nil {
		station.Operational = *s.StatusType.IsOperational
	}
	if s.UsageType != nil && s.UsageType.IsPublicAccess != nil {
		station.Public = *s.UsageType.IsPublicAccess
	}
	if s.DateLastVerified != "" {
		if ts, err := time.Parse(time.RFC3339, s.DateLastVerified); err == nil {
			station.VerifiedAt = ts
		}
	}

	for _, conn := range s.Connections {
		connector := charging.Connector{
			Type:     "Unknown",
			PowerKW:  conn.PowerKW,
			Quantity: conn.Quantity,
		}
		if conn.ConnectionType != nil && conn.ConnectionType.Title != "" {
			connector.Type = conn.ConnectionType.Title
		}
		if conn.Level != nil {
			connector.Level = conn.Level.Title
			connector.IsFastCharge = conn.Level.IsFastChargeCapable
		}
		if connector.Quantity <= 0 {
			connector.Quantity = 1
		}
		station.Connectors = append(station.Connectors, connector)
	}
	if s.NumberOfPoints == 0 {
		station.NumPoints = len(station.Connectors)
	}
	return station
}
