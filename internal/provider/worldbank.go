package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/scoring"
)

// World Bank indicator codes.
const (
	indPopulation        = "SP.POP.TOTL"
	indGDPPerCapita      = "NY.GDP.PCAP.CD"
	indPovertyNational   = "SI.POV.NAHC"
	indPovertyExtreme    = "SI.POV.DDAY"
	indUrbanPercent      = "SP.URB.TOTL.IN.ZS"
	indElectricityAccess = "EG.ELC.ACCS.ZS"
	indVehiclesPer1000   = "IS.VEH.NVEH.P3"
)

// WorldBankClient implements CountrySource using the World Bank Open Data
// API. No API key is required.
type WorldBankClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWorldBankClient creates a World Bank client.
func NewWorldBankClient(baseURL string, timeout time.Duration, logger *slog.Logger) *WorldBankClient {
	return &WorldBankClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// FetchCountry builds a country profile from the most recent non-null value
// of each indicator. Individual indicator failures degrade the profile
// rather than failing it; a country with no population data at all is an
// error.
func (c *WorldBankClient) FetchCountry(ctx context.Context, code string) (demographics.Country, error) {
	code = strings.ToUpper(code)

	indicators := []string{
		indPopulation, indGDPPerCapita,
		indPovertyNational, indPovertyExtreme,
		indUrbanPercent, indElectricityAccess, indVehiclesPer1000,
	}

	values := make(map[string]float64)
	var countryName string
	for _, ind := range indicators {
		value, name, err := c.fetchIndicator(ctx, code, ind)
		if err != nil {
			c.logger.Warn("indicator fetch failed", "country", code, "indicator", ind, "error", err)
			continue
		}
		if name != "" {
			countryName = name
		}
		if !math.IsNaN(value) {
			values[ind] = value
		}
	}

	if _, ok := values[indPopulation]; !ok {
		return demographics.Country{}, fmt.Errorf("no population data for country %s", code)
	}

	gdp := values[indGDPPerCapita]
	urban := values[indUrbanPercent]
	electricity := values[indElectricityAccess]

	country := demographics.Country{
		Name:              countryName,
		Code:              code,
		Population:        int64(values[indPopulation]),
		IncomePerCapita:   gdp,
		IncomeLevel:       demographics.WorldBankIncomeLevel(gdp),
		UrbanPercent:      urban,
		ElectricityAccess: electricity,
		EVReadiness:       scoring.EVReadiness(electricity, gdp, urban),
		VehiclesPer1000:   values[indVehiclesPer1000],
	}

	// National poverty first, extreme poverty as fallback; nil when neither
	// is reported.
	if p, ok := values[indPovertyNational]; ok {
		country.PovertyRate = &p
	} else if p, ok := values[indPovertyExtreme]; ok {
		country.PovertyRate = &p
	}

	if err := country.Validate(); err != nil {
		return demographics.Country{}, fmt.Errorf("world bank data for %s: %w", code, err)
	}

	c.logger.Debug("fetched country profile",
		"country", code, "income_level", country.IncomeLevel, "ev_readiness", country.EVReadiness)
	return country, nil
}

// fetchIndicator returns the most recent non-null value of one indicator,
// or NaN when every recent year is null.
func (c *WorldBankClient) fetchIndicator(ctx context.Context, code, indicator string) (float64, string, error) {
	endpoint := fmt.Sprintf("%s/country/%s/indicator/%s?format=json&per_page=10", c.baseURL, code, indicator)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return math.NaN(), "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return math.NaN(), "", fmt.Errorf("indicator request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return math.NaN(), "", fmt.Errorf("world bank API error: status %d: %s", resp.StatusCode, body)
	}

	// Response is a two-element array: pagination metadata, then data points
	// newest first.
	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return math.NaN(), "", fmt.Errorf("decode response: %w", err)
	}
	if len(envelope) < 2 {
		return math.NaN(), "", nil
	}

	var points []wbDataPoint
	if err := json.Unmarshal(envelope[1], &points); err != nil {
		return math.NaN(), "", fmt.Errorf("decode data points: %w", err)
	}

	for _, p := range points {
		if p.Value != nil {
			return *p.Value, p.Country.Value, nil
		}
	}
	return math.NaN(), "", nil
}

type wbDataPoint struct {
	Value   *float64 `json:"value"`
	Date    string   `json:"date"`
	Country struct {
		Value string `json:"value"`
	} `json:"country"`
}

// CountryCode resolves a common country name to its ISO alpha-3 code,
// returning "" when unknown.
func CountryCode(name string) string {
	return countryCodes[strings.ToLower(strings.TrimSpace(name))]
}

var countryCodes = map[string]string{
	"united states": "USA", "usa": "USA", "us": "USA",
	"canada": "CAN", "mexico": "MEX",
	"united kingdom": "GBR", "uk": "GBR", "england": "GBR",
	"germany": "DEU", "france": "FRA", "italy": "ITA",
	"spain": "ESP", "netherlands": "NLD", "belgium": "BEL",
	"switzerland": "CHE", "austria": "AUT", "sweden": "SWE",
	"norway": "NOR", "denmark": "DNK", "finland": "FIN",
	"portugal": "PRT", "ireland": "IRL", "poland": "POL",
	"china": "CHN", "japan": "JPN", "south korea": "KOR", "korea": "KOR",
	"india": "IND", "indonesia": "IDN", "thailand": "THA",
	"vietnam": "VNM", "malaysia": "MYS", "singapore": "SGP",
	"philippines": "PHL", "bangladesh": "BGD", "pakistan": "PAK",
	"saudi arabia": "SAU", "uae": "ARE", "united arab emirates": "ARE",
	"israel": "ISR", "turkey": "TUR",
	"australia": "AUS", "new zealand": "NZL",
	"brazil": "BRA", "argentina": "ARG", "chile": "CHL",
	"colombia": "COL", "peru": "PER",
	"south africa": "ZAF", "egypt": "EGY", "nigeria": "NGA",
	"kenya": "KEN", "morocco": "MAR", "ethiopia": "ETH",
}
