package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/chargescope/chargescope/pkg/demographics"
)

// ACS 5-year variables used for equity metrics.
const (
	varTotalPopulation   = "B01003_001E"
	varMedianIncome      = "B19013_001E"
	varBelowPoverty      = "B17001_002E"
	varPovertyUniverse   = "B17001_001E"
	varTotalHouseholds   = "B25044_001E"
	varNoVehicle         = "B25044_003E"
)

const censusYear = 2022
const censusDataset = "acs/acs5"

// CensusClient implements RegionSource using the US Census Bureau ACS API.
type CensusClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewCensusClient creates a Census ACS client. The API allows a limited
// number of keyless requests per day.
func NewCensusClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *CensusClient {
	return &CensusClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// StateFIPS maps state abbreviations to FIPS codes.
var StateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "FL": "12", "GA": "13",
	"HI": "15", "ID": "16", "IL": "17", "IN": "18", "IA": "19",
	"KS": "20", "KY": "21", "LA": "22", "ME": "23", "MD": "24",
	"MA": "25", "MI": "26", "MN": "27", "MS": "28", "MO": "29",
	"MT": "30", "NE": "31", "NV": "32", "NH": "33", "NJ": "34",
	"NM": "35", "NY": "36", "NC": "37", "ND": "38", "OH": "39",
	"OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45",
	"SD": "46", "TN": "47", "TX": "48", "UT": "49", "VT": "50",
	"VA": "51", "WA": "53", "WV": "54", "WI": "55", "WY": "56",
	"DC": "11",
}

// FetchRegion returns equity metrics for one county. Rates with a zero or
// missing denominator are reported as 0 rather than failing the fetch.
func (c *CensusClient) FetchRegion(ctx context.Context, stateFIPS, countyFIPS string) (demographics.Region, error) {
	vars := []string{
		varTotalPopulation, varMedianIncome,
		varBelowPoverty, varPovertyUniverse,
		varTotalHouseholds, varNoVehicle,
	}
	get := "NAME"
	for _, v := range vars {
		get += "," + v
	}

	params := url.Values{
		"get": {get},
		"for": {"county:" + countyFIPS},
		"in":  {"state:" + stateFIPS},
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	endpoint := fmt.Sprintf("%s/%d/%s?%s", c.baseURL, censusYear, censusDataset, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return demographics.Region{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return demographics.Region{}, fmt.Errorf("census request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return demographics.Region{}, fmt.Errorf("census API error: status %d: %s", resp.StatusCode, body)
	}

	// The ACS API returns a row-oriented array: header row then data rows.
	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return demographics.Region{}, fmt.Errorf("decode response: %w", err)
	}
	if len(rows) < 2 {
		return demographics.Region{}, fmt.Errorf("census response for %s/%s has no data rows", stateFIPS, countyFIPS)
	}

	record := make(map[string]string, len(rows[0]))
	for i, col := range rows[0] {
		if i < len(rows[1]) {
			record[col] = rows[1][i]
		}
	}

	region := demographics.Region{
		Name:         record["NAME"],
		Population:   parseInt(record[varTotalPopulation]),
		MedianIncome: parseFloat(record[varMedianIncome]),
	}

	if universe := parseFloat(record[varPovertyUniverse]); universe > 0 {
		region.PovertyRate = round2f(parseFloat(record[varBelowPoverty]) / universe * 100)
	}
	if households := parseFloat(record[varTotalHouseholds]); households > 0 {
		region.NoVehicleRate = round2f(parseFloat(record[varNoVehicle]) / households * 100)
	}

	if err := region.Validate(); err != nil {
		return demographics.Region{}, fmt.Errorf("census data for %s/%s: %w", stateFIPS, countyFIPS, err)
	}

	c.logger.Debug("fetched region demographics", "name", region.Name, "population", region.Population)
	return region, nil
}

func parseInt(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func round2f(v float64) float64 {
	return math.Round(v*100) / 100
}
