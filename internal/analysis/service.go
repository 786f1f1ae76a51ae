package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chargescope/chargescope/internal/observability"
	"github.com/chargescope/chargescope/internal/provider"
	"github.com/chargescope/chargescope/internal/store"
	"github.com/chargescope/chargescope/pkg/charging"
	"github.com/chargescope/chargescope/pkg/climate"
	"github.com/chargescope/chargescope/pkg/demographics"
	"github.com/chargescope/chargescope/pkg/scoring"
)

const (
	defaultMaxResults   = 100
	defaultPOISample    = 10
	defaultForecastDays = 7
	poiRadiusM          = 500
	poiWorkers          = 4
)

// Request describes one analysis to run. Latitude, longitude, and radius are
// required; the FIPS codes feed regional equity and the country code feeds
// global equity.
type Request struct {
	LocationName string
	Latitude     float64
	Longitude    float64
	RadiusKM     float64
	MaxResults   int
	StateFIPS    string
	CountyFIPS   string
	CountryCode  string
	ForecastDays int
	// WithNarrative requests LLM narrative text. Cosmetic: failures degrade
	// to an empty narrative, never fail the analysis.
	WithNarrative bool
}

// Options configures a Service. Nil fields disable the corresponding
// capability: no Store means rows are not persisted, no Storage means report
// blobs are not written.
type Options struct {
	Store         *store.Service
	Storage       StorageClient
	Metrics       *observability.Metrics
	EquityWeights scoring.EquityWeights
	GlobalWeights scoring.GlobalWeights
	POISampleSize int
}

// Service runs analyses against the configured providers.
type Service struct {
	providers provider.Directory
	rows      *store.Service
	storage   StorageClient
	metrics   *observability.Metrics
	equityW   scoring.EquityWeights
	globalW   scoring.GlobalWeights
	poiSample int
}

// NewService creates an analysis Service. Zero-valued weights fall back to
// the documented defaults.
func NewService(providers provider.Directory, opts Options) *Service {
	if opts.EquityWeights.Sum() == 0 {
		opts.EquityWeights = scoring.DefaultEquityWeights()
	}
	if opts.GlobalWeights.Sum() == 0 {
		opts.GlobalWeights = scoring.DefaultGlobalWeights()
	}
	if opts.POISampleSize <= 0 {
		opts.POISampleSize = defaultPOISample
	}
	return &Service{
		providers: providers,
		rows:      opts.Store,
		storage:   opts.Storage,
		metrics:   opts.Metrics,
		equityW:   opts.EquityWeights,
		globalW:   opts.GlobalWeights,
		poiSample: opts.POISampleSize,
	}
}

// Run dispatches to the analyzer for the given kind.
func (s *Service) Run(ctx context.Context, kind string, req Request) (*Report, error) {
	switch kind {
	case store.KindInfrastructure:
		return s.AnalyzeInfrastructure(ctx, req)
	case store.KindRegionalEquity:
		return s.AnalyzeRegionalEquity(ctx, req)
	case store.KindGlobalEquity:
		return s.AnalyzeGlobalEquity(ctx, req)
	case store.KindAccessibility:
		return s.AnalyzeAccessibility(ctx, req)
	default:
		return nil, fmt.Errorf("unknown analysis kind %q", kind)
	}
}

// AnalyzeInfrastructure surveys the charging network itself: inventory,
// charging levels, coverage, operator concentration, and gaps, plus weather
// range impact when a weather source is configured.
func (s *Service) AnalyzeInfrastructure(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	set, err := s.fetchStations(ctx, req)
	if err != nil {
		return nil, s.fail(store.KindInfrastructure, start, err)
	}

	report := s.newReport(store.KindInfrastructure, req)
	if err := s.addInfrastructure(report, set); err != nil {
		return nil, s.fail(store.KindInfrastructure, start, err)
	}
	s.addClimate(ctx, report, req)
	s.addNarrative(ctx, report, req)

	density := report.Coverage.StationDensity
	score := float64(report.Coverage.Score)
	if err := s.persist(ctx, report, &score, &report.Coverage.Rating, report.Coverage); err != nil {
		return nil, s.fail(store.KindInfrastructure, start, err)
	}

	log.Printf("infrastructure analysis %s: %d stations, density %.2f/sq km, %s coverage",
		report.ID, len(set.Stations), density, report.Coverage.Rating)
	s.done(store.KindInfrastructure, start, "success")
	return report, nil
}

// AnalyzeRegionalEquity scores US county-level equity. When the census
// source fails, the result degrades to a partial, infrastructure-only
// report instead of erroring.
func (s *Service) AnalyzeRegionalEquity(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	set, err := s.fetchStations(ctx, req)
	if err != nil {
		return nil, s.fail(store.KindRegionalEquity, start, err)
	}

	report := s.newReport(store.KindRegionalEquity, req)
	stats := set.Stats()
	report.Stats = &stats

	region, err := s.fetchRegion(ctx, req)
	if err != nil {
		log.Printf("regional equity: demographics unavailable, degrading to infrastructure-only: %v", err)
		return s.finishPartial(ctx, report, set, req, start, err)
	}
	report.Region = &region

	result, err := scoring.ScoreRegionalEquity(len(set.Stations), region, s.equityW)
	if err != nil {
		return nil, s.fail(store.KindRegionalEquity, start, err)
	}
	report.Equity = result

	assessment := scoring.AssessAccess(len(set.Stations), region.Population, region.PovertyRate)
	report.Access = &assessment
	report.Recommendations = scoring.RecommendRegional(result.Score, region, assessment.StationsPer1000)

	s.addClimate(ctx, report, req)
	s.addNarrative(ctx, report, req)

	if err := s.persist(ctx, report, &result.Score, &result.Grade, result.Components); err != nil {
		return nil, s.fail(store.KindRegionalEquity, start, err)
	}

	log.Printf("regional equity analysis %s: score %.2f grade %s (%s)", report.ID, result.Score, result.Grade, region.Name)
	s.done(store.KindRegionalEquity, start, "success")
	return report, nil
}

// AnalyzeGlobalEquity scores equity against country-adaptive benchmarks.
// When the country source fails, the result degrades to a partial,
// infrastructure-only report.
func (s *Service) AnalyzeGlobalEquity(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	set, err := s.fetchStations(ctx, req)
	if err != nil {
		return nil, s.fail(store.KindGlobalEquity, start, err)
	}

	report := s.newReport(store.KindGlobalEquity, req)
	stats := set.Stats()
	report.Stats = &stats

	country, err := s.fetchCountry(ctx, req)
	if err != nil {
		log.Printf("global equity: country data unavailable, degrading to infrastructure-only: %v", err)
		return s.finishPartial(ctx, report, set, req, start, err)
	}
	report.Country = &country

	result, err := scoring.ScoreGlobalEquity(len(set.Stations), req.RadiusKM, country, s.globalW)
	if err != nil {
		return nil, s.fail(store.KindGlobalEquity, start, err)
	}
	report.Equity = result
	report.Recommendations = scoring.RecommendGlobal(result.Score, country, len(set.Stations))

	s.addClimate(ctx, report, req)
	s.addNarrative(ctx, report, req)

	if err := s.persist(ctx, report, &result.Score, &result.Grade, result.Components); err != nil {
		return nil, s.fail(store.KindGlobalEquity, start, err)
	}

	log.Printf("global equity analysis %s: score %.2f grade %s (%s)", report.ID, result.Score, result.Grade, country.Code)
	s.done(store.KindGlobalEquity, start, "success")
	return report, nil
}

// AnalyzeAccessibility samples stations and scores the amenity mix around
// each through a bounded worker pool, then aggregates into a location-level
// convenience score.
func (s *Service) AnalyzeAccessibility(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()

	if s.providers.POIs == nil {
		return nil, s.fail(store.KindAccessibility, start, fmt.Errorf("no POI source configured"))
	}

	set, err := s.fetchStations(ctx, req)
	if err != nil {
		return nil, s.fail(store.KindAccessibility, start, err)
	}

	report := s.newReport(store.KindAccessibility, req)
	stats := set.Stats()
	report.Stats = &stats

	sample := set.Stations
	if len(sample) > s.poiSample {
		sample = sample[:s.poiSample]
	}

	report.StationScores = s.scoreStations(ctx, sample)

	scores := make([]float64, 0, len(report.StationScores))
	for _, sc := range report.StationScores {
		scores = append(scores, sc.Score)
	}
	aggregate, err := scoring.AggregateConvenience(scores)
	if err != nil {
		return nil, s.fail(store.KindAccessibility, start, fmt.Errorf("aggregate convenience: %w", err))
	}
	report.Convenience = aggregate

	s.addNarrative(ctx, report, req)

	if err := s.persist(ctx, report, &aggregate.Score, &aggregate.Grade, report.StationScores); err != nil {
		return nil, s.fail(store.KindAccessibility, start, err)
	}

	log.Printf("accessibility analysis %s: %d stations sampled, score %.1f grade %s",
		report.ID, len(report.StationScores), aggregate.Score, aggregate.Grade)
	s.done(store.KindAccessibility, start, "success")
	return report, nil
}

// scoreStations fetches POIs for each sampled station through a fixed-size
// worker pool and scores its convenience. Per-station fetch failures are
// logged and dropped from the sample.
func (s *Service) scoreStations(ctx context.Context, sample []charging.Station) []StationScore {
	results := make([]*StationScore, len(sample))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := poiWorkers
	if len(sample) < workers {
		workers = len(sample)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				st := &sample[i]
				bundle, err := s.providers.POIs.FetchPOIs(ctx, st.Latitude, st.Longitude, poiRadiusM)
				if err != nil {
					log.Printf("poi fetch failed for station %d (%s): %v", st.ID, st.Name, err)
					continue
				}
				result := scoring.ScoreConvenience(bundle)
				results[i] = &StationScore{
					StationID:   st.ID,
					StationName: st.Name,
					Score:       result.Score,
					Grade:       result.Grade,
					Components:  result.Components,
				}
			}
		}()
	}
	for i := range sample {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	scores := make([]StationScore, 0, len(sample))
	for _, r := range results {
		if r != nil {
			scores = append(scores, *r)
		}
	}
	return scores
}

func (s *Service) fetchStations(ctx context.Context, req Request) (*charging.StationSet, error) {
	if s.providers.Stations == nil {
		return nil, fmt.Errorf("no station source configured")
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	set, err := s.providers.Stations.FetchStations(ctx, req.Latitude, req.Longitude, req.RadiusKM, maxResults)
	if err != nil {
		return nil, fmt.Errorf("fetch stations: %w", err)
	}
	return set, nil
}

func (s *Service) fetchRegion(ctx context.Context, req Request) (demographics.Region, error) {
	if s.providers.Regions == nil {
		return demographics.Region{}, fmt.Errorf("no region source configured")
	}
	if req.StateFIPS == "" || req.CountyFIPS == "" {
		return demographics.Region{}, fmt.Errorf("state and county FIPS codes required")
	}
	return s.providers.Regions.FetchRegion(ctx, req.StateFIPS, req.CountyFIPS)
}

func (s *Service) fetchCountry(ctx context.Context, req Request) (demographics.Country, error) {
	if s.providers.Countries == nil {
		return demographics.Country{}, fmt.Errorf("no country source configured")
	}
	if req.CountryCode == "" {
		return demographics.Country{}, fmt.Errorf("country code required")
	}
	return s.providers.Countries.FetchCountry(ctx, req.CountryCode)
}

// finishPartial completes a degraded equity analysis with the
// infrastructure-only sections. The original request is carried through so
// the climate section keeps the requested forecast window.
func (s *Service) finishPartial(ctx context.Context, report *Report, set *charging.StationSet, req Request, start time.Time, cause error) (*Report, error) {
	report.Partial = true
	report.PartialReason = cause.Error()
	if err := s.addInfrastructure(report, set); err != nil {
		return nil, s.fail(report.Kind, start, err)
	}
	s.addClimate(ctx, report, req)

	if err := s.persist(ctx, report, nil, nil, report.Coverage); err != nil {
		return nil, s.fail(report.Kind, start, err)
	}
	s.done(report.Kind, start, "partial")
	return report, nil
}

// addInfrastructure fills the network-survey sections shared by the
// infrastructure analysis and partial equity fallbacks.
func (s *Service) addInfrastructure(report *Report, set *charging.StationSet) error {
	stats := set.Stats()
	report.Stats = &stats

	levels := set.Levels()
	report.Levels = &levels

	coverage, err := scoring.AnalyzeCoverage(set)
	if err != nil {
		return fmt.Errorf("analyze coverage: %w", err)
	}
	report.Coverage = &coverage

	market := scoring.AnalyzeOperators(set)
	report.Market = &market

	report.Gaps = scoring.IdentifyGaps(set)
	report.GapSummary = scoring.GapSummary(report.Gaps)
	return nil
}

// addClimate attaches current and forecast range impact. Weather is
// supplementary; failures are logged and the section omitted.
func (s *Service) addClimate(ctx context.Context, report *Report, req Request) {
	if s.providers.Weather == nil {
		return
	}
	days := req.ForecastDays
	if days <= 0 {
		days = defaultForecastDays
	}
	current, daily, err := s.providers.Weather.Temperatures(ctx, report.Location.Latitude, report.Location.Longitude, days)
	if err != nil {
		log.Printf("weather fetch failed, omitting climate section: %v", err)
		return
	}
	conditions, forecast := climate.Analyze(current, daily)
	report.Climate = &conditions
	report.Forecast = &forecast
}

// addNarrative attaches LLM-generated narrative text when requested and a
// generator is configured. Never fails the analysis.
func (s *Service) addNarrative(ctx context.Context, report *Report, req Request) {
	if !req.WithNarrative || s.providers.Narrative == nil {
		return
	}
	narrative, err := s.providers.Narrative.Generate(ctx, narrativeSystemPrompt, narrativePrompt(report))
	if err != nil {
		log.Printf("narrative generation failed, omitting: %v", err)
		return
	}
	report.Narrative = narrative
}

// persist assigns the report ID, writes the blob, and inserts the summary
// row. Either sink may be absent (CLI runs without a database).
func (s *Service) persist(ctx context.Context, report *Report, score *float64, grade *string, components any) error {
	report.ID = uuid.NewString()
	report.GeneratedAt = time.Now().UTC()

	reportRef := ""
	if s.storage != nil {
		data, err := json.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		if err := s.storage.PutReport(ctx, report.ID, data); err != nil {
			return fmt.Errorf("put report blob: %w", err)
		}
		reportRef = "reports/" + report.ID + ".json"
		if s.metrics != nil {
			s.metrics.ReportsStored.Inc()
		}
	}

	if s.rows == nil {
		return nil
	}

	var componentsJSON json.RawMessage
	if components != nil {
		data, err := json.Marshal(components)
		if err != nil {
			return fmt.Errorf("marshal components: %w", err)
		}
		componentsJSON = data
	}

	stationCount := 0
	if report.Stats != nil {
		stationCount = report.Stats.StationCount
	}

	row := &store.Analysis{
		ID:           report.ID,
		Kind:         report.Kind,
		LocationName: report.Location.Name,
		Latitude:     report.Location.Latitude,
		Longitude:    report.Location.Longitude,
		RadiusKM:     report.Location.RadiusKM,
		StationCount: stationCount,
		Score:        score,
		Grade:        grade,
		Components:   componentsJSON,
		ReportRef:    reportRef,
		Partial:      report.Partial,
	}
	if err := s.rows.CreateAnalysis(ctx, row); err != nil {
		return fmt.Errorf("insert analysis row: %w", err)
	}
	return nil
}

func (s *Service) newReport(kind string, req Request) *Report {
	return &Report{
		Kind: kind,
		Location: Location{
			Name:      req.LocationName,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			RadiusKM:  req.RadiusKM,
		},
	}
}

func (s *Service) done(kind string, start time.Time, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.AnalysesRun.WithLabelValues(kind, outcome).Inc()
	s.metrics.AnalysisDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (s *Service) fail(kind string, start time.Time, err error) error {
	s.done(kind, start, "error")
	return err
}
