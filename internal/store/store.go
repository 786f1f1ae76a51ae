// Package store persists analysis results to Postgres. Full report blobs
// live in object storage; rows here carry the summary fields and a storage
// reference.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Analysis kinds.
const (
	KindInfrastructure = "infrastructure"
	KindRegionalEquity = "regional_equity"
	KindGlobalEquity   = "global_equity"
	KindAccessibility  = "accessibility"
)

// ErrNotFound is returned when no analysis row matches the requested ID.
var ErrNotFound = errors.New("analysis not found")

// Analysis is one persisted analysis run.
type Analysis struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	LocationName string          `json:"location_name"`
	Latitude     float64         `json:"latitude"`
	Longitude    float64         `json:"longitude"`
	RadiusKM     float64         `json:"radius_km"`
	StationCount int             `json:"station_count"`
	Score        *float64        `json:"score,omitempty"`
	Grade        *string         `json:"grade,omitempty"`
	Components   json.RawMessage `json:"components,omitempty"`
	ReportRef    string          `json:"report_ref"`
	Partial      bool            `json:"partial"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Service provides analysis row persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// NewService creates a new store Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateAnalysis inserts an analysis row. The caller supplies the ID; the
// database assigns CreatedAt, which is written back into a.
func (s *Service) CreateAnalysis(ctx context.Context, a *Analysis) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO analyses (id, kind, location_name, latitude, longitude, radius_km,
		                       station_count, score, grade, components, report_ref, partial)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		a.ID, a.Kind, a.LocationName, a.Latitude, a.Longitude, a.RadiusKM,
		a.StationCount, a.Score, a.Grade, nullableJSON(a.Components), a.ReportRef, a.Partial,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("create analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves one analysis row by ID.
func (s *Service) GetAnalysis(ctx context.Context, id string) (*Analysis, error) {
	a := &Analysis{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, kind, location_name, latitude, longitude, radius_km,
		        station_count, score, grade, components, report_ref, partial, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(
		&a.ID, &a.Kind, &a.LocationName, &a.Latitude, &a.Longitude, &a.RadiusKM,
		&a.StationCount, &a.Score, &a.Grade, &a.Components, &a.ReportRef, &a.Partial, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", id, err)
	}
	return a, nil
}

// ListAnalyses returns recent analysis rows, newest first. An empty kind
// matches all kinds; limit <= 0 applies a default of 50.
func (s *Service) ListAnalyses(ctx context.Context, kind string, limit int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, location_name, latitude, longitude, radius_km,
		        station_count, score, grade, components, report_ref, partial, created_at
		 FROM analyses
		 WHERE ($1 = '' OR kind = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		kind, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(
			&a.ID, &a.Kind, &a.LocationName, &a.Latitude, &a.Longitude, &a.RadiusKM,
			&a.StationCount, &a.Score, &a.Grade, &a.Components, &a.ReportRef, &a.Partial, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}

// ValidKind reports whether kind names a known analysis kind.
func ValidKind(kind string) bool {
	switch kind {
	case KindInfrastructure, KindRegionalEquity, KindGlobalEquity, KindAccessibility:
		return true
	}
	return false
}

// nullableJSON maps empty JSON to SQL NULL so JSONB columns never receive
// a zero-length value.
func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
