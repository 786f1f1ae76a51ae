package charging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveStationSet writes a station set to disk as JSON.
func SaveStationSet(path string, set *StationSet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for station set: %w", err)
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling station set: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing station set: %w", err)
	}

	return nil
}

// LoadStationSet reads a station set from disk.
func LoadStationSet(path string) (*StationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading station set: %w", err)
	}

	var set StationSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("unmarshaling station set: %w", err)
	}

	return &set, nil
}
