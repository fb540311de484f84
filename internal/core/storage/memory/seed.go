package memory

import (
	"fmt"
	"os"
	"strings"

	v1 "github.com/tempguess/tempguess/internal/api/v1"
	"gopkg.in/yaml.v3"
)

// Seed is the YAML document loaded into a Store at startup. UserID owns the
// seeded submissions and defaults to 1.
//
//	cities:
//	  - {id: 1, name: New York, timezone: America/New_York}
//	actuals:
//	  - {city_id: 1, date: 2026-10-17, hour: 15, temp: 66.2}
type Seed struct {
	UserID      int64           `yaml:"user_id"`
	Cities      []v1.City       `yaml:"cities"`
	Actuals     []v1.Actual     `yaml:"actuals"`
	Submissions []v1.Submission `yaml:"submissions"`
}

// LoadSeed reads and validates a seed file.
func LoadSeed(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes a seed document. Duplicate city ids and references to
// unknown cities are rejected; zone names are checked later, per city.
func ParseSeed(raw []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("failed to parse seed: %w", err)
	}

	if seed.UserID == 0 {
		seed.UserID = 1
	}

	known := make(map[int64]bool, len(seed.Cities))
	for i, c := range seed.Cities {
		if c.ID <= 0 {
			return Seed{}, fmt.Errorf("cities[%d]: id must be > 0", i)
		}
		if strings.TrimSpace(c.Name) == "" {
			return Seed{}, fmt.Errorf("cities[%d]: name is required", i)
		}
		if known[c.ID] {
			return Seed{}, fmt.Errorf("cities[%d]: duplicate id %d", i, c.ID)
		}
		known[c.ID] = true
	}

	for i, a := range seed.Actuals {
		if !known[a.CityID] {
			return Seed{}, fmt.Errorf("actuals[%d]: unknown city_id %d", i, a.CityID)
		}
		if a.Date.IsZero() {
			return Seed{}, fmt.Errorf("actuals[%d]: date is required", i)
		}
		if a.Hour < 0 || a.Hour > 23 {
			return Seed{}, fmt.Errorf("actuals[%d]: hour %d out of range", i, a.Hour)
		}
	}

	for i, s := range seed.Submissions {
		if !known[s.CityID] {
			return Seed{}, fmt.Errorf("submissions[%d]: unknown city_id %d", i, s.CityID)
		}
	}

	return seed, nil
}
