package tables

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"calckit/internal/bracket"
)

// Override file layout:
//
//	tables:
//	  wales-ltt-main-2024:
//	    bands:
//	      - upper: 225000
//	        rate: 0
//	      - upper: .inf
//	        rate: 0.12
type overrideFile struct {
	Tables map[string]overrideTable `yaml:"tables"`
}

type overrideTable struct {
	Bands []overrideBand `yaml:"bands"`
}

type overrideBand struct {
	Upper float64 `yaml:"upper"`
	Rate  float64 `yaml:"rate"`
}

// LoadOverrides merges the tables from a YAML file over the catalog,
// replacing existing IDs and adding new ones. Every table goes through
// the same construction-time validation as the built-ins; a malformed
// table rejects the whole file.
func (c *Catalog) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read overrides: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}
	if len(f.Tables) == 0 {
		return fmt.Errorf("overrides file %s defines no tables", path)
	}

	parsed := make(map[string]*bracket.Table, len(f.Tables))
	for id, ot := range f.Tables {
		bands := make([]bracket.Band, len(ot.Bands))
		for i, b := range ot.Bands {
			bands[i] = bracket.Band{UpperBound: b.Upper, Rate: b.Rate}
		}
		t, err := bracket.NewTable(bands)
		if err != nil {
			return fmt.Errorf("table %q: %w", id, err)
		}
		parsed[id] = t
	}

	// Apply only after the whole file validated.
	for id, t := range parsed {
		c.tables[id] = t
	}
	return nil
}
