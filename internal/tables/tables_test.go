package tables

import (
	"os"
	"path/filepath"
	"testing"

	"calckit/internal/calcerr"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()

	for _, id := range []string{
		WalesLTTMain2024,
		ScotlandLBTTMain2024,
		ScotlandLBTTFirstTime2024,
		UKIncome2024,
		USFederalSingle2024,
		FranceIncome2024,
		SpainIncome2024,
		IrelandIncome2024,
	} {
		if _, err := c.Get(id); err != nil {
			t.Errorf("Get(%q) failed: %v", id, err)
		}
	}

	if _, err := c.Get("no-such-table"); err == nil {
		t.Error("Expected error for unknown table, got nil")
	}

	ids := c.IDs()
	if len(ids) != 8 {
		t.Errorf("Incorrect table count, got %d, want 8", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Errorf("IDs not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
}

func TestWalesLTTWorkedExample(t *testing.T) {
	c := Builtin()
	table, err := c.Get(WalesLTTMain2024)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	total, err := table.Total(250000)
	if err != nil {
		t.Fatalf("Total failed: %v", err)
	}
	if total != 1500 {
		t.Errorf("Incorrect LTT, got %.2f, want 1500", total)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	content := `tables:
  wales-ltt-main-2024:
    bands:
      - upper: 250000
        rate: 0
      - upper: .inf
        rate: 0.05
  custom-flat-2025:
    bands:
      - upper: .inf
        rate: 0.21
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c := Builtin()
	if err := c.LoadOverrides(path); err != nil {
		t.Fatalf("LoadOverrides failed: %v", err)
	}

	// Override replaced the built-in rates.
	table, err := c.Get(WalesLTTMain2024)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	total, err := table.Total(300000)
	if err != nil {
		t.Fatalf("Total failed: %v", err)
	}
	if total != 2500 {
		t.Errorf("Override not applied, got %.2f, want 2500", total)
	}

	// New table added.
	flat, err := c.Get("custom-flat-2025")
	if err != nil {
		t.Fatalf("Get custom table failed: %v", err)
	}
	total, err = flat.Total(1000)
	if err != nil {
		t.Fatalf("Total failed: %v", err)
	}
	if total != 210 {
		t.Errorf("Incorrect custom table total, got %.2f, want 210", total)
	}
}

func TestLoadOverridesRejectsMalformedTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	content := `tables:
  broken:
    bands:
      - upper: 1000
        rate: 0.1
      - upper: 500
        rate: 0.2
      - upper: .inf
        rate: 0.3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c := Builtin()
	err := c.LoadOverrides(path)
	if !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for malformed table, got %v", err)
	}

	// The catalog must be untouched after a rejected file.
	if _, err := c.Get("broken"); err == nil {
		t.Error("Malformed table must not be added to the catalog")
	}
}

func TestLoadOverridesMissingFile(t *testing.T) {
	c := Builtin()
	if err := c.LoadOverrides("/nonexistent/tables.yaml"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestInflationSeriesCoverage(t *testing.T) {
	for year := InflationMinYear; year <= InflationMaxYear; year++ {
		if _, ok := USInflationByYear[year]; !ok {
			t.Errorf("Missing inflation data for %d", year)
		}
	}
	if len(USInflationByYear) != InflationMaxYear-InflationMinYear+1 {
		t.Errorf("Unexpected inflation series length: %d", len(USInflationByYear))
	}
}
