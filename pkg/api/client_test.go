package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"calckit/internal/calculators"
	"calckit/internal/prefs"
	"calckit/internal/registry"
	"calckit/internal/server"
	"calckit/internal/state"
	"calckit/internal/tables"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	reg := registry.New()
	if err := calculators.RegisterAll(reg, tables.Builtin()); err != nil {
		t.Fatalf("RegisterAll failed: %v", err)
	}
	prefsStore, err := prefs.NewStore(prefs.USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	srv := server.New(server.Options{
		Registry:        reg,
		States:          state.NewMemory(),
		Prefs:           prefsStore,
		Logger:          zap.NewNop(),
		MaxStateBytes:   64 << 10,
		ShutdownTimeout: time.Second,
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return NewClient(ts.URL, zap.NewNop())
}

func TestClientList(t *testing.T) {
	client := newTestClient(t)

	calcs, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(calcs) != 18 {
		t.Errorf("Incorrect calculator count, got %v, want %v", len(calcs), 18)
	}

	found := false
	for _, c := range calcs {
		if c.Slug == "mortgage-calculator" {
			found = true
			if c.Name != "Mortgage Payment" {
				t.Errorf("Incorrect name, got %v, want %v", c.Name, "Mortgage Payment")
			}
		}
	}
	if !found {
		t.Error("Expected mortgage-calculator in the catalog")
	}
}

func TestClientRun(t *testing.T) {
	client := newTestClient(t)

	result, err := client.Run(context.Background(), "mortgage-calculator",
		json.RawMessage(`{"principal":120000,"annual_rate_pct":0,"term_years":10}`))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var decoded struct {
		MonthlyPayment float64 `json:"monthly_payment"`
	}
	if err := json.Unmarshal(result, &decoded); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.MonthlyPayment != 1000 {
		t.Errorf("Incorrect monthly payment, got %v, want %v", decoded.MonthlyPayment, 1000.0)
	}
}

func TestClientRunUnknownSlug(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Run(context.Background(), "nonsense", nil)
	if err == nil {
		t.Fatal("Expected an error for an unknown slug")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("Incorrect error, got %v, want it to mention 404", err)
	}
}

func TestClientStateRoundTrip(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	stateJSON := json.RawMessage(`{"principal":250000}`)

	_, found, err := client.LoadState(ctx, "mortgage-calculator")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if found {
		t.Fatalf("Incorrect found before save, got %v, want %v", found, false)
	}

	if err := client.SaveState(ctx, "mortgage-calculator", stateJSON); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}

	data, found, err := client.LoadState(ctx, "mortgage-calculator")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if !found {
		t.Fatalf("Incorrect found after save, got %v, want %v", found, true)
	}
	if !bytes.Equal(bytes.TrimSpace(data), stateJSON) {
		t.Errorf("Incorrect state, got %s, want %s", data, stateJSON)
	}

	if err := client.DeleteState(ctx, "mortgage-calculator"); err != nil {
		t.Fatalf("DeleteState failed: %v", err)
	}

	_, found, err = client.LoadState(ctx, "mortgage-calculator")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if found {
		t.Errorf("Incorrect found after delete, got %v, want %v", found, false)
	}
}

func TestClientCurrency(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	currency, err := client.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency failed: %v", err)
	}
	if currency != "USD" {
		t.Errorf("Incorrect currency, got %v, want %v", currency, "USD")
	}

	if err := client.SetCurrency(ctx, "EUR"); err != nil {
		t.Fatalf("SetCurrency failed: %v", err)
	}

	currency, err = client.Currency(ctx)
	if err != nil {
		t.Fatalf("Currency failed: %v", err)
	}
	if currency != "EUR" {
		t.Errorf("Incorrect currency after set, got %v, want %v", currency, "EUR")
	}

	if err := client.SetCurrency(ctx, "DOGE"); err == nil {
		t.Error("Expected an error for an unsupported currency")
	}
}
