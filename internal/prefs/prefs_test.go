package prefs

import (
	"testing"

	"calckit/internal/calcerr"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want Currency
	}{
		{"USD", USD},
		{"usd", USD},
		{" eur ", EUR},
		{"Gbp", GBP},
	}
	for _, tt := range tests {
		got, err := ParseCurrency(tt.in)
		if err != nil {
			t.Fatalf("ParseCurrency(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Incorrect currency for %q, got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCurrency_InvalidInput(t *testing.T) {
	if _, err := ParseCurrency("DOGE"); !calcerr.IsInvalid(err) {
		t.Errorf("Incorrect error for unsupported code, got %v, want invalid input", err)
	}
}

func TestNewStore_InvalidInput(t *testing.T) {
	if _, err := NewStore("XXX"); !calcerr.IsInvalid(err) {
		t.Errorf("Incorrect error for unsupported initial, got %v, want invalid input", err)
	}
}

func TestStoreSet(t *testing.T) {
	store, err := NewStore(USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if got := store.Current(); got != USD {
		t.Errorf("Incorrect initial currency, got %v, want %v", got, USD)
	}

	if err := store.Set(EUR); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := store.Current(); got != EUR {
		t.Errorf("Incorrect currency after set, got %v, want %v", got, EUR)
	}

	if err := store.Set("XYZ"); !calcerr.IsInvalid(err) {
		t.Errorf("Incorrect error for unsupported code, got %v, want invalid input", err)
	}
	if got := store.Current(); got != EUR {
		t.Errorf("Incorrect currency after rejected set, got %v, want %v", got, EUR)
	}
}

func TestStoreSubscribe(t *testing.T) {
	store, err := NewStore(USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ch, cancel := store.Subscribe()
	defer cancel()

	if err := store.Set(GBP); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	select {
	case got := <-ch:
		if got != GBP {
			t.Errorf("Incorrect notification, got %v, want %v", got, GBP)
		}
	default:
		t.Fatal("Expected a notification after Set")
	}
}

func TestStoreSubscribeLatestWins(t *testing.T) {
	store, err := NewStore(USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ch, cancel := store.Subscribe()
	defer cancel()

	// The subscriber is not draining, so only the newest value survives.
	if err := store.Set(EUR); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(GBP); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	select {
	case got := <-ch:
		if got != GBP {
			t.Errorf("Incorrect notification, got %v, want %v", got, GBP)
		}
	default:
		t.Fatal("Expected a notification after Set")
	}
	select {
	case got := <-ch:
		t.Errorf("Unexpected second notification %v", got)
	default:
	}
}

func TestStoreSetSameValueNoNotify(t *testing.T) {
	store, err := NewStore(USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ch, cancel := store.Subscribe()
	defer cancel()

	if err := store.Set(USD); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	select {
	case got := <-ch:
		t.Errorf("Unexpected notification %v for unchanged value", got)
	default:
	}
}

func TestStoreUnsubscribe(t *testing.T) {
	store, err := NewStore(USD)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	ch, cancel := store.Subscribe()
	cancel()
	cancel() // second call is a no-op

	if err := store.Set(EUR); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, open := <-ch; open {
		t.Error("Expected a closed channel after unsubscribe")
	}
}

func TestSupported(t *testing.T) {
	codes := Supported()
	if len(codes) != len(supported) {
		t.Fatalf("Incorrect supported count, got %v, want %v", len(codes), len(supported))
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("Supported codes not sorted: %v before %v", codes[i-1], codes[i])
		}
	}
}
