package registry

import (
	"encoding/json"
	"errors"
	"testing"

	"calckit/internal/calcerr"
)

type doubleInput struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

type doubleResult struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

func defaultDoubleInput() doubleInput {
	return doubleInput{Value: 21, Label: "default"}
}

func calculateDouble(in doubleInput) (doubleResult, error) {
	return doubleResult{Value: in.Value * 2, Label: in.Label}, nil
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	err := r.Register(
		Descriptor{Slug: "double", Name: "Doubler", Category: "test"},
		Adapt(defaultDoubleInput, calculateDouble),
	)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return r
}

func TestRegisterDuplicate(t *testing.T) {
	r := testRegistry(t)
	err := r.Register(Descriptor{Slug: "double"}, Adapt(defaultDoubleInput, calculateDouble))
	if err == nil {
		t.Error("Expected error for duplicate slug, got nil")
	}
}

func TestRegisterEmptySlug(t *testing.T) {
	r := New()
	if err := r.Register(Descriptor{}, Adapt(defaultDoubleInput, calculateDouble)); err == nil {
		t.Error("Expected error for empty slug, got nil")
	}
}

func TestRunDefaults(t *testing.T) {
	r := testRegistry(t)

	out, err := r.Run("double", nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	res := out.(doubleResult)
	if res.Value != 42 || res.Label != "default" {
		t.Errorf("Defaults not applied, got %+v", res)
	}
}

func TestRunMergesOverDefaults(t *testing.T) {
	r := testRegistry(t)

	// Only value is overridden; label keeps its default.
	out, err := r.Run("double", json.RawMessage(`{"value": 5}`))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	res := out.(doubleResult)
	if res.Value != 10 {
		t.Errorf("Incorrect value, got %v, want 10", res.Value)
	}
	if res.Label != "default" {
		t.Errorf("Label default lost, got %q", res.Label)
	}
}

func TestRunRejectsUnknownFields(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Run("double", json.RawMessage(`{"value": 5, "bogus": true}`))
	if !calcerr.IsInvalid(err) {
		t.Errorf("Expected invalid input error for unknown field, got %v", err)
	}
}

func TestRunUnknownSlug(t *testing.T) {
	r := testRegistry(t)

	_, err := r.Run("missing", nil)
	if !errors.Is(err, ErrUnknownCalculator) {
		t.Errorf("Expected ErrUnknownCalculator, got %v", err)
	}
}

func TestListSorted(t *testing.T) {
	r := testRegistry(t)
	for _, slug := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(Descriptor{Slug: slug}, Adapt(defaultDoubleInput, calculateDouble)); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}

	list := r.List()
	if len(list) != 4 {
		t.Fatalf("Incorrect list length, got %d, want 4", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Slug >= list[i].Slug {
			t.Errorf("List not sorted: %q before %q", list[i-1].Slug, list[i].Slug)
		}
	}

	if _, ok := r.Lookup("alpha"); !ok {
		t.Error("Lookup failed for registered slug")
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Error("Lookup succeeded for unregistered slug")
	}
}
