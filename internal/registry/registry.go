// Package registry is the slug-keyed calculator catalog. Calculators
// register a descriptor plus a JSON-in/JSON-out runner; the HTTP API and
// the CLI dispatch through it without knowing any concrete input type.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"calckit/internal/calcerr"
)

// ErrUnknownCalculator is returned by Run for a slug nobody registered.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Descriptor identifies a calculator in the catalog.
type Descriptor struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Runner executes a calculator on raw JSON input. A nil or empty input
// runs the calculator on its defaults.
type Runner func(input json.RawMessage) (any, error)

type entry struct {
	desc Descriptor
	run  Runner
}

type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a calculator to the catalog. Slugs are unique.
func (r *Registry) Register(desc Descriptor, run Runner) error {
	if desc.Slug == "" {
		return fmt.Errorf("calculator slug is empty")
	}
	if run == nil {
		return fmt.Errorf("calculator %q has no runner", desc.Slug)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[desc.Slug]; exists {
		return fmt.Errorf("calculator %q already registered", desc.Slug)
	}
	r.entries[desc.Slug] = entry{desc: desc, run: run}
	return nil
}

// Lookup returns the descriptor for slug.
func (r *Registry) Lookup(slug string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[slug]
	return e.desc, ok
}

// List returns all descriptors sorted by slug.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Run executes the calculator registered under slug.
func (r *Registry) Run(slug string, input json.RawMessage) (any, error) {
	r.mu.RLock()
	e, ok := r.entries[slug]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalculator, slug)
	}
	return e.run(input)
}

// Adapt wraps a typed calculator into a Runner. The input is decoded
// over the calculator's defaults, so absent fields keep their default
// values; unknown fields are rejected as invalid input.
func Adapt[In, Out any](defaults func() In, calculate func(In) (Out, error)) Runner {
	return func(input json.RawMessage) (any, error) {
		in := defaults()
		if len(input) > 0 {
			dec := json.NewDecoder(bytes.NewReader(input))
			dec.DisallowUnknownFields()
			if err := dec.Decode(&in); err != nil {
				return nil, calcerr.Invalidf("decode input: %v", err)
			}
		}
		return calculate(in)
	}
}
