// Package prefs holds the shared currency preference and fans out
// changes to subscribers.
package prefs

import (
	"sort"
	"strings"
	"sync"

	"calckit/internal/calcerr"
)

// Currency is an ISO 4217 code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	CHF Currency = "CHF"
	INR Currency = "INR"
)

var supported = map[Currency]bool{
	USD: true,
	EUR: true,
	GBP: true,
	JPY: true,
	CAD: true,
	AUD: true,
	CHF: true,
	INR: true,
}

// ParseCurrency validates a currency code, accepting any casing.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !supported[c] {
		return "", calcerr.Invalidf("currency %q is not supported", s)
	}
	return c, nil
}

// Supported returns the currency codes in a stable order.
func Supported() []Currency {
	codes := make([]Currency, 0, len(supported))
	for c := range supported {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Store is the process-wide currency preference. Subscribers receive
// each change on a buffered channel; a slow subscriber only ever sees
// the latest value.
type Store struct {
	mu          sync.RWMutex
	current     Currency
	subscribers map[int]chan Currency
	nextID      int
}

func NewStore(initial Currency) (*Store, error) {
	if !supported[initial] {
		return nil, calcerr.Invalidf("currency %q is not supported", initial)
	}
	return &Store{
		current:     initial,
		subscribers: make(map[int]chan Currency),
	}, nil
}

func (s *Store) Current() Currency {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set updates the preference and notifies subscribers. Setting the
// current value again is a no-op.
func (s *Store) Set(c Currency) error {
	if !supported[c] {
		return calcerr.Invalidf("currency %q is not supported", c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c == s.current {
		return nil
	}
	s.current = c

	for _, ch := range s.subscribers {
		select {
		case ch <- c:
		default:
			// Replace the pending value so the subscriber sees the latest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
	return nil
}

// Subscribe registers for change notifications. The returned func
// unregisters and closes the channel; it is safe to call twice.
func (s *Store) Subscribe() (<-chan Currency, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Currency, 1)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}
