package client

import (
	"net/url"
	"sync"
	"time"

	"github.com/cenk/backoff"
	circuit "github.com/rubyist/circuitbreaker"
)

// breakerSet holds one circuit breaker per source host, so a run pinning
// many packages fails fast once a host is down instead of timing out on
// every remaining lookup.
type breakerSet struct {
	breakers map[string]*circuit.Breaker
	mu       sync.RWMutex
}

func newBreakerSet() *breakerSet {
	return &breakerSet{
		breakers: make(map[string]*circuit.Breaker),
	}
}

// get returns or creates the circuit breaker for the given host.
func (s *breakerSet) get(host string) *circuit.Breaker {
	s.mu.RLock()
	breaker, exists := s.breakers[host]
	s.mu.RUnlock()

	if exists {
		return breaker
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Double-check after acquiring write lock
	if breaker, exists := s.breakers[host]; exists {
		return breaker
	}

	// Trips after 5 consecutive failures, resets on exponential backoff
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = 30 * time.Second
	expBackoff.MaxInterval = 5 * time.Minute
	expBackoff.Multiplier = 2.0
	expBackoff.Reset()

	opts := &circuit.Options{
		BackOff:    expBackoff,
		ShouldTrip: circuit.ThresholdTripFunc(5),
	}
	breaker = circuit.NewBreakerWithOptions(opts)

	s.breakers[host] = breaker
	return breaker
}

// states returns the current state of every breaker, keyed by host.
func (s *breakerSet) states() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	states := make(map[string]string)
	for host, breaker := range s.breakers {
		if breaker.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

// BreakerStates exposes circuit breaker states for diagnostics.
func (c *Client) BreakerStates() map[string]string {
	return c.breakers.states()
}

// hostOf extracts a host identifier from a URL for breaker grouping.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		// Fallback to simple truncation
		if len(rawURL) > 50 {
			return rawURL[:50]
		}
		return rawURL
	}
	return parsed.Host
}
