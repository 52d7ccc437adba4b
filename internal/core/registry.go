package core

import (
	"context"
	"fmt"
	"sync"
)

// Source is the interface implemented by all version-source clients.
type Source interface {
	// Ecosystem returns the PURL type for this source (e.g., "alpm", "rustup").
	Ecosystem() string

	// FetchVersion retrieves the current version of a package.
	FetchVersion(ctx context.Context, name string) (*Version, error)

	// URLs returns the URL builder for this source.
	URLs() URLBuilder
}

// Factory creates a source instance for a given base URL.
type Factory func(baseURL string, client *Client) Source

// registration is one ecosystem's entry in the source registry.
type registration struct {
	factory    Factory
	defaultURL string
}

var (
	registry = make(map[string]registration)
	mu       sync.RWMutex
)

// Register makes an ecosystem available to New. ecosystem is the PURL type
// (e.g., "alpm", "rustup"); defaultURL is used when New gets an empty base
// URL. Source packages call this from init.
func Register(ecosystem string, defaultURL string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	registry[ecosystem] = registration{factory: factory, defaultURL: defaultURL}
}

// New instantiates the source registered for ecosystem. An empty baseURL
// selects the ecosystem's default API endpoint; a nil client gets
// DefaultClient().
func New(ecosystem string, baseURL string, client *Client) (Source, error) {
	mu.RLock()
	reg, ok := registry[ecosystem]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown ecosystem: %s", ecosystem)
	}

	if baseURL == "" {
		baseURL = reg.defaultURL
	}
	if client == nil {
		client = DefaultClient()
	}

	return reg.factory(baseURL, client), nil
}

// SupportedEcosystems returns all registered ecosystem types.
func SupportedEcosystems() []string {
	mu.RLock()
	defer mu.RUnlock()

	ecosystems := make([]string, 0, len(registry))
	for eco := range registry {
		ecosystems = append(ecosystems, eco)
	}
	return ecosystems
}

// DefaultURL returns the default API base URL for an ecosystem, or the
// empty string if the ecosystem is not registered.
func DefaultURL(ecosystem string) string {
	mu.RLock()
	defer mu.RUnlock()
	return registry[ecosystem].defaultURL
}
