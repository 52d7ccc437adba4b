// Package rustup provides a version source backed by rust-lang's static
// release metadata. The package "name" selects the release channel:
// "stable" resolves release-stable.toml.
package rustup

import (
	"context"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/repin-dev/repin/internal/core"
)

const (
	DefaultURL = "https://static.rust-lang.org"
	ecosystem  = "rustup"
)

func init() {
	core.Register(ecosystem, DefaultURL, func(baseURL string, client *core.Client) core.Source {
		return New(baseURL, client)
	})
}

type Source struct {
	baseURL string
	client  *core.Client
	urls    *URLs
}

func New(baseURL string, client *core.Client) *Source {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	s := &Source{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
	}
	s.urls = &URLs{baseURL: s.baseURL}
	return s
}

func (s *Source) Ecosystem() string {
	return ecosystem
}

func (s *Source) URLs() core.URLBuilder {
	return s.urls
}

// releaseManifest is the subset of the release document this source reads.
type releaseManifest struct {
	SchemaVersion string `toml:"schema-version"`
	Version       string `toml:"version"`
}

// FetchVersion retrieves the current rustup version for a release channel.
// An empty name means the stable channel.
func (s *Source) FetchVersion(ctx context.Context, name string) (*core.Version, error) {
	channel := name
	if channel == "" {
		channel = "stable"
	}

	manifestURL := fmt.Sprintf("%s/rustup/release-%s.toml", s.baseURL, channel)

	body, err := s.client.GetBody(ctx, manifestURL)
	if err != nil {
		if httpErr, ok := err.(*core.HTTPError); ok && httpErr.IsNotFound() {
			return nil, &core.NotFoundError{Ecosystem: ecosystem, Name: channel}
		}
		return nil, err
	}

	var manifest releaseManifest
	if err := toml.Unmarshal(body, &manifest); err != nil {
		return nil, fmt.Errorf("rustup: parsing release manifest for %s: %w", channel, err)
	}

	if manifest.Version == "" {
		return nil, fmt.Errorf("rustup: release manifest for %s has no version field", channel)
	}

	return &core.Version{Number: manifest.Version}, nil
}

type URLs struct {
	baseURL string
}

func (u *URLs) Registry(name, version string) string {
	channel := name
	if channel == "" {
		channel = "stable"
	}
	return fmt.Sprintf("%s/rustup/release-%s.toml", u.baseURL, channel)
}

func (u *URLs) Release(name, version string) string {
	return "https://github.com/rust-lang/rustup/releases"
}

func (u *URLs) PURL(name, version string) string {
	channel := name
	if channel == "" {
		channel = "stable"
	}
	purl := fmt.Sprintf("pkg:rustup/%s", channel)
	if version != "" {
		purl += "@" + version
	}
	return purl
}
