// Package updater resolves the pinned package set and rewrites the target
// build file.
package updater

import (
	"context"
	"fmt"

	"github.com/repin-dev/repin/internal/core"
	"github.com/repin-dev/repin/internal/format"
	"github.com/repin-dev/repin/internal/subst"
)

// Updater resolves pins against their version sources.
type Updater struct {
	client   *core.Client
	baseURLs map[string]string // ecosystem → base URL override
}

// Option configures an Updater.
type Option func(*Updater)

// WithClient sets the HTTP client used for lookups.
func WithClient(c *core.Client) Option {
	return func(u *Updater) {
		u.client = c
	}
}

// WithBaseURL overrides the API base URL for one ecosystem, for mirrors
// and tests.
func WithBaseURL(ecosystem, baseURL string) Option {
	return func(u *Updater) {
		u.baseURLs[ecosystem] = baseURL
	}
}

// New creates an Updater.
func New(opts ...Option) *Updater {
	u := &Updater{
		baseURLs: make(map[string]string),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.client == nil {
		u.client = core.DefaultClient()
	}
	return u
}

// Resolve fetches and normalizes the target version for every pin,
// sequentially and in pin order. The first failure aborts the whole run:
// no partial map is ever returned.
func (u *Updater) Resolve(ctx context.Context, pins []Pin) (map[string]string, error) {
	versions := make(map[string]string, len(pins))

	for _, pin := range pins {
		target, err := u.resolvePin(ctx, pin)
		if err != nil {
			return nil, fmt.Errorf("pin %s: %w", pin.Prefix, err)
		}
		versions[pin.Prefix] = target
	}
	return versions, nil
}

func (u *Updater) resolvePin(ctx context.Context, pin Pin) (string, error) {
	convert, err := format.ByName(pin.Format)
	if err != nil {
		return "", err
	}

	p, err := core.ParsePURL(pin.Package)
	if err != nil {
		return "", fmt.Errorf("parsing package %q: %w", pin.Package, err)
	}

	// A repository_url qualifier on the pin wins over any ecosystem-wide
	// override.
	baseURL := p.Qualifiers.Map()["repository_url"]
	if baseURL == "" {
		baseURL = u.baseURLs[p.Type]
	}

	src, err := core.New(p.Type, baseURL, u.client)
	if err != nil {
		return "", err
	}

	version, err := src.FetchVersion(ctx, p.FullName())
	if err != nil {
		return "", err
	}

	return convert(version.Number)
}

// Update resolves every pin, then rewrites file in place. The file is only
// replaced after all lookups succeed and the complete rewrite is on disk;
// any earlier failure leaves it untouched.
func (u *Updater) Update(ctx context.Context, pins []Pin, file string) (map[string]string, error) {
	versions, err := u.Resolve(ctx, pins)
	if err != nil {
		return nil, err
	}
	if err := subst.RewriteFile(file, subst.NewRewriter(versions)); err != nil {
		return nil, err
	}
	return versions, nil
}
