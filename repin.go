// Package repin updates version-pinning variables in build files from
// package-repository APIs.
//
// It fetches current version strings for a set of pinned upstream
// libraries, normalizes them into the token formats the build file
// expects, and rewrites PREFIX_VER= assignments in place, atomically.
//
// Basic usage:
//
//	import (
//		"context"
//		"github.com/repin-dev/repin"
//		_ "github.com/repin-dev/repin/all"
//	)
//
//	u := repin.NewUpdater()
//	versions, err := u.Update(context.Background(), repin.DefaultPins(), "Dockerfile")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for prefix, version := range versions {
//		fmt.Printf("%s_VER=%q\n", prefix, version)
//	}
//
// Sources register themselves on import; the all package pulls in every
// supported ecosystem. Custom sources can be added via Register.
package repin

import (
	"context"

	"github.com/git-pkgs/purl"

	"github.com/repin-dev/repin/client"
	"github.com/repin-dev/repin/internal/core"
	"github.com/repin-dev/repin/internal/format"
	"github.com/repin-dev/repin/internal/subst"
	"github.com/repin-dev/repin/internal/updater"
)

// Re-export types from internal/core
type (
	// Source is the interface implemented by all version-source clients.
	Source = core.Source

	// Version is the current release of a package as reported by its source.
	Version = core.Version

	// Factory creates a source instance for a given base URL.
	Factory = core.Factory
)

// Re-export types from client
type (
	// Client is an HTTP client with retry logic for version-source APIs.
	Client = client.Client

	// URLBuilder constructs informational URLs for a version source.
	URLBuilder = client.URLBuilder

	// Option configures a Client.
	Option = client.Option
)

// Re-export types from internal/updater
type (
	// Pin ties a build-file variable prefix to an upstream package.
	Pin = updater.Pin

	// Updater resolves pins against their version sources.
	Updater = updater.Updater

	// UpdaterOption configures an Updater.
	UpdaterOption = updater.Option
)

// Rewriter replaces PREFIX_VER=token assignments with pinned versions.
type Rewriter = subst.Rewriter

// MalformedVersionError indicates a vendor version string that does not
// match the structural pattern its converter expects.
type MalformedVersionError = format.MalformedVersionError

// Re-export errors
var (
	ErrNotFound = core.ErrNotFound
)

// Error types
type (
	HTTPError      = client.HTTPError
	NotFoundError  = core.NotFoundError
	RateLimitError = client.RateLimitError
)

// New creates a new source for the given ecosystem.
// If baseURL is empty, the default API base URL is used.
// If c is nil, DefaultClient() is used.
//
// Supported ecosystems: "alpm", "rustup"
func New(ecosystem string, baseURL string, c *Client) (Source, error) {
	return core.New(ecosystem, baseURL, c)
}

// Register adds a source factory for an ecosystem.
func Register(ecosystem string, defaultURL string, factory Factory) {
	core.Register(ecosystem, defaultURL, factory)
}

// DefaultClient returns a client with sensible defaults:
// - 30s timeout
// - 5 retries with exponential backoff
// - Retry on 429 and 5xx responses
func DefaultClient() *Client {
	return client.DefaultClient()
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	return client.NewClient(opts...)
}

// WithTimeout sets the HTTP client timeout.
var WithTimeout = client.WithTimeout

// WithMaxRetries sets the maximum number of retries.
var WithMaxRetries = client.WithMaxRetries

// SupportedEcosystems returns all registered ecosystem types.
// Note: sources must be imported to be registered.
func SupportedEcosystems() []string {
	return core.SupportedEcosystems()
}

// DefaultURL returns the default API base URL for an ecosystem.
func DefaultURL(ecosystem string) string {
	return core.DefaultURL(ecosystem)
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "release", and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	return client.BuildURLs(urls, name, version)
}

// PURL represents a parsed Package URL.
type PURL = purl.PURL

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:alpm/openssl) and version PURLs
// (pkg:alpm/openssl@1.0.2.o).
func ParsePURL(purlStr string) (*PURL, error) {
	return purl.Parse(purlStr)
}

// FetchVersionFromPURL fetches the current version of a package using a PURL.
func FetchVersionFromPURL(ctx context.Context, purlStr string, c *Client) (*Version, error) {
	return core.FetchVersionFromPURL(ctx, purlStr, c)
}

// ConvertOpenSSLVersion converts a packaged OpenSSL version to upstream's
// format: "1.0.2.o" becomes "1.0.2o". Input without a trailing ".letter"
// suffix is returned unchanged.
func ConvertOpenSSLVersion(v string) string {
	return format.OpenSSL(v)
}

// ConvertSQLiteVersion converts a packaged SQLite version to the numeric
// code upstream uses: "3.24.0" becomes "3240000". It fails with
// *MalformedVersionError when v has fewer than three leading dot-separated
// integer components.
func ConvertSQLiteVersion(v string) (string, error) {
	return format.SQLite(v)
}

// NewRewriter builds a Rewriter from a prefix → version map.
func NewRewriter(pins map[string]string) *Rewriter {
	return subst.NewRewriter(pins)
}

// RewriteFile rewrites the pin assignments in path through rw, atomically.
func RewriteFile(path string, rw *Rewriter) error {
	return subst.RewriteFile(path, rw)
}

// NewUpdater creates an Updater.
func NewUpdater(opts ...UpdaterOption) *Updater {
	return updater.New(opts...)
}

// WithClient sets the HTTP client used for lookups.
var WithClient = updater.WithClient

// WithBaseURL overrides the API base URL for one ecosystem.
var WithBaseURL = updater.WithBaseURL

// DefaultPins returns the pin set this tool maintains, in output order.
func DefaultPins() []Pin {
	return updater.DefaultPins()
}
