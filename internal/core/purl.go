package core

import (
	"context"

	packageurl "github.com/package-url/packageurl-go"
)

// PURL wraps packageurl.PackageURL with source-specific helpers.
type PURL struct {
	packageurl.PackageURL
}

// FullName returns the package name in the format expected by the source.
// alpm purls may carry the repository vendor as a namespace
// (pkg:alpm/arch/openssl); the source only needs the package name, so the
// namespace is joined back only for types that require it.
func (p PURL) FullName() string {
	if p.Namespace == "" {
		return p.Name
	}

	switch p.Type {
	case "alpm", "rustup":
		return p.Name
	default:
		return p.Namespace + "/" + p.Name
	}
}

// ParsePURL parses a Package URL string into its components.
// Supports both package PURLs (pkg:alpm/openssl) and version PURLs
// (pkg:alpm/openssl@1.0.2.o).
func ParsePURL(purl string) (*PURL, error) {
	p, err := packageurl.FromString(purl)
	if err != nil {
		return nil, err
	}
	return &PURL{p}, nil
}

// NewFromPURL creates a source client from a PURL and returns the parsed
// components. Returns the source, package name, and version (empty if not
// in the PURL). If the PURL has a repository_url qualifier, it's used as
// the base URL for mirrors and private deployments.
func NewFromPURL(purl string, client *Client) (Source, string, string, error) {
	p, err := ParsePURL(purl)
	if err != nil {
		return nil, "", "", err
	}

	baseURL := p.Qualifiers.Map()["repository_url"]

	src, err := New(p.Type, baseURL, client)
	if err != nil {
		return nil, "", "", err
	}

	return src, p.FullName(), p.Version, nil
}

// FetchVersionFromPURL fetches the current version of a package using a PURL.
func FetchVersionFromPURL(ctx context.Context, purl string, client *Client) (*Version, error) {
	src, name, _, err := NewFromPURL(purl, client)
	if err != nil {
		return nil, err
	}

	return src.FetchVersion(ctx, name)
}
