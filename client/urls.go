package client

import "fmt"

// URLBuilder constructs informational URLs for a version source.
type URLBuilder interface {
	Registry(name, version string) string
	Release(name, version string) string
	PURL(name, version string) string
}

// BaseURLs provides a default URLBuilder implementation.
type BaseURLs struct {
	RegistryFn func(name, version string) string
	ReleaseFn  func(name, version string) string
	PURLFn     func(name, version string) string
}

func (b *BaseURLs) Registry(name, version string) string {
	if b.RegistryFn != nil {
		return b.RegistryFn(name, version)
	}
	return ""
}

func (b *BaseURLs) Release(name, version string) string {
	if b.ReleaseFn != nil {
		return b.ReleaseFn(name, version)
	}
	return ""
}

func (b *BaseURLs) PURL(name, version string) string {
	if b.PURLFn != nil {
		return b.PURLFn(name, version)
	}
	return fmt.Sprintf("pkg:%s/%s", "generic", name)
}

// BuildURLs returns a map of all non-empty URLs for a package.
// Keys are "registry", "release", and "purl".
func BuildURLs(urls URLBuilder, name, version string) map[string]string {
	result := make(map[string]string)
	if v := urls.Registry(name, version); v != "" {
		result["registry"] = v
	}
	if v := urls.Release(name, version); v != "" {
		result["release"] = v
	}
	if v := urls.PURL(name, version); v != "" {
		result["purl"] = v
	}
	return result
}
