package updater

// Pin ties a build-file variable prefix to the upstream package that feeds
// it and the converter that normalizes the vendor version string.
type Pin struct {
	Prefix  string // variable namespace, e.g. "SSL" for SSL_VER
	Package string // purl identifying the upstream package
	Format  string // converter name from internal/format, "" for passthrough
}

// DefaultPins returns the pin set this tool maintains, in output order.
func DefaultPins() []Pin {
	return []Pin{
		{Prefix: "CURL", Package: "pkg:alpm/curl"},
		{Prefix: "SQLITE", Package: "pkg:alpm/sqlite", Format: "sqlite"},
		{Prefix: "SSL", Package: "pkg:alpm/openssl", Format: "openssl"},
		{Prefix: "ZLIB", Package: "pkg:alpm/zlib"},
		{Prefix: "RUSTUP", Package: "pkg:rustup/stable"},
	}
}
