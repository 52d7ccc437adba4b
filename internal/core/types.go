// Package core provides shared types and the version-source registry.
package core

import "time"

// Version is the current release of a package as reported by its source.
// Only Number participates in pin substitution; the remaining fields are
// surfaced for operator visibility.
type Version struct {
	Number      string
	Release     string // source-specific revision, e.g. alpm pkgrel
	Licenses    []string
	PublishedAt time.Time
}
