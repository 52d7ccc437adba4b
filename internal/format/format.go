// Package format normalizes vendor version strings into the token formats
// expected by build-file pins.
package format

import (
	"fmt"
	"regexp"
	"strconv"
)

// MalformedVersionError indicates a vendor version string that does not
// match the structural pattern its converter expects.
type MalformedVersionError struct {
	Input string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed version string %q", e.Input)
}

var (
	opensslRe = regexp.MustCompile(`(.+)\.([a-z])`)
	sqliteRe  = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)
)

// OpenSSL drops the separator before a trailing patch letter, converting
// the packaged form to upstream's: "1.0.2.o" becomes "1.0.2o". Input
// without a ".letter" suffix is returned unchanged rather than rejected.
func OpenSSL(v string) string {
	return opensslRe.ReplaceAllString(v, "$1$2")
}

// SQLite encodes MAJOR.MINOR.PATCH as the numeric code upstream download
// URLs use: major unpadded, minor and patch zero-padded to two digits,
// then literal "00". "3.24.0" becomes "3240000", "3.8.5" becomes
// "3080500". Characters after the third component are ignored.
func SQLite(v string) (string, error) {
	m := sqliteRe.FindStringSubmatch(v)
	if m == nil {
		return "", &MalformedVersionError{Input: v}
	}

	// the regex guarantees digits, but not that they fit in an int
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return "", &MalformedVersionError{Input: v}
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return "", &MalformedVersionError{Input: v}
	}
	patch, err := strconv.Atoi(m[3])
	if err != nil {
		return "", &MalformedVersionError{Input: v}
	}

	return fmt.Sprintf("%d%02d%02d00", major, minor, patch), nil
}

// Converter maps a vendor version string to its target form.
type Converter func(string) (string, error)

// ByName returns the converter registered under name. Known names are
// "openssl" and "sqlite"; the empty name is the identity converter.
func ByName(name string) (Converter, error) {
	switch name {
	case "":
		return func(v string) (string, error) { return v, nil }, nil
	case "openssl":
		return func(v string) (string, error) { return OpenSSL(v), nil }, nil
	case "sqlite":
		return SQLite, nil
	default:
		return nil, fmt.Errorf("unknown version format %q", name)
	}
}
