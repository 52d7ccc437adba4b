// Package subst rewrites version-pin assignments in build files.
//
// The only contract with the target file is line-based: every occurrence
// of a recognized PREFIX_VER=token assignment is replaced with the pinned
// version, quoted. All other content passes through byte for byte.
package subst

import (
	"regexp"
	"sort"
	"strings"
)

// Rewriter replaces PREFIX_VER=token assignments with pinned versions.
type Rewriter struct {
	rules []rule
}

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// NewRewriter compiles one substitution rule per prefix in pins. Rules are
// ordered by sorted prefix for determinism; order cannot affect the result
// since each rule targets a distinct literal prefix.
func NewRewriter(pins map[string]string) *Rewriter {
	prefixes := make([]string, 0, len(pins))
	for prefix := range pins {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	rw := &Rewriter{rules: make([]rule, 0, len(prefixes))}
	for _, prefix := range prefixes {
		re := regexp.MustCompile(`(` + regexp.QuoteMeta(prefix) + `_VER=)\S+`)
		// $ must not reach the expansion template
		version := strings.ReplaceAll(pins[prefix], "$", "$$")
		rw.rules = append(rw.rules, rule{
			re:          re,
			replacement: `${1}"` + version + `"`,
		})
	}
	return rw
}

// Line applies every rule across the whole line, replacing all occurrences
// of each prefix's assignment token. The old token may be quoted or bare;
// it ends at the first whitespace, so the line terminator and everything
// outside recognized tokens pass through untouched.
func (rw *Rewriter) Line(line string) string {
	for _, r := range rw.rules {
		line = r.re.ReplaceAllString(line, r.replacement)
	}
	return line
}
