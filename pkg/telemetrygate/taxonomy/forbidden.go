package taxonomy

import (
	"regexp"
	"sort"
	"strings"
)

// defaultForbiddenExact lists keys that must never be emitted, as exact
// lowercase matches. Kept alongside the pattern on purpose: the overlap is
// intentional redundancy, and both checks run on every key.
var defaultForbiddenExact = []string{
	"authorization",
	"body",
	"content",
	"cookie",
	"email",
	"html",
	"markdown",
	"message",
	"password",
	"secret",
	"stack",
	"title",
	"token",
}

// defaultForbiddenPattern blocks any key containing a content-ish or
// secret-ish substring, case-insensitively. The textual source is exported
// verbatim so a second enforcement site can compile the same expression.
const defaultForbiddenPattern = `(?i)(title|body|content|markdown|html|text|email|token|secret|password|auth|cookie|session|stack|trace|message|exception)`

// ForbiddenKeys is the deny side of the taxonomy: keys matching either the
// exact list or the pattern are stripped before anything else is considered.
type ForbiddenKeys struct {
	exact         map[string]struct{}
	pattern       *regexp.Regexp
	patternSource string
}

// NewForbiddenKeys builds a ForbiddenKeys from an exact-match list and a
// regular expression source. The expression is compiled as written; callers
// embed case-insensitivity in the source itself.
func NewForbiddenKeys(exact []string, patternSource string) (*ForbiddenKeys, error) {
	re, err := regexp.Compile(patternSource)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(exact))
	for _, k := range exact {
		set[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}
	return &ForbiddenKeys{exact: set, pattern: re, patternSource: patternSource}, nil
}

// DefaultForbiddenKeys returns the built-in deny list.
func DefaultForbiddenKeys() *ForbiddenKeys {
	f, err := NewForbiddenKeys(defaultForbiddenExact, defaultForbiddenPattern)
	if err != nil {
		// The default pattern is a compile-time constant; failure here is a
		// programming error.
		panic("taxonomy: default forbidden pattern does not compile: " + err.Error())
	}
	return f
}

// Blocked reports whether key must never be emitted. Both the exact list and
// the pattern are consulted; either one blocks.
func (f *ForbiddenKeys) Blocked(key string) bool {
	lower := strings.ToLower(key)
	if _, ok := f.exact[lower]; ok {
		return true
	}
	return f.pattern.MatchString(key)
}

// Exact returns the exact-match list in sorted order.
func (f *ForbiddenKeys) Exact() []string {
	out := make([]string, 0, len(f.exact))
	for k := range f.exact {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// PatternSource returns the textual source of the pattern.
func (f *ForbiddenKeys) PatternSource() string {
	return f.patternSource
}
