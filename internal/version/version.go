// Package version parses and orders the NUMBER.NUMBER.NUMBER identifiers of managed releases.
package version

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidFormat is returned for any identifier that is not NUMBER.NUMBER.NUMBER.
var ErrInvalidFormat = errors.New("the version should have the format NUMBER.NUMBER.NUMBER")

var (
	prefixPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)`)
	strictPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)
	tokenPattern  = regexp.MustCompile(`\d+\.\d+\.\d+`)
)

// Version is a major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Parse validates raw and returns its numeric triple.
// In lenient mode only the start of raw must match, so "1.2.3-beta" is accepted
// and names the file terraform-1.2.3-beta. Strict mode anchors both ends.
// A component that overflows int is an error here but not for ValidateFormat.
func Parse(raw string, strict bool) (Version, error) {
	m := pattern(strict).FindStringSubmatch(raw)
	if m == nil {
		return Version{}, fmt.Errorf("%w: got %q", ErrInvalidFormat, raw)
	}

	var parts [3]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			// Only reachable on integer overflow.
			return Version{}, fmt.Errorf("%w: %q: %w", ErrInvalidFormat, raw, err)
		}
		parts[i] = n
	}
	return Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, nil
}

func pattern(strict bool) *regexp.Regexp {
	if strict {
		return strictPattern
	}
	return prefixPattern
}

// ValidateFormat checks raw against the NUMBER.NUMBER.NUMBER shape only.
// Components may have any number of digits.
func ValidateFormat(raw string, strict bool) error {
	if !pattern(strict).MatchString(raw) {
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, raw)
	}
	return nil
}

// Compare returns -1, 0 or +1 as a is lower than, equal to or higher than b.
func Compare(a, b Version) int {
	return semver.Compare("v"+a.String(), "v"+b.String())
}

// CompareRaw orders two validated version strings by their X.Y.Z prefix, then as text.
// The digits are compared as text, so components of any size work.
func CompareRaw(a, b string) int {
	if c := semver.Compare("v"+prefixPattern.FindString(a), "v"+prefixPattern.FindString(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// Sort orders versions ascending.
func Sort(versions []Version) {
	sort.Slice(versions, func(i, j int) bool {
		return Compare(versions[i], versions[j]) < 0
	})
}

// FindInIndex reports whether body lists raw as a whole version token.
// "1.2.3" is not found inside "1.2.30", "11.2.3" or "1.2.3-rc1".
func FindInIndex(body, raw string) bool {
	if raw == "" {
		return false
	}
	for from := 0; from < len(body); {
		i := strings.Index(body[from:], raw)
		if i < 0 {
			return false
		}
		start := from + i
		if isToken(body, start, start+len(raw)) {
			return true
		}
		from = start + 1
	}
	return false
}

// ExtractAll returns every distinct release (no pre-release suffix) listed in body, ascending.
// Releases whose components overflow int are skipped.
func ExtractAll(body string) []Version {
	seen := map[Version]struct{}{}
	var out []Version
	for _, loc := range tokenPattern.FindAllStringIndex(body, -1) {
		if !isToken(body, loc[0], loc[1]) {
			continue
		}
		v, err := Parse(body[loc[0]:loc[1]], true)
		if err != nil {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	Sort(out)
	return out
}

// isToken reports whether body[start:end] stands alone: no digit or dot before it,
// and nothing after it that would extend the version ("1.2.30", "1.2.3.4", "1.2.3-rc1").
func isToken(body string, start, end int) bool {
	if start > 0 {
		if c := body[start-1]; isDigit(c) || c == '.' {
			return false
		}
	}
	if end < len(body) {
		c := body[end]
		if isDigit(c) || c == '.' || c == '+' || c == '-' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
