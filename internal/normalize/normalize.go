// Package normalize provides lenient canonicalization of identifiers,
// numeric fields, years, and free text loaded from source tables.
//
// Every function is pure and total: malformed input degrades to a safe
// default rather than returning an error, so a single bad field never
// drops a row.
package normalize

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// idPrefixes are the known identifier-service URL prefixes stripped by ID.
// Longer prefixes must come first so the path-segment forms win.
var idPrefixes = []string{
	"https://openalex.org/authors/",
	"https://openalex.org/works/",
	"https://openalex.org/",
	"http://openalex.org/authors/",
	"http://openalex.org/works/",
	"http://openalex.org/",
	"openalex.org/",
}

// ID strips a known OpenAlex URL prefix and surrounding whitespace from a
// raw identifier. Idempotent: ID(ID(x)) == ID(x).
func ID(raw string) string {
	id := strings.TrimSpace(raw)
	for _, prefix := range idPrefixes {
		if rest, ok := cutPrefixFold(id, prefix); ok {
			id = strings.TrimSpace(rest)
			break
		}
	}
	return id
}

// cutPrefixFold is strings.CutPrefix with ASCII case-insensitive matching.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}

// ToInt parses a numeric-looking string, rounding to the nearest integer.
// Unparsable or non-finite input yields 0.
func ToInt(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}

// ToFloat parses a float field. The second return is false when the field
// is empty or unparsable, distinguishing "absent" from zero.
func ToFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Window is the configured valid publication-year range.
type Window struct {
	Start int
	End   int
}

// Clamp forces a year into the window. Zero or unparsable years resolve to
// the window start so malformed rows are kept rather than silently dropped.
func (w Window) Clamp(year int) int {
	if year == 0 {
		return w.Start
	}
	if year < w.Start {
		return w.Start
	}
	if year > w.End {
		return w.End
	}
	return year
}

// ClampYear parses a year field and clamps it into the window.
func ClampYear(raw string, w Window) int {
	return w.Clamp(ToInt(raw))
}

// stripMarks removes combining marks after canonical decomposition, turning
// e.g. "é" into "e".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold strips diacritics and lowercases.
func Fold(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// CollapseText folds a string and replaces every run of non-alphanumeric
// characters with a single space, trimmed. This is the shared shape of
// search haystacks and query text.
func CollapseText(s string) string {
	folded := Fold(s)
	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		} else {
			space = true
		}
	}
	return b.String()
}
