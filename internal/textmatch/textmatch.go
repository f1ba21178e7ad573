// Package textmatch implements the free-text topic matcher: tokenization,
// conservative stemming, and an AND-of-query-tokens match predicate with a
// configurable strictness policy.
package textmatch

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/ucvm/facnet/internal/normalize"
)

// Policy selects the token-match rule used by QueryMatch.
//
// PolicyStrict requires stem equality and is the default: it trades recall
// for precision on short, ambiguous scientific tokens. PolicyLoose also
// accepts prefix containment and edit distance 1.
type Policy int

const (
	PolicyStrict Policy = iota
	PolicyLoose
)

// ParsePolicy maps a config string to a Policy. Unknown values fall back
// to strict.
func ParsePolicy(s string) Policy {
	if strings.EqualFold(strings.TrimSpace(s), "loose") {
		return PolicyLoose
	}
	return PolicyStrict
}

func (p Policy) String() string {
	if p == PolicyLoose {
		return "loose"
	}
	return "strict"
}

// minStemLen guards stemming: tokens this short are meaningful words or
// acronyms and are returned unchanged.
const minStemLen = 4

// Stem reduces a token by stripping plural and verbal suffixes.
// The rules are deliberately conservative; a wrongly merged token pair is
// worse than a missed one here.
func Stem(token string) string {
	if len(token) < minStemLen {
		return token
	}

	// Plural suffixes.
	switch {
	case strings.HasSuffix(token, "sses"):
		token = token[:len(token)-2]
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		token = token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") && !strings.HasSuffix(token, "us") && len(token) > 3:
		token = token[:len(token)-1]
	}

	// Verbal suffixes.
	switch {
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		token = token[:len(token)-3]
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		token = token[:len(token)-2]
	}

	return token
}

// Tokenize normalizes text and returns its stemmed tokens, deduplicated
// while preserving first-seen order.
func Tokenize(text string) []string {
	collapsed := normalize.CollapseText(text)
	if collapsed == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tokens []string
	for _, word := range strings.Fields(collapsed) {
		stem := Stem(word)
		if !seen[stem] {
			seen[stem] = true
			tokens = append(tokens, stem)
		}
	}
	return tokens
}

// tokensMatch applies the per-token rule for the given policy. Both inputs
// are already stemmed.
func tokensMatch(policy Policy, q, h string) bool {
	if q == h {
		return true
	}
	if policy == PolicyStrict {
		return false
	}

	// Short tokens always require exact match, even under the loose policy.
	if len(q) <= 2 || len(h) <= 2 {
		return false
	}
	if strings.HasPrefix(h, q) || strings.HasPrefix(q, h) {
		return true
	}
	if levenshtein.ComputeDistance(q, h) <= 1 {
		return true
	}
	// An adjacent transposition ("cancre" for "cancer") counts as one edit.
	return oneSwap(q, h)
}

// oneSwap reports whether a and b differ only by swapping two adjacent
// characters.
func oneSwap(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			return i+1 < len(a) &&
				a[i] == b[i+1] && a[i+1] == b[i] &&
				a[i+2:] == b[i+2:]
		}
	}
	return false
}

// QueryMatch reports whether every query token matches at least one
// haystack token under the policy. An empty query matches everything.
func QueryMatch(policy Policy, query, haystack string) bool {
	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 {
		return true
	}

	haystackTokens := Tokenize(haystack)
	for _, q := range queryTokens {
		found := false
		for _, h := range haystackTokens {
			if tokensMatch(policy, q, h) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
