// Package names collapses free-text author name variants to a canonical
// "first-initial surname" key so a semicolon-joined author string can be
// matched against the roster when no structured authorship table exists.
//
// The key is deliberately lossy: "J. Smith", "Smith, John" and "John A.
// Smith" all map to "j smith", and two different people can collide on the
// same key. That is a documented precision limit of the fallback path, not
// something this package tries to repair.
package names

import (
	"strings"

	"github.com/ucvm/facnet/internal/normalize"
)

// particles are multi-word-surname markers: when the second-to-last name
// part is one of these, it is fused with the last part as the surname
// ("Ludwig van Beethoven" -> "l van beethoven").
var particles = map[string]bool{
	"von": true, "van": true, "vander": true, "vande": true,
	"de": true, "del": true, "della": true, "der": true,
	"di": true, "da": true, "dos": true, "du": true,
	"la": true, "le": true, "st": true,
	"mac": true, "mc": true, "o": true,
}

// suffixes are generational suffixes dropped from the end of a name.
var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true,
}

// Canon maps a raw author name to its canonical key, or "" when no name
// parts survive normalization.
func Canon(raw string) string {
	s := normalize.Fold(raw)

	// "Last, First" becomes "First Last" before splitting.
	if idx := strings.Index(s, ","); idx >= 0 {
		s = strings.TrimSpace(s[idx+1:]) + " " + strings.TrimSpace(s[:idx])
	}

	parts := strings.Fields(normalize.CollapseText(s))
	for len(parts) > 0 && suffixes[parts[len(parts)-1]] {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return ""
	}

	surname := parts[len(parts)-1]
	if len(parts) >= 3 && particles[parts[len(parts)-2]] {
		surname = parts[len(parts)-2] + " " + surname
	}

	return string(parts[0][0]) + " " + surname
}

// Index resolves canonical name keys to roster author IDs.
type Index struct {
	byKey map[string]string
}

// NewIndex builds an index from roster display names. When two roster
// members collide on the same key, the first one registered wins; later
// entries are ignored rather than silently overwriting.
func NewIndex() *Index {
	return &Index{byKey: make(map[string]string)}
}

// Add registers a roster member under the canonical key of their name.
func (ix *Index) Add(name, authorID string) {
	key := Canon(name)
	if key == "" {
		return
	}
	if _, taken := ix.byKey[key]; !taken {
		ix.byKey[key] = authorID
	}
}

// Resolve returns the roster author ID for a raw name, or "" when the name
// does not canonicalize to a known roster member.
func (ix *Index) Resolve(rawName string) string {
	key := Canon(rawName)
	if key == "" {
		return ""
	}
	return ix.byKey[key]
}

// Len returns the number of distinct keys in the index.
func (ix *Index) Len() int {
	return len(ix.byKey)
}
