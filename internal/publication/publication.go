// Package publication defines the publication (work) domain type and the
// optional pre-deduplication authorship expansion rows.
package publication

import (
	"strings"

	"github.com/ucvm/facnet/internal/normalize"
)

// Publication is one deduplicated scholarly work row.
type Publication struct {
	WorkID       string   `json:"work_id"`
	AuthorIDs    []string `json:"author_ids"`
	AuthorNames  string   `json:"authors,omitempty"` // semicolon-joined raw names, fallback path only
	Year         int      `json:"publication_year"`
	CitedByCount int      `json:"cited_by_count"`
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	DOI          string   `json:"doi,omitempty"`
	FWCI         *float64 `json:"fwci,omitempty"`

	// Haystack is the precomputed normalized topic text used by the
	// free-text matcher: concepts, subfield, primary topic, and title.
	Haystack string `json:"-"`
}

// Authorship is one row of the optional expansion table: a single
// (work, author) attribution at pre-deduplication granularity.
type Authorship struct {
	WorkID   string `json:"work_id"`
	AuthorID string `json:"author_id"`
}

// Record is an already-parsed source row keyed by column name.
type Record map[string]string

// FromRecord builds a Publication from a source row. The year is clamped
// into the window and never dropped; numeric fields degrade to 0.
func FromRecord(rec Record, w normalize.Window) Publication {
	p := Publication{
		WorkID:       normalize.ID(rec["id"]),
		AuthorNames:  strings.TrimSpace(rec["authors"]),
		Year:         normalize.ClampYear(rec["publication_year"], w),
		CitedByCount: normalize.ToInt(rec["cited_by_count"]),
		Type:         strings.ToLower(strings.TrimSpace(rec["type"])),
		Title:        strings.TrimSpace(rec["display_name"]),
		DOI:          NormalizeDOI(rec["doi"]),
	}

	if author := normalize.ID(rec["author_openalex_id"]); author != "" {
		p.AuthorIDs = []string{author}
	}
	if fwci, ok := normalize.ToFloat(rec["fwci"]); ok {
		p.FWCI = &fwci
	}

	p.Haystack = BuildHaystack(
		rec["concepts_list"],
		rec["primary_topic__subfield__display_name"],
		rec["primary_topic__display_name"],
		p.Title,
	)

	return p
}

// BuildHaystack concatenates topic text fields into the normalized blob
// the matcher runs against.
func BuildHaystack(parts ...string) string {
	return normalize.CollapseText(strings.Join(parts, " "))
}

// NormalizeDOI returns an absolute DOI URL, or "" when the field is empty.
func NormalizeDOI(raw string) string {
	doi := strings.TrimSpace(raw)
	switch {
	case doi == "":
		return ""
	case strings.HasPrefix(doi, "https://") || strings.HasPrefix(doi, "http://"):
		return doi
	case strings.HasPrefix(doi, "doi.org/"):
		return "https://" + doi
	default:
		return "https://doi.org/" + doi
	}
}

// HasAuthor reports whether the work is attributed to the given author ID,
// considering every attributed author rather than only the first.
func (p Publication) HasAuthor(authorID string) bool {
	for _, a := range p.AuthorIDs {
		if a == authorID {
			return true
		}
	}
	return false
}

// AnyAuthorIn reports whether the work's author set intersects the given
// ID set.
func (p Publication) AnyAuthorIn(ids map[string]bool) bool {
	for _, a := range p.AuthorIDs {
		if ids[a] {
			return true
		}
	}
	return false
}

// ExpandAuthors widens each publication's author set using the expansion
// table, deduplicating author IDs per work. Works without expansion rows
// keep their original single-author attribution.
func ExpandAuthors(pubs []Publication, rows []Authorship) []Publication {
	byWork := make(map[string][]string)
	for _, r := range rows {
		byWork[r.WorkID] = append(byWork[r.WorkID], r.AuthorID)
	}

	out := make([]Publication, len(pubs))
	for i, p := range pubs {
		out[i] = p
		extra := byWork[p.WorkID]
		if len(extra) == 0 {
			continue
		}
		seen := make(map[string]bool, len(p.AuthorIDs)+len(extra))
		merged := make([]string, 0, len(p.AuthorIDs)+len(extra))
		for _, a := range append(append([]string{}, p.AuthorIDs...), extra...) {
			if a != "" && !seen[a] {
				seen[a] = true
				merged = append(merged, a)
			}
		}
		out[i].AuthorIDs = merged
	}
	return out
}
