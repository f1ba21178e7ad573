// Package roster defines the faculty roster domain type.
package roster

import (
	"strings"

	"github.com/ucvm/facnet/internal/normalize"
)

// MaxGroups is the number of research-group columns read from the source
// table (RG1..RG4).
const MaxGroups = 4

// Entry is one tracked researcher with static attributes and metrics.
type Entry struct {
	OpenAlexID  string   `json:"openalex_id"`
	Name        string   `json:"name"`
	Level       string   `json:"level"`
	Category    string   `json:"category"`
	Appointment string   `json:"appointment"`
	Groups      []string `json:"groups,omitempty"`

	HIndex         int `json:"h_index"`
	I10Index       int `json:"i10_index"`
	WorksCount     int `json:"works_count"`
	TotalCitations int `json:"total_citations"`
}

// Record is an already-parsed source row keyed by column name.
type Record map[string]string

// FromRecord builds an Entry from a source row. Field-level problems
// degrade to defaults; the row itself is always kept.
func FromRecord(rec Record) Entry {
	e := Entry{
		OpenAlexID:     normalize.ID(rec["OpenAlexID"]),
		Name:           strings.TrimSpace(rec["Name"]),
		Level:          strings.TrimSpace(rec["Level"]),
		Category:       strings.TrimSpace(rec["Category"]),
		Appointment:    strings.TrimSpace(rec["Appointment"]),
		HIndex:         normalize.ToInt(rec["H_index"]),
		I10Index:       normalize.ToInt(rec["I10_index"]),
		WorksCount:     normalize.ToInt(rec["Works_count"]),
		TotalCitations: normalize.ToInt(rec["Total_citations"]),
	}

	seen := make(map[string]bool, MaxGroups)
	for _, col := range []string{"RG1", "RG2", "RG3", "RG4"} {
		g := strings.TrimSpace(rec[col])
		if g != "" && !seen[g] {
			seen[g] = true
			e.Groups = append(e.Groups, g)
		}
	}

	return e
}

// InGroup reports whether the entry carries the given research-group tag.
func (e Entry) InGroup(group string) bool {
	for _, g := range e.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// InAnyGroup reports whether any of the entry's group tags is in the
// selected set. An empty selection imposes no constraint.
func (e Entry) InAnyGroup(selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if e.InGroup(s) {
			return true
		}
	}
	return false
}

// ByID builds a lookup map from canonical ID to entry. Duplicate IDs are
// not expected in a roster; if present, the last row wins.
func ByID(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.OpenAlexID] = e
	}
	return m
}
