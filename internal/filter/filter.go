// Package filter implements the interactive filter engine: it takes the
// current filter state and derives the mutually consistent contributing
// roster and selected publication sets.
package filter

import (
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
	"github.com/ucvm/facnet/internal/textmatch"
)

// State is the complete filter state for one interaction cycle. Empty
// multi-selects impose no constraint. A non-empty FocusedAuthorID bypasses
// all categorical filters and narrows the roster to that one member; the
// year and topic filters still apply to the focused author's publications.
type State struct {
	Levels       []string `json:"levels,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Appointments []string `json:"appointments,omitempty"`
	Groups       []string `json:"groups,omitempty"`

	YearFrom int    `json:"year_from,omitempty"`
	YearTo   int    `json:"year_to,omitempty"`
	Topic    string `json:"topic,omitempty"`

	FocusedAuthorID string `json:"focused_author_id,omitempty"`

	Policy textmatch.Policy `json:"-"`
}

// Result is the output of one filter pass.
type Result struct {
	ContributingRoster   []roster.Entry            `json:"contributing_roster"`
	SelectedPublications []publication.Publication `json:"selected_publications"`
}

// Bounds returns the effective year range: unset ends default to the
// window edges, both ends are clamped into the window, and a reversed
// range is restored by swapping.
func (s State) Bounds(w normalize.Window) (int, int) {
	from, to := s.YearFrom, s.YearTo
	if from == 0 {
		from = w.Start
	}
	if to == 0 {
		to = w.End
	}
	from, to = w.Clamp(from), w.Clamp(to)
	if from > to {
		from, to = to, from
	}
	return from, to
}

// inSet reports set membership with an empty set meaning "no constraint".
func inSet(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// selectRoster applies focus mode or the conjunction of categorical
// filters (group membership is an OR across the entry's own tags).
func (s State) selectRoster(entries []roster.Entry) []roster.Entry {
	if s.FocusedAuthorID != "" {
		for _, e := range entries {
			if e.OpenAlexID == s.FocusedAuthorID {
				return []roster.Entry{e}
			}
		}
		return nil
	}

	var selected []roster.Entry
	for _, e := range entries {
		if inSet(e.Level, s.Levels) &&
			inSet(e.Category, s.Categories) &&
			inSet(e.Appointment, s.Appointments) &&
			e.InAnyGroup(s.Groups) {
			selected = append(selected, e)
		}
	}
	return selected
}

// Apply runs the full filter pass. It is a pure function of its inputs:
// identical tables and state always yield identical output.
//
// Roster members that pass the categorical filters but have every
// publication removed by the year or topic filters are dropped from the
// contributing roster.
func Apply(entries []roster.Entry, pubs []publication.Publication, s State, w normalize.Window) Result {
	yearFrom, yearTo := s.Bounds(w)
	selectedRoster := s.selectRoster(entries)

	authorIDs := make(map[string]bool, len(selectedRoster))
	for _, e := range selectedRoster {
		authorIDs[e.OpenAlexID] = true
	}

	contributing := make(map[string]bool)
	var selectedPubs []publication.Publication
	for _, p := range pubs {
		if p.Year < yearFrom || p.Year > yearTo {
			continue
		}
		if !p.AnyAuthorIn(authorIDs) {
			continue
		}
		if s.Topic != "" && !textmatch.QueryMatch(s.Policy, s.Topic, p.Haystack) {
			continue
		}
		selectedPubs = append(selectedPubs, p)
		for _, a := range p.AuthorIDs {
			contributing[a] = true
		}
	}

	var contributingRoster []roster.Entry
	for _, e := range selectedRoster {
		if contributing[e.OpenAlexID] {
			contributingRoster = append(contributingRoster, e)
		}
	}

	return Result{
		ContributingRoster:   contributingRoster,
		SelectedPublications: selectedPubs,
	}
}
