// Package pipeline exposes the single pure entry point for one
// interaction cycle: filter state in, contributing roster, selected
// publications and co-authorship graph out.
//
// No stage retains state across cycles; everything is recomputed from the
// loaded tables and the explicit filter state.
package pipeline

import (
	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/dataset"
	"github.com/ucvm/facnet/internal/filter"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

// Output is the full result of one compute cycle, the shape render and
// export adapters consume.
type Output struct {
	ContributingRoster   []roster.Entry            `json:"contributing_roster"`
	SelectedPublications []publication.Publication `json:"selected_publications"`
	Graph                coauthor.Graph            `json:"graph"`
}

// Compute runs the full pipeline synchronously to completion. It is a
// pure function of (tables, state): identical inputs yield identical
// outputs, and nothing yields mid-pipeline, so triggered computations
// never overlap.
func Compute(t *dataset.Tables, s filter.State) Output {
	res := filter.Apply(t.Roster, t.Publications, s, t.Window)
	graph := coauthor.Build(res.ContributingRoster, res.SelectedPublications, t.Authorships, t.Strategy)
	return Output{
		ContributingRoster:   res.ContributingRoster,
		SelectedPublications: res.SelectedPublications,
		Graph:                graph,
	}
}
