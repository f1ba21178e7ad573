// Package coauthor builds the weighted co-authorship graph from the
// filtered publication set.
//
// Two construction strategies exist. When the pre-deduplication authorship
// table is available, co-author sets come from its (work, author) rows.
// Without it, the semicolon-joined author-name string on each work is
// canonicalized and matched against roster names, a lossier path whose
// strategy is chosen once at load time, not re-detected per call.
package coauthor

import (
	"sort"
	"strings"

	"github.com/ucvm/facnet/internal/names"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

// Strategy selects how co-author sets are derived per work.
type Strategy int

const (
	// StrategyAuthorship uses the structured authorship expansion table.
	StrategyAuthorship Strategy = iota
	// StrategyNames falls back to canonical name matching against the roster.
	StrategyNames
)

func (s Strategy) String() string {
	if s == StrategyNames {
		return "names"
	}
	return "authorship"
}

// Node is one roster author appearing in at least one edge. Degree is the
// sum of incident edge weights, used only for presentation sizing. Index
// is a stable position assigned by sorted display name so re-renders do
// not jitter node identity.
type Node struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Degree int    `json:"degree"`
	Index  int    `json:"index"`
}

// Edge connects an unordered author pair that shares at least one work.
// A and B are canonically ordered (A < B lexicographically).
type Edge struct {
	A              string   `json:"a"`
	B              string   `json:"b"`
	JointWorkCount int      `json:"joint_work_count"`
	WorkIDs        []string `json:"work_ids"`
}

// PairKey identifies an unordered author pair. Used by render adapters to
// resolve an edge click back to its supporting publications.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

// Graph is the built co-authorship graph.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// EdgeByPair returns the edge for an unordered author pair, argument order
// insensitive.
func (g *Graph) EdgeByPair(a, b string) (Edge, bool) {
	key := PairKey(a, b)
	for _, e := range g.Edges {
		if PairKey(e.A, e.B) == key {
			return e, true
		}
	}
	return Edge{}, false
}

// pairAccumulator collects per-pair work sets with work-level dedup:
// duplicate rows for the same (pair, work) count once.
type pairAccumulator struct {
	works map[string]map[string]bool
}

func newPairAccumulator() *pairAccumulator {
	return &pairAccumulator{works: make(map[string]map[string]bool)}
}

func (acc *pairAccumulator) add(a, b, workID string) {
	if a == b {
		return
	}
	key := PairKey(a, b)
	if acc.works[key] == nil {
		acc.works[key] = make(map[string]bool)
	}
	acc.works[key][workID] = true
}

// addWork records every unordered pair of distinct co-authors on one work.
func (acc *pairAccumulator) addWork(workID string, coauthors []string) {
	for i := 0; i < len(coauthors); i++ {
		for j := i + 1; j < len(coauthors); j++ {
			acc.add(coauthors[i], coauthors[j], workID)
		}
	}
}

// Build constructs the graph for the contributing roster and selected
// publications. Zero selected publications yields an empty graph; a work
// with fewer than two matched roster co-authors contributes no edges.
func Build(
	contributing []roster.Entry,
	selected []publication.Publication,
	authorships []publication.Authorship,
	strategy Strategy,
) Graph {
	members := roster.ByID(contributing)
	acc := newPairAccumulator()

	switch strategy {
	case StrategyAuthorship:
		accumulateFromAuthorships(acc, selected, authorships, members)
	case StrategyNames:
		accumulateFromNames(acc, selected, contributing)
	}

	return assemble(acc, members)
}

// accumulateFromAuthorships restricts the authorship table to selected
// works and known roster members, then pairs co-authors per work.
func accumulateFromAuthorships(
	acc *pairAccumulator,
	selected []publication.Publication,
	authorships []publication.Authorship,
	members map[string]roster.Entry,
) {
	selectedWorks := make(map[string]bool, len(selected))
	for _, p := range selected {
		selectedWorks[p.WorkID] = true
	}

	byWork := make(map[string]map[string]bool)
	for _, row := range authorships {
		if !selectedWorks[row.WorkID] {
			continue
		}
		if _, known := members[row.AuthorID]; !known {
			continue
		}
		if byWork[row.WorkID] == nil {
			byWork[row.WorkID] = make(map[string]bool)
		}
		byWork[row.WorkID][row.AuthorID] = true
	}

	for workID, authorSet := range byWork {
		acc.addWork(workID, setToSorted(authorSet))
	}
}

// accumulateFromNames splits each work's author-name string on semicolons
// and resolves the names against the contributing roster.
func accumulateFromNames(acc *pairAccumulator, selected []publication.Publication, contributing []roster.Entry) {
	ix := names.NewIndex()
	for _, e := range contributing {
		ix.Add(e.Name, e.OpenAlexID)
	}

	for _, p := range selected {
		if p.AuthorNames == "" {
			continue
		}
		matched := make(map[string]bool)
		for _, raw := range strings.Split(p.AuthorNames, ";") {
			if id := ix.Resolve(raw); id != "" {
				matched[id] = true
			}
		}
		if len(matched) < 2 {
			continue
		}
		acc.addWork(p.WorkID, setToSorted(matched))
	}
}

// assemble turns accumulated pair counts into sorted edges and nodes with
// stable indices.
func assemble(acc *pairAccumulator, members map[string]roster.Entry) Graph {
	var g Graph

	degree := make(map[string]int)
	for key, workSet := range acc.works {
		a, b, _ := strings.Cut(key, "|")
		e := Edge{
			A:              a,
			B:              b,
			JointWorkCount: len(workSet),
			WorkIDs:        setToSorted(workSet),
		}
		degree[a] += e.JointWorkCount
		degree[b] += e.JointWorkCount
		g.Edges = append(g.Edges, e)
	}
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].A != g.Edges[j].A {
			return g.Edges[i].A < g.Edges[j].A
		}
		return g.Edges[i].B < g.Edges[j].B
	})

	for id, d := range degree {
		name := members[id].Name
		if name == "" {
			name = id
		}
		g.Nodes = append(g.Nodes, Node{ID: id, Name: name, Degree: d})
	}
	sort.Slice(g.Nodes, func(i, j int) bool {
		if g.Nodes[i].Name != g.Nodes[j].Name {
			return g.Nodes[i].Name < g.Nodes[j].Name
		}
		return g.Nodes[i].ID < g.Nodes[j].ID
	})
	for i := range g.Nodes {
		g.Nodes[i].Index = i
	}

	return g
}

func setToSorted(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
