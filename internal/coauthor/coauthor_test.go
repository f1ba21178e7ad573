package coauthor

import (
	"reflect"
	"testing"

	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

func contrib() []roster.Entry {
	return []roster.Entry{
		{OpenAlexID: "A1", Name: "Alice Martin"},
		{OpenAlexID: "A2", Name: "Bob Chen"},
		{OpenAlexID: "A3", Name: "Carol Diaz"},
	}
}

func TestPairKey(t *testing.T) {
	if PairKey("A2", "A1") != PairKey("A1", "A2") {
		t.Error("PairKey must be order-insensitive")
	}
	if PairKey("A1", "A2") != "A1|A2" {
		t.Errorf("PairKey = %q, want A1|A2", PairKey("A1", "A2"))
	}
}

func TestBuildStructured(t *testing.T) {
	selected := []publication.Publication{
		{WorkID: "W1", Year: 2023},
		{WorkID: "W2", Year: 2024},
	}
	authorships := []publication.Authorship{
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W1", AuthorID: "A2"},
		{WorkID: "W1", AuthorID: "A9"}, // not a roster member, ignored
		{WorkID: "W2", AuthorID: "A1"},
		{WorkID: "W2", AuthorID: "A2"},
		{WorkID: "W2", AuthorID: "A3"},
		{WorkID: "W5", AuthorID: "A1"}, // not a selected work, ignored
		{WorkID: "W5", AuthorID: "A2"},
	}

	g := Build(contrib(), selected, authorships, StrategyAuthorship)

	if len(g.Edges) != 3 {
		t.Fatalf("edges = %d, want 3", len(g.Edges))
	}
	e, ok := g.EdgeByPair("A2", "A1")
	if !ok {
		t.Fatal("missing A1-A2 edge")
	}
	if e.JointWorkCount != 2 || !reflect.DeepEqual(e.WorkIDs, []string{"W1", "W2"}) {
		t.Errorf("A1-A2 edge = %+v, want 2 joint works [W1 W2]", e)
	}
	if e, _ := g.EdgeByPair("A1", "A3"); e.JointWorkCount != 1 {
		t.Errorf("A1-A3 JointWorkCount = %d, want 1", e.JointWorkCount)
	}
}

// Duplicate authorship rows for the same (work, author) must not inflate
// the joint work count.
func TestBuildWorkDedup(t *testing.T) {
	selected := []publication.Publication{{WorkID: "W1", Year: 2023}}
	authorships := []publication.Authorship{
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W1", AuthorID: "A2"},
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W1", AuthorID: "A2"},
	}

	g := Build(contrib(), selected, authorships, StrategyAuthorship)

	e, ok := g.EdgeByPair("A1", "A2")
	if !ok {
		t.Fatal("missing edge")
	}
	if e.JointWorkCount != 1 {
		t.Errorf("JointWorkCount = %d, want 1 after work dedup", e.JointWorkCount)
	}
}

// Graph symmetry: pairs are canonically ordered, so no (b,a) duplicate of
// any (a,b) edge exists and no self-loop survives.
func TestBuildSymmetry(t *testing.T) {
	selected := []publication.Publication{{WorkID: "W1"}, {WorkID: "W2"}}
	authorships := []publication.Authorship{
		{WorkID: "W1", AuthorID: "A2"},
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W2", AuthorID: "A1"},
		{WorkID: "W2", AuthorID: "A2"},
		{WorkID: "W2", AuthorID: "A2"},
	}

	g := Build(contrib(), selected, authorships, StrategyAuthorship)

	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if e.A >= e.B {
			t.Errorf("edge (%s, %s) not canonically ordered", e.A, e.B)
		}
		key := PairKey(e.A, e.B)
		if seen[key] {
			t.Errorf("duplicate edge for pair %s", key)
		}
		seen[key] = true
	}
}

// End-to-end scenario C: two roster members co-author one work.
func TestBuildSingleSharedWork(t *testing.T) {
	ros := contrib()[:2]
	selected := []publication.Publication{{WorkID: "W1", Year: 2023}}
	authorships := []publication.Authorship{
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W1", AuthorID: "A2"},
	}

	g := Build(ros, selected, authorships, StrategyAuthorship)

	if len(g.Edges) != 1 || len(g.Nodes) != 2 {
		t.Fatalf("graph = %d nodes / %d edges, want 2/1", len(g.Nodes), len(g.Edges))
	}
	e := g.Edges[0]
	if e.JointWorkCount != 1 || !reflect.DeepEqual(e.WorkIDs, []string{"W1"}) {
		t.Errorf("edge = %+v, want one supporting work W1", e)
	}
}

func TestBuildNameFallback(t *testing.T) {
	selected := []publication.Publication{
		{WorkID: "W1", AuthorNames: "Martin, Alice; Chen, Bob; Someone Unknown"},
		{WorkID: "W2", AuthorNames: "A. Martin; External Collaborator"}, // only one roster match: no edge
		{WorkID: "W3", AuthorNames: ""},
	}

	g := Build(contrib(), selected, nil, StrategyNames)

	if len(g.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(g.Edges))
	}
	e, ok := g.EdgeByPair("A1", "A2")
	if !ok {
		t.Fatal("missing A1-A2 edge from name matching")
	}
	if !reflect.DeepEqual(e.WorkIDs, []string{"W1"}) {
		t.Errorf("WorkIDs = %v, want [W1]", e.WorkIDs)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	g := Build(contrib(), nil, nil, StrategyAuthorship)
	if !g.IsEmpty() {
		t.Errorf("graph from zero publications should be empty, got %+v", g)
	}
}

func TestBuildNodeProperties(t *testing.T) {
	selected := []publication.Publication{{WorkID: "W1"}, {WorkID: "W2"}}
	authorships := []publication.Authorship{
		{WorkID: "W1", AuthorID: "A1"},
		{WorkID: "W1", AuthorID: "A2"},
		{WorkID: "W2", AuthorID: "A1"},
		{WorkID: "W2", AuthorID: "A3"},
	}

	g := Build(contrib(), selected, authorships, StrategyAuthorship)

	// Nodes sorted by display name: Alice Martin, Bob Chen, Carol Diaz.
	wantOrder := []string{"Alice Martin", "Bob Chen", "Carol Diaz"}
	for i, n := range g.Nodes {
		if n.Name != wantOrder[i] {
			t.Errorf("node[%d] = %q, want %q", i, n.Name, wantOrder[i])
		}
		if n.Index != i {
			t.Errorf("node %s Index = %d, want %d", n.ID, n.Index, i)
		}
	}

	for _, n := range g.Nodes {
		wantDegree := 0
		for _, e := range g.Edges {
			if e.A == n.ID || e.B == n.ID {
				wantDegree += e.JointWorkCount
			}
		}
		if n.Degree != wantDegree {
			t.Errorf("node %s Degree = %d, want %d", n.ID, n.Degree, wantDegree)
		}
	}
}
