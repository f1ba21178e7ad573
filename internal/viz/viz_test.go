package viz

import (
	"strings"
	"testing"

	"github.com/ucvm/facnet/internal/coauthor"
)

func testGraph() coauthor.Graph {
	return coauthor.Graph{
		Nodes: []coauthor.Node{
			{ID: "A1", Name: "a martin", Degree: 3, Index: 0},
			{ID: "A2", Name: "b chen", Degree: 3, Index: 1},
		},
		Edges: []coauthor.Edge{
			{A: "A1", B: "A2", JointWorkCount: 3, WorkIDs: []string{"W1", "W2", "W3"}},
		},
	}
}

func TestFromGraph(t *testing.T) {
	data := FromGraph(testGraph())

	if len(data.Nodes) != 2 || len(data.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(data.Nodes), len(data.Edges))
	}
	if data.Nodes[0].Label != "a martin" || data.Nodes[0].Degree != 3 {
		t.Errorf("node = %+v", data.Nodes[0])
	}
	e := data.Edges[0]
	if e.Source != "A1" || e.Target != "A2" || e.Weight != 3 {
		t.Errorf("edge = %+v", e)
	}
	if e.Works != "W1, W2, W3" {
		t.Errorf("Works = %q", e.Works)
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	data := FromGraph(testGraph())
	out, err := data.ToCytoscapeJSON()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{`"id":"A1|A2"`, `"weight":3`, `"label":"a martin"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON missing %s:\n%s", want, out)
		}
	}
}

func TestGenerateHTML(t *testing.T) {
	data := FromGraph(testGraph())

	html, err := GenerateHTML(data, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "cytoscape", `"circle"`, "a martin"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
}

func TestGenerateHTMLEmptyGraph(t *testing.T) {
	html, err := GenerateHTML(&GraphData{}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "No co-authorship data") {
		t.Error("expected empty-state page")
	}
}

func TestGenerateHTMLValidation(t *testing.T) {
	if _, err := GenerateHTML(nil, DefaultOptions()); err == nil {
		t.Error("expected error for nil graph")
	}
	if _, err := GenerateHTML(&GraphData{}, HTMLOptions{Layout: "spiral"}); err == nil {
		t.Error("expected error for unknown layout")
	}
}

func TestGenerateHTMLDeterministic(t *testing.T) {
	data := FromGraph(testGraph())
	a, err := GenerateHTML(data, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateHTML(data, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("renders differ for identical input")
	}
}
