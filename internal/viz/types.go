// Package viz renders the co-authorship graph as an interactive HTML page.
package viz

import (
	"strings"

	"github.com/ucvm/facnet/internal/coauthor"
)

// GraphData contains all data needed to render the visualization.
type GraphData struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node represents one roster member in the rendered graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Tooltip fields
	Name   string `json:"name"`
	Degree int    `json:"degree"`
}

// Edge represents a co-authorship link between two members.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
	Works  string `json:"works,omitempty"` // Joined work IDs for the tooltip
}

// IsEmpty returns true if the graph has no nodes.
func (g *GraphData) IsEmpty() bool {
	return len(g.Nodes) == 0
}

// FromGraph converts a computed co-authorship graph into render data.
// Node labels use the member's display name; edge weight is the joint
// work count.
func FromGraph(g coauthor.Graph) *GraphData {
	data := &GraphData{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		data.Nodes = append(data.Nodes, Node{
			ID:     n.ID,
			Label:  n.Name,
			Name:   n.Name,
			Degree: n.Degree,
		})
	}

	for _, e := range g.Edges {
		data.Edges = append(data.Edges, Edge{
			Source: e.A,
			Target: e.B,
			Weight: e.JointWorkCount,
			Works:  strings.Join(e.WorkIDs, ", "),
		})
	}

	return data
}
