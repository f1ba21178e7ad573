package export

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

func TestWritePublicationsCSV(t *testing.T) {
	fwci := 1.75
	pubs := []publication.Publication{
		{
			WorkID: "W1", Title: "A study, with commas", DOI: "https://doi.org/10.1/x",
			Year: 2023, Type: "article", CitedByCount: 12, FWCI: &fwci,
			AuthorNames: "Alice Martin; Bob Chen", AuthorIDs: []string{"A1", "A2"},
		},
		{WorkID: "W2", Title: "Second", Year: 2024, Type: "review"},
	}

	var sb strings.Builder
	if err := WritePublicationsCSV(&sb, pubs); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "work_id" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "A study, with commas" {
		t.Errorf("title not round-tripped: %q", rows[1][1])
	}
	if rows[1][6] != "1.75" {
		t.Errorf("fwci = %q", rows[1][6])
	}
	if rows[2][6] != "" {
		t.Errorf("missing fwci should export empty, got %q", rows[2][6])
	}
	if rows[1][8] != "A1;A2" {
		t.Errorf("author IDs = %q", rows[1][8])
	}
}

func TestWriteEdgesCSV(t *testing.T) {
	g := coauthor.Graph{
		Edges: []coauthor.Edge{
			{A: "A1", B: "A2", JointWorkCount: 2, WorkIDs: []string{"W1", "W2"}},
			{A: "A1", B: "A3", JointWorkCount: 1, WorkIDs: []string{"W1"}},
		},
	}

	var sb strings.Builder
	if err := WriteEdgesCSV(&sb, g); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1][0] != "A1" || rows[1][1] != "A2" || rows[1][2] != "2" || rows[1][3] != "W1;W2" {
		t.Errorf("edge row = %v", rows[1])
	}
}

func TestWriteRosterCSV(t *testing.T) {
	entries := []roster.Entry{
		{
			OpenAlexID: "A1", Name: "Alice Martin", Level: "Professor",
			Groups: []string{"One Health", "AMR"}, HIndex: 12, TotalCitations: 4000,
		},
	}

	var sb strings.Builder
	if err := WriteRosterCSV(&sb, entries); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1][5] != "One Health;AMR" {
		t.Errorf("groups = %q", rows[1][5])
	}
	if rows[1][6] != "12" || rows[1][9] != "4000" {
		t.Errorf("metrics row = %v", rows[1])
	}
}

func TestEmptyInputsStillWriteHeaders(t *testing.T) {
	var pubs, edges, ros strings.Builder
	if err := WritePublicationsCSV(&pubs, nil); err != nil {
		t.Fatal(err)
	}
	if err := WriteEdgesCSV(&edges, coauthor.Graph{}); err != nil {
		t.Fatal(err)
	}
	if err := WriteRosterCSV(&ros, nil); err != nil {
		t.Fatal(err)
	}
	for name, out := range map[string]string{"pubs": pubs.String(), "edges": edges.String(), "roster": ros.String()} {
		if !strings.Contains(out, "\n") || strings.Count(out, "\n") != 1 {
			t.Errorf("%s export should be exactly one header line, got %q", name, out)
		}
	}
}
