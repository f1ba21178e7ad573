package openalex

import (
	"encoding/csv"
	"strings"
	"testing"
)

func sampleWorks() []Work {
	fwci := 3.1
	return []Work{
		{
			ID:            "https://openalex.org/W1",
			DisplayName:   "First study",
			PublicationYr: 2023,
			Type:          "article",
			CitedByCount:  9,
			FWCI:          &fwci,
			DOI:           "https://doi.org/10.1/x",
			Authorships: []Authorship{
				{Author: AuthorRef{ID: "https://openalex.org/A1", DisplayName: "Alice Martin"}},
				{Author: AuthorRef{ID: "https://openalex.org/A2", DisplayName: "Bob Chen"}},
			},
			Concepts:     []Concept{{DisplayName: "Virology"}},
			PrimaryTopic: &Topic{DisplayName: "Viral pathogenesis", Subfield: &Subfield{DisplayName: "Virology"}},
		},
		{ID: "W2", DisplayName: "Second", PublicationYr: 2024},
	}
}

func TestDedup(t *testing.T) {
	works := []Work{
		{ID: "https://openalex.org/W1", DisplayName: "first copy"},
		{ID: "W1", DisplayName: "second copy"},
		{ID: "W2"},
		{ID: ""},
	}
	got := Dedup(works)
	if len(got) != 2 {
		t.Fatalf("got %d works, want 2", len(got))
	}
	if got[0].DisplayName != "first copy" {
		t.Errorf("dedup should keep first occurrence, got %q", got[0].DisplayName)
	}
}

func TestWriteWorksCSV(t *testing.T) {
	var sb strings.Builder
	if err := WriteWorksCSV(&sb, sampleWorks()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "id" || rows[0][8] != "author_openalex_id" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "W1" {
		t.Errorf("work ID should be normalized, got %q", rows[1][0])
	}
	if rows[1][7] != "Alice Martin; Bob Chen" || rows[1][8] != "A1;A2" {
		t.Errorf("author columns = %q / %q", rows[1][7], rows[1][8])
	}
	if rows[1][5] != "3.1" || rows[2][5] != "" {
		t.Errorf("fwci columns = %q / %q", rows[1][5], rows[2][5])
	}
}

func TestWriteAuthorshipsCSV(t *testing.T) {
	var sb strings.Builder
	if err := WriteAuthorshipsCSV(&sb, sampleWorks()); err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per work/author pair; W2 has no authorships.
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[1][0] != "W1" || rows[1][1] != "A1" {
		t.Errorf("row = %v", rows[1])
	}
	if rows[2][1] != "A2" {
		t.Errorf("row = %v", rows[2])
	}
}
