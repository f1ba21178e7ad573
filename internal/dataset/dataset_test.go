package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/normalize"
)

var window = normalize.Window{Start: 2021, End: 2025}

const rosterCSV = `Name,OpenAlex ID,Level,Category,Appointment,RG1,RG2,RG3,RG4,H_index,I10_index,Works_count,Total_citations
Alice Martin,https://openalex.org/A1,Professor,Clinical,Full-time,One Health,,,,"12",20,50,900
Bob Chen,A2,Associate Professor,Research,Full-time,AMR,One Health,,,8,10,30,400
`

const worksCSV = `id,author_openalex_id,authors,publication_year,cited_by_count,type,display_name,doi,fwci,concepts_list,primary_topic__display_name,primary_topic__subfield__display_name
W1,A1,Alice Martin; Bob Chen,2023,5,article,Surveillance of zoonoses,10.1/abc,1.2,zoonoses; surveillance,One Health,Veterinary
W2,A2,Bob Chen,2019,2,article,Old work,,,"",,
`

const authorshipCSV = `work_id,author_id
W1,A1
W1,A2
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadWithAuthorship(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "roster.csv", rosterCSV)
	worksPath := writeFile(t, dir, "works.csv", worksCSV)
	authPath := writeFile(t, dir, "authorship.csv", authorshipCSV)

	tables, err := Load(rosterPath, worksPath, authPath, window)
	if err != nil {
		t.Fatal(err)
	}

	if tables.Strategy != coauthor.StrategyAuthorship {
		t.Errorf("Strategy = %v, want authorship", tables.Strategy)
	}
	if len(tables.Roster) != 2 {
		t.Fatalf("roster = %d entries, want 2", len(tables.Roster))
	}
	if tables.Roster[0].OpenAlexID != "A1" {
		t.Errorf("OpenAlexID = %q, want A1 (prefix stripped, column detected insensitively)", tables.Roster[0].OpenAlexID)
	}
	if len(tables.Publications) != 2 {
		t.Fatalf("publications = %d, want 2", len(tables.Publications))
	}
	// W1's authors expanded from the structured table.
	if got := tables.Publications[0].AuthorIDs; len(got) != 2 {
		t.Errorf("W1 AuthorIDs = %v, want expanded to 2", got)
	}
	// Out-of-window year clamped, not dropped.
	if tables.Publications[1].Year != 2021 {
		t.Errorf("W2 year = %d, want clamped to 2021", tables.Publications[1].Year)
	}
}

func TestLoadWithoutAuthorshipFallsBack(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "roster.csv", rosterCSV)
	worksPath := writeFile(t, dir, "works.csv", worksCSV)

	tables, err := Load(rosterPath, worksPath, filepath.Join(dir, "missing.csv"), window)
	if err != nil {
		t.Fatal(err)
	}
	if tables.Strategy != coauthor.StrategyNames {
		t.Errorf("Strategy = %v, want names fallback for missing optional table", tables.Strategy)
	}
}

func TestLoadMissingRequiredTable(t *testing.T) {
	dir := t.TempDir()
	worksPath := writeFile(t, dir, "works.csv", worksCSV)

	_, err := Load(filepath.Join(dir, "nope.csv"), worksPath, "", window)
	if !errors.Is(err, ErrMissingRoster) {
		t.Errorf("err = %v, want ErrMissingRoster", err)
	}
}

func TestLoadNoIDColumn(t *testing.T) {
	dir := t.TempDir()
	rosterPath := writeFile(t, dir, "roster.csv", "Name,Level\nAlice,Professor\n")
	worksPath := writeFile(t, dir, "works.csv", worksCSV)

	_, err := Load(rosterPath, worksPath, "", window)
	if !errors.Is(err, ErrNoIDColumn) {
		t.Errorf("err = %v, want ErrNoIDColumn", err)
	}
}

func TestReadRecordsShortRow(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader("a,b,c\n1,2,3\n4,5\n6,7,8\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("recs = %d, want 3 (short row kept)", len(recs))
	}
	if recs[1]["a"] != "4" || recs[1]["c"] != "" {
		t.Errorf("short row = %v, want missing trailing field empty", recs[1])
	}
}

func TestReadRecordsEmpty(t *testing.T) {
	recs, err := ReadRecords(strings.NewReader(""))
	if err != nil || recs != nil {
		t.Errorf("ReadRecords(empty) = %v, %v; want nil, nil", recs, err)
	}
}
