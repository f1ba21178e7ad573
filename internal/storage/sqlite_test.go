package storage

import (
	"path/filepath"
	"testing"

	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/dataset"
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "facnet.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testTables() *dataset.Tables {
	fwci := 2.5
	return &dataset.Tables{
		Roster: []roster.Entry{
			{OpenAlexID: "A1", Name: "Alice Martin", Level: "Professor", Groups: []string{"One Health", "AMR"}, HIndex: 12},
			{OpenAlexID: "A2", Name: "Bob Chen", Level: "Associate Professor", HIndex: 8},
		},
		Publications: []publication.Publication{
			{WorkID: "W1", AuthorIDs: []string{"A1", "A2"}, Year: 2023, Type: "article", Title: "First", FWCI: &fwci},
			{WorkID: "W2", AuthorIDs: []string{"A1"}, Year: 2024, Type: "review", Title: "Second"},
		},
		Authorships: []publication.Authorship{
			{WorkID: "W1", AuthorID: "A1"},
			{WorkID: "W1", AuthorID: "A2"},
		},
		Strategy: coauthor.StrategyAuthorship,
		Window:   normalize.Window{Start: 2021, End: 2025},
	}
}

func TestRebuildAndCounts(t *testing.T) {
	db := openTestDB(t)

	nRoster, nWorks, err := db.Rebuild(testTables())
	if err != nil {
		t.Fatal(err)
	}
	if nRoster != 2 || nWorks != 2 {
		t.Errorf("Rebuild = (%d, %d), want (2, 2)", nRoster, nWorks)
	}

	if n, _ := db.CountRoster(); n != 2 {
		t.Errorf("CountRoster = %d", n)
	}
	if n, _ := db.CountWorks(); n != 2 {
		t.Errorf("CountWorks = %d", n)
	}
	if n, _ := db.CountAuthorships(); n != 2 {
		t.Errorf("CountAuthorships = %d", n)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}
	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}
	if n, _ := db.CountWorks(); n != 2 {
		t.Errorf("CountWorks after double rebuild = %d, want 2", n)
	}
}

func TestListRoster(t *testing.T) {
	db := openTestDB(t)
	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}

	entries, err := db.ListRoster("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 || entries[0].Name != "Alice Martin" {
		t.Fatalf("entries = %+v, want Alice first (name order)", entries)
	}
	if len(entries[0].Groups) != 2 {
		t.Errorf("Groups = %v, want round-tripped pair", entries[0].Groups)
	}

	profs, err := db.ListRoster("Professor", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(profs) != 1 || profs[0].OpenAlexID != "A1" {
		t.Errorf("level filter = %+v, want only A1", profs)
	}
}

func TestListWorks(t *testing.T) {
	db := openTestDB(t)
	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}

	t.Run("newest first", func(t *testing.T) {
		pubs, err := db.ListWorks(WorkFilters{}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(pubs) != 2 || pubs[0].WorkID != "W2" {
			t.Fatalf("pubs = %+v, want W2 first", pubs)
		}
	})

	t.Run("year filter", func(t *testing.T) {
		pubs, err := db.ListWorks(WorkFilters{YearFrom: 2024}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(pubs) != 1 || pubs[0].WorkID != "W2" {
			t.Errorf("pubs = %+v, want only W2", pubs)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		pubs, err := db.ListWorks(WorkFilters{Type: "Article"}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(pubs) != 1 || pubs[0].WorkID != "W1" {
			t.Errorf("pubs = %+v, want only W1", pubs)
		}
	})

	t.Run("author filter matches non-first author", func(t *testing.T) {
		pubs, err := db.ListWorks(WorkFilters{AuthorID: "A2"}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(pubs) != 1 || pubs[0].WorkID != "W1" {
			t.Errorf("pubs = %+v, want only W1", pubs)
		}
	})

	t.Run("fwci round trip", func(t *testing.T) {
		pubs, err := db.ListWorks(WorkFilters{Type: "article"}, 0)
		if err != nil {
			t.Fatal(err)
		}
		if pubs[0].FWCI == nil || *pubs[0].FWCI != 2.5 {
			t.Errorf("FWCI = %v, want 2.5", pubs[0].FWCI)
		}
	})
}

func TestCountBy(t *testing.T) {
	db := openTestDB(t)
	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}

	byType, err := db.CountBy("type")
	if err != nil {
		t.Fatal(err)
	}
	if byType["article"] != 1 || byType["review"] != 1 {
		t.Errorf("byType = %v", byType)
	}

	byYear, err := db.CountBy("pub_year")
	if err != nil {
		t.Fatal(err)
	}
	if byYear["2023"] != 1 || byYear["2024"] != 1 {
		t.Errorf("byYear = %v", byYear)
	}

	if _, err := db.CountBy("doi; DROP TABLE works"); err == nil {
		t.Error("expected error for unsupported group column")
	}
}

func TestCountRosterByLevel(t *testing.T) {
	db := openTestDB(t)
	if _, _, err := db.Rebuild(testTables()); err != nil {
		t.Fatal(err)
	}

	byLevel, err := db.CountRosterByLevel()
	if err != nil {
		t.Fatal(err)
	}
	if byLevel["Professor"] != 1 || byLevel["Associate Professor"] != 1 {
		t.Errorf("byLevel = %v", byLevel)
	}
}
