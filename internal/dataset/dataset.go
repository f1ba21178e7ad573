// Package dataset loads the source tables into memory. The roster and
// publication tables are required; the authorship expansion table is
// optional and its absence selects the fallback name-matching graph
// strategy once, at load time.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/normalize"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

// Errors returned by table loading.
var (
	ErrMissingRoster       = errors.New("roster table is required")
	ErrMissingPublications = errors.New("publication table is required")
	ErrNoIDColumn          = errors.New("roster table has no OpenAlexID column")
)

// Tables holds everything the pipeline computes from. The graph strategy
// is fixed here and never re-detected per call.
type Tables struct {
	Roster       []roster.Entry
	Publications []publication.Publication
	Authorships  []publication.Authorship
	Strategy     coauthor.Strategy
	Window       normalize.Window
}

// Load reads the source CSVs. authorshipPath may be empty or point to a
// missing file; both degrade to the name-matching strategy. Missing
// required tables are fatal.
func Load(rosterPath, worksPath, authorshipPath string, w normalize.Window) (*Tables, error) {
	t := &Tables{Window: w, Strategy: coauthor.StrategyNames}

	var err error
	t.Roster, err = LoadRoster(rosterPath)
	if err != nil {
		return nil, err
	}

	workRecs, err := readCSV(worksPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingPublications, err)
	}
	for _, rec := range workRecs {
		t.Publications = append(t.Publications, publication.FromRecord(publication.Record(rec), w))
	}

	if authorshipPath != "" {
		if rows, err := readCSV(authorshipPath); err == nil {
			t.Authorships = authorshipsFromRecords(rows)
			if len(t.Authorships) > 0 {
				t.Strategy = coauthor.StrategyAuthorship
				t.Publications = publication.ExpandAuthors(t.Publications, t.Authorships)
			}
		}
		// A missing or unreadable optional table is not an error: the
		// fallback strategy stays selected.
	}

	return t, nil
}

// LoadRoster reads just the roster table. The fetch command uses this
// before the publication table exists.
func LoadRoster(path string) ([]roster.Entry, error) {
	recs, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingRoster, err)
	}
	return rosterFromRecords(recs)
}

// rosterFromRecords converts raw rows, locating the OpenAlexID column
// case- and space-insensitively as the source exports vary.
func rosterFromRecords(recs []map[string]string) ([]roster.Entry, error) {
	if len(recs) == 0 {
		return nil, nil
	}

	idCol := ""
	for col := range recs[0] {
		if squash(col) == "openalexid" {
			idCol = col
			break
		}
	}
	if idCol == "" {
		return nil, ErrNoIDColumn
	}

	entries := make([]roster.Entry, 0, len(recs))
	for _, rec := range recs {
		rec["OpenAlexID"] = rec[idCol]
		entries = append(entries, roster.FromRecord(roster.Record(rec)))
	}
	return entries, nil
}

func authorshipsFromRecords(recs []map[string]string) []publication.Authorship {
	var rows []publication.Authorship
	for _, rec := range recs {
		workID := normalize.ID(firstOf(rec, "work_id", "id"))
		authorID := normalize.ID(firstOf(rec, "author_id", "author_openalex_id"))
		if workID == "" || authorID == "" {
			continue
		}
		rows = append(rows, publication.Authorship{WorkID: workID, AuthorID: authorID})
	}
	return rows
}

func firstOf(rec map[string]string, cols ...string) string {
	for _, c := range cols {
		if v := strings.TrimSpace(rec[c]); v != "" {
			return v
		}
	}
	return ""
}

// squash lowercases and strips non-alphanumerics for header comparison.
func squash(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// readCSV reads a whole CSV file into header-keyed rows. Rows with a
// deviant field count are kept with the fields that are present; a
// malformed row never aborts the load.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRecords(f)
}

// ReadRecords parses CSV from a reader into header-keyed rows.
func ReadRecords(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var recs []map[string]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Field-level damage degrades; only unreadable input aborts.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("reading row: %w", err)
		}
		rec := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				rec[col] = row[i]
			}
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
