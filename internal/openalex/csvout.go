package openalex

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ucvm/facnet/internal/normalize"
)

// WorksHeader is the column order of the fetched works table, matching
// what the dataset loader reads back.
var WorksHeader = []string{
	"id", "display_name", "publication_year", "type", "cited_by_count",
	"fwci", "doi", "authors", "author_openalex_id", "concepts_list",
	"primary_topic__display_name", "primary_topic__subfield__display_name",
}

// Dedup drops repeated works, keeping the first occurrence of each
// normalized work ID. Works fetched per author overlap wherever members
// co-author.
func Dedup(works []Work) []Work {
	seen := make(map[string]bool, len(works))
	out := make([]Work, 0, len(works))
	for _, w := range works {
		id := normalize.ID(w.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, w)
	}
	return out
}

// WriteWorksCSV writes fetched works as the publication source table.
func WriteWorksCSV(w io.Writer, works []Work) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(WorksHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, wk := range works {
		ids := make([]string, 0, len(wk.Authorships))
		for _, a := range wk.Authorships {
			if id := normalize.ID(a.Author.ID); id != "" {
				ids = append(ids, id)
			}
		}
		fwci := ""
		if wk.FWCI != nil {
			fwci = strconv.FormatFloat(*wk.FWCI, 'f', -1, 64)
		}
		row := []string{
			normalize.ID(wk.ID),
			wk.DisplayName,
			strconv.Itoa(wk.PublicationYr),
			wk.Type,
			strconv.Itoa(wk.CitedByCount),
			fwci,
			wk.DOI,
			wk.AuthorNames(),
			strings.Join(ids, ";"),
			wk.ConceptsList(),
			wk.TopicName(),
			wk.SubfieldName(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing work %s: %w", wk.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// AuthorshipsHeader is the column order of the authorship expansion table.
var AuthorshipsHeader = []string{"work_id", "author_id"}

// WriteAuthorshipsCSV writes one row per work/author pair.
func WriteAuthorshipsCSV(w io.Writer, works []Work) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(AuthorshipsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, wk := range works {
		workID := normalize.ID(wk.ID)
		if workID == "" {
			continue
		}
		for _, a := range wk.Authorships {
			authorID := normalize.ID(a.Author.ID)
			if authorID == "" {
				continue
			}
			if err := cw.Write([]string{workID, authorID}); err != nil {
				return fmt.Errorf("writing authorship %s/%s: %w", workID, authorID, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
