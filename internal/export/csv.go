// Package export writes filtered results to downloadable CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ucvm/facnet/internal/coauthor"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
)

// PublicationsHeader is the column order of the publications export.
var PublicationsHeader = []string{
	"work_id", "title", "doi", "publication_year", "type",
	"cited_by_count", "fwci", "authors", "author_openalex_ids",
}

// WritePublicationsCSV writes the selected publications to w.
func WritePublicationsCSV(w io.Writer, pubs []publication.Publication) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(PublicationsHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, p := range pubs {
		fwci := ""
		if p.FWCI != nil {
			fwci = strconv.FormatFloat(*p.FWCI, 'f', -1, 64)
		}
		row := []string{
			p.WorkID,
			p.Title,
			p.DOI,
			strconv.Itoa(p.Year),
			p.Type,
			strconv.Itoa(p.CitedByCount),
			fwci,
			p.AuthorNames,
			strings.Join(p.AuthorIDs, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing work %s: %w", p.WorkID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// EdgesHeader is the column order of the co-authorship edge export.
var EdgesHeader = []string{"source", "target", "joint_work_count", "work_ids"}

// WriteEdgesCSV writes the co-authorship edge list to w.
func WriteEdgesCSV(w io.Writer, g coauthor.Graph) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(EdgesHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range g.Edges {
		row := []string{
			e.A,
			e.B,
			strconv.Itoa(e.JointWorkCount),
			strings.Join(e.WorkIDs, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing edge %s-%s: %w", e.A, e.B, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RosterHeader is the column order of the contributing-roster export.
var RosterHeader = []string{
	"openalex_id", "name", "level", "category", "appointment",
	"research_groups", "h_index", "i10_index", "works_count", "total_citations",
}

// WriteRosterCSV writes the contributing roster to w.
func WriteRosterCSV(w io.Writer, entries []roster.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(RosterHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range entries {
		row := []string{
			e.OpenAlexID,
			e.Name,
			e.Level,
			e.Category,
			e.Appointment,
			strings.Join(e.Groups, ";"),
			strconv.Itoa(e.HIndex),
			strconv.Itoa(e.I10Index),
			strconv.Itoa(e.WorksCount),
			strconv.Itoa(e.TotalCitations),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing entry %s: %w", e.OpenAlexID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
