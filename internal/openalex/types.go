package openalex

import "strings"

// Work is one OpenAlex work with the fields the dashboard tables keep.
type Work struct {
	ID            string       `json:"id"`
	DOI           string       `json:"doi"`
	DisplayName   string       `json:"display_name"`
	PublicationYr int          `json:"publication_year"`
	Type          string       `json:"type"`
	CitedByCount  int          `json:"cited_by_count"`
	FWCI          *float64     `json:"fwci"`
	Authorships   []Authorship `json:"authorships"`
	Concepts      []Concept    `json:"concepts"`
	PrimaryTopic  *Topic       `json:"primary_topic"`
}

// Authorship is one author attribution on a work.
type Authorship struct {
	Author AuthorRef `json:"author"`
}

// AuthorRef identifies an author within an authorship.
type AuthorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Concept is one tagged concept on a work.
type Concept struct {
	DisplayName string `json:"display_name"`
}

// Topic is a work's primary topic with its subfield.
type Topic struct {
	DisplayName string    `json:"display_name"`
	Subfield    *Subfield `json:"subfield"`
}

// Subfield is a topic's subfield.
type Subfield struct {
	DisplayName string `json:"display_name"`
}

// AuthorNames returns the semicolon-joined author display names, the
// format the fallback co-authorship path parses.
func (w Work) AuthorNames() string {
	names := make([]string, 0, len(w.Authorships))
	for _, a := range w.Authorships {
		if a.Author.DisplayName != "" {
			names = append(names, a.Author.DisplayName)
		}
	}
	return strings.Join(names, "; ")
}

// ConceptsList returns the semicolon-joined concept names.
func (w Work) ConceptsList() string {
	names := make([]string, 0, len(w.Concepts))
	for _, c := range w.Concepts {
		if c.DisplayName != "" {
			names = append(names, c.DisplayName)
		}
	}
	return strings.Join(names, "; ")
}

// TopicName returns the primary topic display name, or "".
func (w Work) TopicName() string {
	if w.PrimaryTopic == nil {
		return ""
	}
	return w.PrimaryTopic.DisplayName
}

// SubfieldName returns the primary topic's subfield display name, or "".
func (w Work) SubfieldName() string {
	if w.PrimaryTopic == nil || w.PrimaryTopic.Subfield == nil {
		return ""
	}
	return w.PrimaryTopic.Subfield.DisplayName
}

// worksPage is one page of the cursor-paginated works listing.
type worksPage struct {
	Meta struct {
		Count      int    `json:"count"`
		NextCursor string `json:"next_cursor"`
	} `json:"meta"`
	Results []Work `json:"results"`
}

// AuthorMetrics is the roster-facing summary of an OpenAlex author record.
type AuthorMetrics struct {
	ID             string `json:"id"`
	HIndex         int    `json:"h_index"`
	I10Index       int    `json:"i10_index"`
	WorksCount     int    `json:"works_count"`
	TotalCitations int    `json:"total_citations"`
}

// authorRecord is the wire shape of /authors/{id}.
type authorRecord struct {
	ID           string `json:"id"`
	WorksCount   int    `json:"works_count"`
	CitedByCount int    `json:"cited_by_count"`
	SummaryStats struct {
		HIndex   int `json:"h_index"`
		I10Index int `json:"i10_index"`
	} `json:"summary_stats"`
}
