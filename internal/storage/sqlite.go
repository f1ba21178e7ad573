// Package storage provides an ephemeral SQLite cache over the loaded
// source tables, rebuilt wholesale by `facnet rebuild` and queried by the
// list and stats commands.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ucvm/facnet/internal/dataset"
	"github.com/ucvm/facnet/internal/publication"
	"github.com/ucvm/facnet/internal/roster"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

const selectRosterFields = `openalex_id, name, level, category, appointment,
	groups_csv, h_index, i10_index, works_count, total_citations`

const selectWorkFields = `work_id, author_ids_csv, authors, pub_year,
	cited_by_count, type, title, doi, fwci, haystack`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS roster (
			openalex_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			level TEXT,
			category TEXT,
			appointment TEXT,
			groups_csv TEXT,
			h_index INTEGER NOT NULL,
			i10_index INTEGER NOT NULL,
			works_count INTEGER NOT NULL,
			total_citations INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS works (
			work_id TEXT PRIMARY KEY,
			author_ids_csv TEXT,
			authors TEXT,
			pub_year INTEGER NOT NULL,
			cited_by_count INTEGER NOT NULL,
			type TEXT,
			title TEXT,
			doi TEXT,
			fwci REAL,
			haystack TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_works_year ON works(pub_year);
		CREATE INDEX IF NOT EXISTS idx_works_type ON works(type);

		CREATE TABLE IF NOT EXISTS authorship (
			work_id TEXT NOT NULL,
			author_id TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_authorship_work ON authorship(work_id);
		CREATE INDEX IF NOT EXISTS idx_authorship_author ON authorship(author_id);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and repopulates it from the loaded tables.
// Returns the number of roster and work rows inserted.
func (d *DB) Rebuild(t *dataset.Tables) (int, int, error) {
	for _, table := range []string{"roster", "works", "authorship"} {
		if _, err := d.db.Exec("DELETE FROM " + table); err != nil {
			return 0, 0, fmt.Errorf("clearing %s table: %w", table, err)
		}
	}

	rosterStmt, err := d.db.Prepare(`
		INSERT OR REPLACE INTO roster (` + selectRosterFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing roster insert: %w", err)
	}
	defer rosterStmt.Close()

	for _, e := range t.Roster {
		_, err := rosterStmt.Exec(
			e.OpenAlexID, e.Name, e.Level, e.Category, e.Appointment,
			strings.Join(e.Groups, ";"),
			e.HIndex, e.I10Index, e.WorksCount, e.TotalCitations,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting roster %s: %w", e.OpenAlexID, err)
		}
	}

	workStmt, err := d.db.Prepare(`
		INSERT OR REPLACE INTO works (` + selectWorkFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing works insert: %w", err)
	}
	defer workStmt.Close()

	for _, p := range t.Publications {
		var fwci sql.NullFloat64
		if p.FWCI != nil {
			fwci = sql.NullFloat64{Float64: *p.FWCI, Valid: true}
		}
		_, err := workStmt.Exec(
			p.WorkID, strings.Join(p.AuthorIDs, ";"), p.AuthorNames,
			p.Year, p.CitedByCount, p.Type, p.Title, p.DOI, fwci, p.Haystack,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("inserting work %s: %w", p.WorkID, err)
		}
	}

	authStmt, err := d.db.Prepare(`INSERT INTO authorship (work_id, author_id) VALUES (?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("preparing authorship insert: %w", err)
	}
	defer authStmt.Close()

	for _, a := range t.Authorships {
		if _, err := authStmt.Exec(a.WorkID, a.AuthorID); err != nil {
			return 0, 0, fmt.Errorf("inserting authorship %s/%s: %w", a.WorkID, a.AuthorID, err)
		}
	}

	return len(t.Roster), len(t.Publications), nil
}

// CountRoster returns the number of cached roster entries.
func (d *DB) CountRoster() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM roster").Scan(&count)
	return count, err
}

// CountWorks returns the number of cached works.
func (d *DB) CountWorks() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM works").Scan(&count)
	return count, err
}

// CountAuthorships returns the number of cached authorship rows.
func (d *DB) CountAuthorships() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM authorship").Scan(&count)
	return count, err
}

// ListRoster returns cached roster entries ordered by name, optionally
// restricted to one level.
func (d *DB) ListRoster(level string, limit int) ([]roster.Entry, error) {
	query := `SELECT ` + selectRosterFields + ` FROM roster`
	var args []interface{}

	if level != "" {
		query += " WHERE level = ?"
		args = append(args, level)
	}
	query += " ORDER BY name"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()

	var entries []roster.Entry
	for rows.Next() {
		var e roster.Entry
		var groups sql.NullString
		err := rows.Scan(
			&e.OpenAlexID, &e.Name, &e.Level, &e.Category, &e.Appointment,
			&groups, &e.HIndex, &e.I10Index, &e.WorksCount, &e.TotalCitations,
		)
		if err != nil {
			return nil, err
		}
		if groups.String != "" {
			e.Groups = strings.Split(groups.String, ";")
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WorkFilters restricts ListWorks. Zero values impose no constraint.
type WorkFilters struct {
	YearFrom int
	YearTo   int
	Type     string
	AuthorID string
}

// ListWorks returns cached works matching the filters, newest first.
func (d *DB) ListWorks(f WorkFilters, limit int) ([]publication.Publication, error) {
	query := `SELECT ` + selectWorkFields + ` FROM works WHERE 1=1`
	var args []interface{}

	if f.YearFrom > 0 {
		query += " AND pub_year >= ?"
		args = append(args, f.YearFrom)
	}
	if f.YearTo > 0 {
		query += " AND pub_year <= ?"
		args = append(args, f.YearTo)
	}
	if f.Type != "" {
		query += " AND type = ?"
		args = append(args, strings.ToLower(f.Type))
	}
	if f.AuthorID != "" {
		query += ` AND (author_ids_csv = ? OR author_ids_csv LIKE ? OR author_ids_csv LIKE ? OR author_ids_csv LIKE ?)`
		args = append(args, f.AuthorID, f.AuthorID+";%", "%;"+f.AuthorID, "%;"+f.AuthorID+";%")
	}

	query += " ORDER BY pub_year DESC, work_id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}
	defer rows.Close()

	var pubs []publication.Publication
	for rows.Next() {
		p, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, p)
	}
	return pubs, rows.Err()
}

func scanWork(rows *sql.Rows) (publication.Publication, error) {
	var p publication.Publication
	var authorIDs, authors, typ, title, doi, haystack sql.NullString
	var fwci sql.NullFloat64

	err := rows.Scan(
		&p.WorkID, &authorIDs, &authors, &p.Year,
		&p.CitedByCount, &typ, &title, &doi, &fwci, &haystack,
	)
	if err != nil {
		return p, err
	}

	if authorIDs.String != "" {
		p.AuthorIDs = strings.Split(authorIDs.String, ";")
	}
	p.AuthorNames = authors.String
	p.Type = typ.String
	p.Title = title.String
	p.DOI = doi.String
	p.Haystack = haystack.String
	if fwci.Valid {
		v := fwci.Float64
		p.FWCI = &v
	}
	return p, nil
}

// CountBy returns work counts grouped by a dimension column ("type" or
// "pub_year"), descending by count.
func (d *DB) CountBy(column string) (map[string]int, error) {
	switch column {
	case "type", "pub_year":
	default:
		return nil, fmt.Errorf("unsupported group column: %s", column)
	}

	rows, err := d.db.Query(
		`SELECT CAST(` + column + ` AS TEXT), COUNT(*) FROM works GROUP BY ` + column)
	if err != nil {
		return nil, fmt.Errorf("grouping works by %s: %w", column, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key sql.NullString
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, err
		}
		counts[key.String] = n
	}
	return counts, rows.Err()
}

// CountRosterByLevel returns roster entry counts grouped by level.
func (d *DB) CountRosterByLevel() (map[string]int, error) {
	rows, err := d.db.Query(`SELECT level, COUNT(*) FROM roster GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("grouping roster by level: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var level sql.NullString
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return nil, err
		}
		counts[level.String] = n
	}
	return counts, rows.Err()
}
