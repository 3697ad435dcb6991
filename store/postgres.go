package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements StructuredStore against a Postgres schema with
// `statutes`, `cases`, and `ipc_bns_mappings` tables, grounded on
// SuperOuss-meritDraft-backend/repository's pgxpool.Pool query-and-scan
// style.
type PostgresStore struct {
	db *pgxpool.Pool
}

var _ StructuredStore = (*PostgresStore)(nil)

// NewPostgresStore wraps an already-connected pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) GetSection(ctx context.Context, sectionNumber, actCode string) (*Statute, error) {
	const q = `
		SELECT id, act_code, act_name, section_number, title, content, domain,
		       year_enacted, is_cognizable, is_bailable, punishment_description, source
		FROM statutes
		WHERE section_number = $1 AND act_code = $2
		LIMIT 1`

	row := p.db.QueryRow(ctx, q, sectionNumber, actCode)
	var s Statute
	err := row.Scan(&s.ID, &s.ActCode, &s.ActName, &s.SectionNumber, &s.Title, &s.Content, &s.Domain,
		&s.YearEnacted, &s.IsCognizable, &s.IsBailable, &s.PunishmentDescription, &s.Source)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: get section %s %s: %w", actCode, sectionNumber, err)
	}
	return &s, nil
}

func (p *PostgresStore) SearchStatutes(ctx context.Context, query string, actCodes []string, domain string, limit int) ([]Statute, error) {
	sql := strings.Builder{}
	sql.WriteString(`
		SELECT id, act_code, act_name, section_number, title, content, domain,
		       year_enacted, is_cognizable, is_bailable, punishment_description, source
		FROM statutes
		WHERE (title ILIKE $1 OR content ILIKE $1)`)
	args := []any{"%" + query + "%"}

	if len(actCodes) > 0 {
		args = append(args, actCodes)
		sql.WriteString(fmt.Sprintf(" AND act_code = ANY($%d)", len(args)))
	}
	if domain != "" && domain != "all" {
		args = append(args, domain)
		sql.WriteString(fmt.Sprintf(" AND domain = $%d", len(args)))
	}
	args = append(args, limit)
	sql.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))

	rows, err := p.db.Query(ctx, sql.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("store: search statutes: %w", err)
	}
	defer rows.Close()

	var out []Statute
	for rows.Next() {
		var s Statute
		if err := rows.Scan(&s.ID, &s.ActCode, &s.ActName, &s.SectionNumber, &s.Title, &s.Content, &s.Domain,
			&s.YearEnacted, &s.IsCognizable, &s.IsBailable, &s.PunishmentDescription, &s.Source); err != nil {
			return nil, fmt.Errorf("store: scan statute: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *PostgresStore) GetIPCBNSMapping(ctx context.Context, ipcSection string) (*Mapping, error) {
	const q = `
		SELECT ipc_section, bns_section, mapping_type, changes, punishment_changed,
		       old_punishment, new_punishment, punishment_increased
		FROM ipc_bns_mappings
		WHERE ipc_section = $1
		LIMIT 1`

	row := p.db.QueryRow(ctx, q, ipcSection)
	var mp Mapping
	var mappingType string
	err := row.Scan(&mp.IPCSection, &mp.BNSSection, &mappingType, &mp.Changes, &mp.PunishmentChanged,
		&mp.OldPunishment, &mp.NewPunishment, &mp.PunishmentIncreased)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: get ipc-bns mapping %s: %w", ipcSection, err)
	}
	mp.Type = MappingType(mappingType)
	return &mp, nil
}

func (p *PostgresStore) GetCasesBySection(ctx context.Context, sectionNumber string, limit int) ([]Case, error) {
	const q = `
		SELECT id, case_name, court, court_name, citation_string, reporting_year,
		       summary, key_holdings, is_landmark, domain, source_url, cited_sections, bench
		FROM cases
		WHERE $1 = ANY(cited_sections)
		LIMIT $2`

	rows, err := p.db.Query(ctx, q, sectionNumber, limit)
	if err != nil {
		return nil, fmt.Errorf("store: get cases by section %s: %w", sectionNumber, err)
	}
	defer rows.Close()
	return scanCases(rows)
}

func (p *PostgresStore) SearchCases(ctx context.Context, query string, court, domain string, limit int) ([]Case, error) {
	sql := strings.Builder{}
	sql.WriteString(`
		SELECT id, case_name, court, court_name, citation_string, reporting_year,
		       summary, key_holdings, is_landmark, domain, source_url, cited_sections, bench
		FROM cases
		WHERE (case_name ILIKE $1 OR summary ILIKE $1)`)
	args := []any{"%" + query + "%"}

	if court != "" {
		args = append(args, court)
		sql.WriteString(fmt.Sprintf(" AND court = $%d", len(args)))
	}
	if domain != "" && domain != "all" {
		args = append(args, domain)
		sql.WriteString(fmt.Sprintf(" AND domain = $%d", len(args)))
	}
	args = append(args, limit)
	sql.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))

	rows, err := p.db.Query(ctx, sql.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("store: search cases: %w", err)
	}
	defer rows.Close()
	return scanCases(rows)
}

func (p *PostgresStore) GetLandmarkCases(ctx context.Context, domain string, limit int) ([]Case, error) {
	sql := `
		SELECT id, case_name, court, court_name, citation_string, reporting_year,
		       summary, key_holdings, is_landmark, domain, source_url, cited_sections, bench
		FROM cases
		WHERE is_landmark = true`
	args := []any{}
	if domain != "" && domain != "all" {
		args = append(args, domain)
		sql += fmt.Sprintf(" AND domain = $%d", len(args))
	}
	args = append(args, limit)
	sql += fmt.Sprintf(" ORDER BY reporting_year DESC LIMIT $%d", len(args))

	rows, err := p.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("store: get landmark cases: %w", err)
	}
	defer rows.Close()
	return scanCases(rows)
}

func scanCases(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]Case, error) {
	var out []Case
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.CaseName, &c.Court, &c.CourtName, &c.CitationString, &c.ReportingYear,
			&c.Summary, &c.KeyHoldings, &c.IsLandmark, &c.Domain, &c.SourceURL, &c.CitedSections, &c.Bench); err != nil {
			return nil, fmt.Errorf("store: scan case: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
