// Package postgres provides the relational implementation of the
// MetadataIndex port, used in remote mode. The decisions table is
// created on first use; chamber and case-number columns are indexed
// for the search path.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/emsal-labs/emsal-cli/internal/core/domain"
	"github.com/emsal-labs/emsal-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MetadataIndex = (*Store)(nil)

// Store is the PostgreSQL-backed MetadataIndex.
type Store struct {
	db *sql.DB
}

// NewStore connects to the database at connStr and ensures the schema
// exists. The connection string carries the credentials; validation of
// their presence happens in config, before this runs.
func NewStore(ctx context.Context, connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	ddl := `
	CREATE TABLE IF NOT EXISTS decisions (
		id BIGINT PRIMARY KEY,
		daire TEXT,
		esas_no TEXT,
		karar_no TEXT,
		karar_tarihi DATE,
		ozet TEXT,
		full_text_url TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_daire ON decisions(daire);
	CREATE INDEX IF NOT EXISTS idx_decisions_esas_no ON decisions(esas_no);
	CREATE INDEX IF NOT EXISTS idx_decisions_karar_no ON decisions(karar_no);
	`
	_, err := s.db.ExecContext(ctx, ddl)
	return err
}

// UpsertMetadata writes all entries in one multi-row INSERT with
// ON CONFLICT DO UPDATE. Every column is taken from the excluded row,
// so a conflicting write fully replaces the old one, nulls included.
func (s *Store) UpsertMetadata(ctx context.Context, entries []domain.IndexEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO decisions (id, daire, esas_no, karar_no, karar_tarihi, ozet, full_text_url) VALUES `)

	args := make([]any, 0, len(entries)*7)
	for i := range entries {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 7
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		e := &entries[i]
		args = append(args, e.ID, e.Daire, e.EsasNo, e.KararNo, e.KararTarihi, e.Ozet, e.FullTextURL)
	}

	sb.WriteString(`
		ON CONFLICT (id) DO UPDATE SET
			daire = EXCLUDED.daire,
			esas_no = EXCLUDED.esas_no,
			karar_no = EXCLUDED.karar_no,
			karar_tarihi = EXCLUDED.karar_tarihi,
			ozet = EXCLUDED.ozet,
			full_text_url = EXCLUDED.full_text_url`)

	if _, err := s.db.ExecContext(ctx, sb.String(), args...); err != nil {
		return 0, fmt.Errorf("upserting %d decisions: %w", len(entries), err)
	}
	return len(entries), nil
}

// SearchDecisions returns up to domain.SearchLimit rows matching all
// supplied filters, using ILIKE for the substring matches.
func (s *Store) SearchDecisions(ctx context.Context, f domain.SearchFilters) ([]domain.IndexEntry, error) {
	query, args := buildSearchQuery(f)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var out []domain.IndexEntry
	for rows.Next() {
		var e domain.IndexEntry
		var daire, esas, karar, tarih, ozet, url sql.NullString
		if err := rows.Scan(&e.ID, &daire, &esas, &karar, &tarih, &ozet, &url); err != nil {
			return nil, fmt.Errorf("scanning decision row: %w", err)
		}
		e.Daire = nullable(daire)
		e.EsasNo = nullable(esas)
		e.KararNo = nullable(karar)
		e.KararTarihi = isoDate(nullable(tarih))
		e.Ozet = ozet.String
		e.FullTextURL = url.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating decision rows: %w", err)
	}
	return out, nil
}

// buildSearchQuery assembles the filtered SELECT. Split out so the
// filter-to-SQL mapping is testable without a live database.
func buildSearchQuery(f domain.SearchFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, daire, esas_no, karar_no, karar_tarihi::text, ozet, full_text_url FROM decisions WHERE 1=1`)
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.ID != 0 {
		sb.WriteString(" AND id = " + arg(f.ID))
	}
	if f.Daire != "" {
		sb.WriteString(" AND daire ILIKE " + arg("%"+f.Daire+"%"))
	}
	if f.EsasNo != "" {
		sb.WriteString(" AND esas_no = " + arg(f.EsasNo))
	}
	if f.KararNo != "" {
		sb.WriteString(" AND karar_no = " + arg(f.KararNo))
	}
	if f.Keyword != "" {
		sb.WriteString(" AND ozet ILIKE " + arg("%"+f.Keyword+"%"))
	}
	if f.Year != 0 {
		sb.WriteString(" AND karar_tarihi >= " + arg(fmt.Sprintf("%04d-01-01", f.Year)))
		sb.WriteString(" AND karar_tarihi <= " + arg(fmt.Sprintf("%04d-12-31", f.Year)))
	}
	if f.StartDate != "" {
		sb.WriteString(" AND karar_tarihi >= " + arg(f.StartDate))
	}
	if f.EndDate != "" {
		sb.WriteString(" AND karar_tarihi <= " + arg(f.EndDate))
	}

	sb.WriteString(fmt.Sprintf(" LIMIT %d", domain.SearchLimit))
	return sb.String(), args
}

// nullable converts a NullString to the domain's pointer form.
func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// isoDate trims the time part a DATE::text cast can carry on some
// server configurations, keeping YYYY-MM-DD only.
func isoDate(s *string) *string {
	if s == nil {
		return nil
	}
	if len(*s) > 10 {
		iso := (*s)[:10]
		return &iso
	}
	return s
}
